package console

import "context"

// Telemetry records console events: screen loads, range switches, entity
// mutations, and bulk actions. A nil Telemetry normalizes to a no-op.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
