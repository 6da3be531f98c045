package commands

import (
	"context"
	"errors"
	"time"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
)

// SetRangeMessage switches the dashboard range. Custom ranges set From/To
// and leave Predefined as console.RangeCustom.
type SetRangeMessage struct {
	Predefined console.PredefinedRange
	From       time.Time
	To         time.Time
}

// SetRangeCommand drives the shared date range state: it recomputes the
// window and refreshes statistics for it.
type SetRangeCommand struct {
	state     *console.DateRangeState
	telemetry Telemetry
}

// NewSetRangeCommand creates a command instance.
func NewSetRangeCommand(state *console.DateRangeState, telemetry Telemetry) *SetRangeCommand {
	return &SetRangeCommand{state: state, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetRangeMessage] = (*SetRangeCommand)(nil)

// Execute applies the range selection and fetches fresh statistics.
func (c *SetRangeCommand) Execute(ctx context.Context, msg SetRangeMessage) error {
	if c.state == nil {
		return errors.New("range command requires date range state")
	}
	var err error
	if msg.Predefined == console.RangeCustom {
		err = c.state.SetCustomRange(ctx, msg.From, msg.To)
	} else {
		err = c.state.SetPredefined(ctx, msg.Predefined)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.set_range", map[string]any{
		"predefined": string(msg.Predefined),
	})
	return nil
}

// RefreshStatsMessage re-fetches statistics for the current range.
type RefreshStatsMessage struct{}

// RefreshStatsCommand wraps DateRangeState.Refresh.
type RefreshStatsCommand struct {
	state     *console.DateRangeState
	telemetry Telemetry
}

// NewRefreshStatsCommand creates a command instance.
func NewRefreshStatsCommand(state *console.DateRangeState, telemetry Telemetry) *RefreshStatsCommand {
	return &RefreshStatsCommand{state: state, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshStatsMessage] = (*RefreshStatsCommand)(nil)

// Execute reloads statistics for the active window.
func (c *RefreshStatsCommand) Execute(ctx context.Context, _ RefreshStatsMessage) error {
	if c.state == nil {
		return errors.New("refresh command requires date range state")
	}
	if err := c.state.Refresh(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.refresh_stats", map[string]any{})
	return nil
}
