package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// BulkAction is one of the operations applicable to a selection.
type BulkAction string

const (
	BulkActivate   BulkAction = "activate"
	BulkDeactivate BulkAction = "deactivate"
	BulkDelete     BulkAction = "delete"
)

var errEmptySelection = errors.New("console: bulk action requires a non-empty selection")

// BulkReport carries the per-id outcome of a bulk action. Local state is
// patched only for Succeeded ids; Failed maps each failing id to its error.
type BulkReport struct {
	Action    BulkAction
	Succeeded []int
	Failed    map[int]error
}

// PartialFailure summarizes a mixed outcome, or returns nil when every call
// succeeded.
func (r BulkReport) PartialFailure() error {
	if len(r.Failed) == 0 {
		return nil
	}
	total := len(r.Succeeded) + len(r.Failed)
	return fmt.Errorf("console: %s failed for %d of %d rows", r.Action, len(r.Failed), total)
}

// ConfirmPrompt is the dialog text shown before any call is issued. It must
// state both the action and the number of affected rows.
func ConfirmPrompt(action BulkAction, count int) string {
	noun := "rows"
	if count == 1 {
		noun = "row"
	}
	return fmt.Sprintf("%s %d %s?", action, count, noun)
}

// BulkOrchestrator fans out one API call per selected id and collects the
// settled results. There is no batching endpoint upstream, no concurrency
// cap, and no partial-progress reporting.
type BulkOrchestrator struct {
	client    BulkClient
	telemetry Telemetry
}

// NewBulkOrchestrator wires the per-id client.
func NewBulkOrchestrator(client BulkClient, telemetry Telemetry) *BulkOrchestrator {
	return &BulkOrchestrator{client: client, telemetry: normalizeTelemetry(telemetry)}
}

// Apply dispatches all requests in parallel and waits for the full settled
// set before returning. The report tracks success and failure per id so
// callers never patch state for ids whose call failed.
func (o *BulkOrchestrator) Apply(ctx context.Context, action BulkAction, ids []int) (BulkReport, error) {
	report := BulkReport{Action: action, Failed: map[int]error{}}
	if len(ids) == 0 {
		return report, errEmptySelection
	}
	if o.client == nil {
		return report, errMissingClient
	}

	type outcome struct {
		id  int
		err error
	}
	results := make([]outcome, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			results[i] = outcome{id: id, err: o.dispatch(ctx, action, id)}
		}(i, id)
	}
	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			report.Failed[res.id] = res.err
			continue
		}
		report.Succeeded = append(report.Succeeded, res.id)
	}
	sort.Ints(report.Succeeded)

	o.telemetry.Record(ctx, "console.bulk."+string(action), map[string]any{
		"requested": len(ids),
		"succeeded": len(report.Succeeded),
		"failed":    len(report.Failed),
	})
	return report, report.PartialFailure()
}

func (o *BulkOrchestrator) dispatch(ctx context.Context, action BulkAction, id int) error {
	switch action {
	case BulkActivate:
		return o.client.SetActive(ctx, id, true)
	case BulkDeactivate:
		return o.client.SetActive(ctx, id, false)
	case BulkDelete:
		return o.client.Delete(ctx, id)
	}
	return fmt.Errorf("console: unknown bulk action %q", action)
}
