package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
)

// ErrBulkNotConfirmed rejects bulk messages whose confirmation dialog was
// never acknowledged.
var ErrBulkNotConfirmed = errors.New("bulk action requires confirmation")

// BulkActionMessage applies one action to an explicit id set. Confirmed must
// be true: the transport is responsible for showing ConfirmPrompt first.
type BulkActionMessage struct {
	Action    console.BulkAction
	IDs       []int
	Confirmed bool
}

// BulkActionCommand fans the action out through the orchestrator and folds
// the per-id report back into the screen.
type BulkActionCommand struct {
	screen       console.TableScreen
	orchestrator *console.BulkOrchestrator
	telemetry    Telemetry
}

// NewBulkActionCommand creates a command instance.
func NewBulkActionCommand(screen console.TableScreen, orchestrator *console.BulkOrchestrator, telemetry Telemetry) *BulkActionCommand {
	return &BulkActionCommand{screen: screen, orchestrator: orchestrator, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[BulkActionMessage] = (*BulkActionCommand)(nil)

// Execute runs the bulk action. Partial failures still patch the screen for
// the ids that succeeded; the returned error reports the failed remainder.
func (c *BulkActionCommand) Execute(ctx context.Context, msg BulkActionMessage) error {
	if c.orchestrator == nil || c.screen == nil {
		return errors.New("bulk command requires screen and orchestrator")
	}
	if !msg.Confirmed {
		return fmt.Errorf("%w: %s", ErrBulkNotConfirmed, console.ConfirmPrompt(msg.Action, len(msg.IDs)))
	}
	report, err := c.orchestrator.Apply(ctx, msg.Action, msg.IDs)
	if len(report.Succeeded) > 0 || len(report.Failed) > 0 {
		c.screen.ApplyBulk(report)
	}
	c.telemetry.Record(ctx, "console.command.bulk", map[string]any{
		"kind":      string(c.screen.Kind()),
		"action":    string(msg.Action),
		"requested": len(msg.IDs),
		"succeeded": len(report.Succeeded),
	})
	return err
}
