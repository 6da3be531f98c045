package httpapi

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
	"github.com/goliatone/go-admin-console/components/console/commands"
	"github.com/goliatone/go-admin-console/components/console/queries"
)

// Executor is the command surface alternative transports drive. The gorouter
// adapter and the net/http handlers share it.
type Executor interface {
	Load(ctx context.Context, msg commands.LoadScreenMessage) error
	Bulk(ctx context.Context, kind console.EntityKind, msg commands.BulkActionMessage) error
	SetRange(ctx context.Context, msg commands.SetRangeMessage) error
	RefreshStats(ctx context.Context) error
	Snapshot(ctx context.Context, kind console.EntityKind) (console.TableSnapshot, error)
	Metrics(ctx context.Context) (queries.DashboardMetrics, error)
}

// CommandExecutor implements Executor over the shared commands and queries.
type CommandExecutor struct {
	LoadCmd     gocommand.Commander[commands.LoadScreenMessage]
	BulkCmds    map[console.EntityKind]gocommand.Commander[commands.BulkActionMessage]
	SetRangeCmd gocommand.Commander[commands.SetRangeMessage]
	RefreshCmd  gocommand.Commander[commands.RefreshStatsMessage]
	SnapshotQ   gocommand.Querier[queries.SnapshotInput, console.TableSnapshot]
	MetricsQ    gocommand.Querier[struct{}, queries.DashboardMetrics]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Load(ctx context.Context, msg commands.LoadScreenMessage) error {
	return e.LoadCmd.Execute(ctx, msg)
}

func (e *CommandExecutor) Bulk(ctx context.Context, kind console.EntityKind, msg commands.BulkActionMessage) error {
	cmd, ok := e.BulkCmds[kind]
	if !ok {
		return fmt.Errorf("httpapi: no bulk command for screen %s", kind)
	}
	return cmd.Execute(ctx, msg)
}

func (e *CommandExecutor) SetRange(ctx context.Context, msg commands.SetRangeMessage) error {
	return e.SetRangeCmd.Execute(ctx, msg)
}

func (e *CommandExecutor) RefreshStats(ctx context.Context) error {
	return e.RefreshCmd.Execute(ctx, commands.RefreshStatsMessage{})
}

func (e *CommandExecutor) Snapshot(ctx context.Context, kind console.EntityKind) (console.TableSnapshot, error) {
	return e.SnapshotQ.Query(ctx, queries.SnapshotInput{Kind: kind})
}

func (e *CommandExecutor) Metrics(ctx context.Context) (queries.DashboardMetrics, error) {
	return e.MetricsQ.Query(ctx, struct{}{})
}
