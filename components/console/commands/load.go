package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
)

// LoadScreenMessage fetches a page for one screen. Page 0 reloads the
// current page.
type LoadScreenMessage struct {
	Kind console.EntityKind
	Page int
}

// LoadScreenCommand resolves the screen from the registry and loads it.
type LoadScreenCommand struct {
	registry  *console.Registry
	telemetry Telemetry
}

// NewLoadScreenCommand creates a command instance.
func NewLoadScreenCommand(registry *console.Registry, telemetry Telemetry) *LoadScreenCommand {
	return &LoadScreenCommand{registry: registry, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoadScreenMessage] = (*LoadScreenCommand)(nil)

// Execute loads the requested page.
func (c *LoadScreenCommand) Execute(ctx context.Context, msg LoadScreenMessage) error {
	if c.registry == nil {
		return errors.New("load command requires registry")
	}
	screen, ok := c.registry.Screen(msg.Kind)
	if !ok {
		return fmt.Errorf("screen %s not registered", msg.Kind)
	}
	var err error
	if msg.Page > 0 {
		err = screen.SetPage(ctx, msg.Page)
	} else {
		err = screen.Load(ctx)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.load", map[string]any{
		"kind": string(msg.Kind),
		"page": msg.Page,
	})
	return nil
}
