package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
)

// CreateEntityMessage carries a validated draft to the reconciler.
type CreateEntityMessage[E any] struct {
	Draft E
}

// CreateEntityCommand wraps Reconciler.Create so transports can create rows
// without linking directly against the reconciler. When a form session is
// attached, validation failures land in it and a confirmed create resets it
// back to the seeded blank.
type CreateEntityCommand[E any] struct {
	reconciler *console.Reconciler[E]
	form       *console.FormState[E]
	telemetry  Telemetry
}

// NewCreateEntityCommand creates a command instance. form may be nil for
// transports that track drafts themselves.
func NewCreateEntityCommand[E any](reconciler *console.Reconciler[E], form *console.FormState[E], telemetry Telemetry) *CreateEntityCommand[E] {
	return &CreateEntityCommand[E]{reconciler: reconciler, form: form, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateEntityMessage[console.API]] = (*CreateEntityCommand[console.API])(nil)

// Execute delegates to the reconciler. Validation failures surface as
// *console.ValidationError so transports can map them onto form fields.
func (c *CreateEntityCommand[E]) Execute(ctx context.Context, msg CreateEntityMessage[E]) error {
	if c.reconciler == nil {
		return errors.New("create command requires reconciler")
	}
	created, err := c.reconciler.Create(ctx, msg.Draft)
	if err != nil {
		c.storeFormErrors(err)
		return err
	}
	if c.form != nil {
		c.form.Reset()
	}
	c.telemetry.Record(ctx, "console.command.create", map[string]any{
		"kind": string(c.reconciler.Kind()),
		"id":   c.reconciler.EntityID(created),
	})
	return nil
}

func (c *CreateEntityCommand[E]) storeFormErrors(err error) {
	if c.form == nil {
		return
	}
	var validation *console.ValidationError
	if errors.As(err, &validation) {
		c.form.SetErrors(validation.Fields)
	}
}

// UpdateEntityMessage identifies the row and carries the edited draft.
type UpdateEntityMessage[E any] struct {
	ID    int
	Draft E
}

// UpdateEntityCommand wraps Reconciler.Update. A confirmed update closes the
// attached form's editing draft.
type UpdateEntityCommand[E any] struct {
	reconciler *console.Reconciler[E]
	form       *console.FormState[E]
	telemetry  Telemetry
}

// NewUpdateEntityCommand creates a command instance. form may be nil.
func NewUpdateEntityCommand[E any](reconciler *console.Reconciler[E], form *console.FormState[E], telemetry Telemetry) *UpdateEntityCommand[E] {
	return &UpdateEntityCommand[E]{reconciler: reconciler, form: form, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateEntityMessage[console.API]] = (*UpdateEntityCommand[console.API])(nil)

// Execute delegates to the reconciler.
func (c *UpdateEntityCommand[E]) Execute(ctx context.Context, msg UpdateEntityMessage[E]) error {
	if c.reconciler == nil {
		return errors.New("update command requires reconciler")
	}
	if _, err := c.reconciler.Update(ctx, msg.ID, msg.Draft); err != nil {
		if c.form != nil {
			var validation *console.ValidationError
			if errors.As(err, &validation) {
				c.form.SetErrors(validation.Fields)
			}
		}
		return err
	}
	if c.form != nil {
		c.form.Reset()
	}
	c.telemetry.Record(ctx, "console.command.update", map[string]any{"id": msg.ID})
	return nil
}

// DeleteEntityMessage identifies the row to delete.
type DeleteEntityMessage struct {
	ID int
}

// DeleteEntityCommand wraps Reconciler.Delete, including its delete guard.
type DeleteEntityCommand[E any] struct {
	reconciler *console.Reconciler[E]
	telemetry  Telemetry
}

// NewDeleteEntityCommand creates a command instance.
func NewDeleteEntityCommand[E any](reconciler *console.Reconciler[E], telemetry Telemetry) *DeleteEntityCommand[E] {
	return &DeleteEntityCommand[E]{reconciler: reconciler, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteEntityMessage] = (*DeleteEntityCommand[console.API])(nil)

// Execute delegates to the reconciler. Guard vetoes return before any
// network call is made.
func (c *DeleteEntityCommand[E]) Execute(ctx context.Context, msg DeleteEntityMessage) error {
	if c.reconciler == nil {
		return errors.New("delete command requires reconciler")
	}
	if err := c.reconciler.Delete(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.delete", map[string]any{"id": msg.ID})
	return nil
}
