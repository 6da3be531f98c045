package console

import (
	"context"
	"errors"
	"fmt"
)

var (
	errMissingClient = errors.New("console: crud client is not configured")
	// ErrExchangeInUse is returned by the exchange delete guard when a
	// loaded API still references the exchange.
	ErrExchangeInUse = errors.New("console: exchange is used by one or more APIs, delete those APIs first")
)

// DeleteGuard vetoes a deletion before any network call is issued. It only
// sees locally loaded state, so it is a UX shortcut: the server remains the
// authority on referential integrity.
type DeleteGuard func(id int) error

// Reconciler performs create/update/delete for one screen and merges
// server-confirmed results back into its list state without a re-fetch.
type Reconciler[E any] struct {
	screen    *Screen[E]
	client    CRUDClient[E]
	validate  func(E) FieldErrors
	guard     DeleteGuard
	hook      *BroadcastHook
	telemetry Telemetry
}

// ReconcilerOptions configures a Reconciler.
type ReconcilerOptions[E any] struct {
	Screen    *Screen[E]
	Client    CRUDClient[E]
	Validate  func(E) FieldErrors
	Guard     DeleteGuard
	Broadcast *BroadcastHook
	Telemetry Telemetry
}

// NewReconciler wires a screen to its CRUD client.
func NewReconciler[E any](opts ReconcilerOptions[E]) (*Reconciler[E], error) {
	if opts.Screen == nil {
		return nil, errors.New("console: reconciler requires a screen")
	}
	if opts.Client == nil {
		return nil, errMissingClient
	}
	return &Reconciler[E]{
		screen:    opts.Screen,
		client:    opts.Client,
		validate:  opts.Validate,
		guard:     opts.Guard,
		hook:      opts.Broadcast,
		telemetry: normalizeTelemetry(opts.Telemetry),
	}, nil
}

// Create validates the draft, POSTs it, and appends the confirmed row.
// Validation failures block the network call entirely.
func (r *Reconciler[E]) Create(ctx context.Context, draft E) (E, error) {
	var zero E
	if errs := r.runValidation(draft); !errs.Ok() {
		return zero, &ValidationError{Fields: errs}
	}
	created, err := r.client.Create(ctx, draft)
	if err != nil {
		r.screen.setErr(err.Error())
		return zero, fmt.Errorf("console: create %s: %w", r.screen.cfg.Kind, err)
	}
	r.screen.applyCreated(created)
	r.emit(ctx, "create", []int{r.screen.cfg.ID(created)})
	return created, nil
}

// Update validates the editing draft, PUTs it, and replaces the row by id.
func (r *Reconciler[E]) Update(ctx context.Context, id int, draft E) (E, error) {
	var zero E
	if errs := r.runValidation(draft); !errs.Ok() {
		return zero, &ValidationError{Fields: errs}
	}
	updated, err := r.client.Update(ctx, id, draft)
	if err != nil {
		r.screen.setErr(err.Error())
		return zero, fmt.Errorf("console: update %s %d: %w", r.screen.cfg.Kind, id, err)
	}
	r.screen.applyUpdated(updated)
	r.emit(ctx, "update", []int{id})
	return updated, nil
}

// Delete runs the guard, DELETEs the row, and removes it from list state.
// A guard veto makes no network call.
func (r *Reconciler[E]) Delete(ctx context.Context, id int) error {
	if r.guard != nil {
		if err := r.guard(id); err != nil {
			return err
		}
	}
	if err := r.client.Delete(ctx, id); err != nil {
		r.screen.setErr(err.Error())
		return fmt.Errorf("console: delete %s %d: %w", r.screen.cfg.Kind, id, err)
	}
	r.screen.applyDeleted(id)
	r.emit(ctx, "delete", []int{id})
	return nil
}

// Kind reports the entity kind of the wired screen.
func (r *Reconciler[E]) Kind() EntityKind {
	return r.screen.cfg.Kind
}

// EntityID applies the screen's id accessor.
func (r *Reconciler[E]) EntityID(entity E) int {
	return r.screen.cfg.ID(entity)
}

func (r *Reconciler[E]) runValidation(draft E) FieldErrors {
	if r.validate == nil {
		return FieldErrors{}
	}
	return r.validate(draft)
}

func (r *Reconciler[E]) emit(ctx context.Context, reason string, ids []int) {
	event := ListEvent{Kind: r.screen.cfg.Kind, Reason: reason, IDs: ids}
	if r.hook != nil {
		_ = r.hook.ListUpdated(ctx, event)
	}
	r.telemetry.Record(ctx, "console.entity."+reason, map[string]any{
		"kind": string(r.screen.cfg.Kind),
		"ids":  ids,
	})
}

// ExchangeDeleteGuard refuses to delete an exchange referenced by any of the
// currently loaded APIs. It checks only the loaded page, not the full remote
// set; the server-side foreign key constraint is the real safeguard.
func ExchangeDeleteGuard(loadedAPIs func() []API) DeleteGuard {
	return func(id int) error {
		for _, api := range loadedAPIs() {
			if api.ExchangeID == id {
				return ErrExchangeInUse
			}
		}
		return nil
	}
}
