package console

import "sync"

// FormState holds the two drafts a screen keeps per entity kind: the "new"
// draft backing the create form, and the nullable "editing" draft that holds
// a full entity while an edit modal is open. Errors is the field-keyed map
// produced by the last validation pass.
type FormState[E any] struct {
	mu      sync.Mutex
	blank   E
	draft   E
	editing *E
	errs    FieldErrors
}

// NewFormState seeds the form with the given blank draft; Reset returns to it.
// Screens seed default foreign keys here from the first loaded lookup row.
func NewFormState[E any](blank E) *FormState[E] {
	return &FormState[E]{blank: blank, draft: blank, errs: FieldErrors{}}
}

// Draft returns the current new-entity draft.
func (f *FormState[E]) Draft() E {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetDraft replaces the new-entity draft.
func (f *FormState[E]) SetDraft(draft E) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
}

// SeedBlank replaces the blank used by Reset, e.g. once lookup rows arrive
// and a default foreign key is known.
func (f *FormState[E]) SeedBlank(blank E) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blank = blank
	f.draft = blank
}

// BeginEdit opens the editing draft with a copy of the entity.
func (f *FormState[E]) BeginEdit(entity E) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := entity
	f.editing = &copied
	f.errs = FieldErrors{}
}

// Editing returns the active editing draft, or nil when no edit is open.
func (f *FormState[E]) Editing() *E {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editing
}

// SetEditing replaces the editing draft in place.
func (f *FormState[E]) SetEditing(entity E) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editing != nil {
		*f.editing = entity
	}
}

// Errors returns the last validation result.
func (f *FormState[E]) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// SetErrors stores a validation result.
func (f *FormState[E]) SetErrors(errs FieldErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if errs == nil {
		errs = FieldErrors{}
	}
	f.errs = errs
}

// MergeErrors overlays a reactive cross-field check (min/max) onto the
// stored map, clearing the named fields when the check passes.
func (f *FormState[E]) MergeErrors(fields []string, errs FieldErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range fields {
		delete(f.errs, field)
	}
	for k, v := range errs {
		f.errs[k] = v
	}
}

// Reset closes both drafts: the new draft returns to the blank and the
// editing draft is dropped.
func (f *FormState[E]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.blank
	f.editing = nil
	f.errs = FieldErrors{}
}
