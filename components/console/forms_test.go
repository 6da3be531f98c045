package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormStateSeedBlank(t *testing.T) {
	form := NewFormState(Service{Min: 1})

	form.SeedBlank(Service{Min: 1, Category: 7, APIID: 3})
	assert.Equal(t, 7, form.Draft().Category)

	form.SetDraft(Service{Name: "edited"})
	form.Reset()
	assert.Equal(t, 7, form.Draft().Category, "reset returns to the seeded blank")
}

func TestFormStateEditLifecycle(t *testing.T) {
	form := NewFormState(Service{})
	require.Nil(t, form.Editing())

	form.BeginEdit(Service{ID: 9, Name: "IG Followers"})
	editing := form.Editing()
	require.NotNil(t, editing)
	assert.Equal(t, 9, editing.ID)

	form.SetEditing(Service{ID: 9, Name: "IG Followers HQ"})
	assert.Equal(t, "IG Followers HQ", form.Editing().Name)

	form.Reset()
	assert.Nil(t, form.Editing())
}

func TestFormStateMergeErrorsClearsResolvedFields(t *testing.T) {
	form := NewFormState(Service{})
	form.SetErrors(FieldErrors{"name": "Name is required"})

	form.MergeErrors([]string{"min", "max"}, ValidateQuantityBounds(500, 100))
	errs := form.Errors()
	assert.Equal(t, "Min must be less than max", errs["min"])
	assert.Equal(t, "Name is required", errs["name"], "unrelated errors survive the merge")

	form.MergeErrors([]string{"min", "max"}, ValidateQuantityBounds(50, 100))
	errs = form.Errors()
	assert.NotContains(t, errs, "min")
	assert.NotContains(t, errs, "max")
}
