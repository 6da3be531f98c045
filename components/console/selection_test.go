package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle(3)
	sel.Toggle(1)
	assert.True(t, sel.Has(3))
	assert.Equal(t, []int{1, 3}, sel.IDs())

	sel.Toggle(3)
	assert.False(t, sel.Has(3))
	assert.Equal(t, 1, sel.Len())
}

func TestToggleAllRoundTrip(t *testing.T) {
	sel := NewSelection()
	view := []int{4, 5, 6}

	sel.ToggleAll(view)
	assert.Equal(t, []int{4, 5, 6}, sel.IDs())
	assert.True(t, sel.AllSelected(view))

	sel.ToggleAll(view)
	assert.Zero(t, sel.Len())
}

func TestToggleAllWithPartialSelectionSelectsAll(t *testing.T) {
	sel := NewSelection()
	view := []int{4, 5, 6}

	sel.Toggle(5)
	sel.ToggleAll(view)
	assert.Equal(t, []int{4, 5, 6}, sel.IDs())
}

func TestAllSelectedIsDerived(t *testing.T) {
	sel := NewSelection()

	assert.False(t, sel.AllSelected(nil), "empty view is never fully selected")

	sel.Toggle(1)
	sel.Toggle(2)
	assert.True(t, sel.AllSelected([]int{1, 2}))
	// Narrowing the view changes the answer without touching the selection.
	assert.True(t, sel.AllSelected([]int{1}))
	assert.False(t, sel.AllSelected([]int{1, 2, 3}))
}
