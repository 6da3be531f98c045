package console

import (
	"sort"
	"sync"
)

// Selection tracks the checked row ids of a screen. It is scoped to the
// currently filtered view: select-all operates on the view's ids, and
// whether "everything" is selected is always derived against the view
// rather than stored.
type Selection struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: map[int]struct{}{}}
}

// Toggle flips membership of a single id.
func (s *Selection) Toggle(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll selects every id in viewIDs, or clears the selection when all of
// them are already selected. Toggling twice round-trips to the original
// empty state.
func (s *Selection) ToggleAll(viewIDs []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allSelectedLocked(viewIDs) {
		s.ids = map[int]struct{}{}
		return
	}
	s.ids = make(map[int]struct{}, len(viewIDs))
	for _, id := range viewIDs {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = map[int]struct{}{}
}

// Has reports whether id is selected.
func (s *Selection) Has(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// AllSelected reports whether the selection covers the entire non-empty view.
func (s *Selection) AllSelected(viewIDs []int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allSelectedLocked(viewIDs)
}

func (s *Selection) allSelectedLocked(viewIDs []int) bool {
	if len(viewIDs) == 0 {
		return false
	}
	if len(s.ids) != len(viewIDs) {
		return false
	}
	for _, id := range viewIDs {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}
