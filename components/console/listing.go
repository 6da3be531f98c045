package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll is the sentinel meaning "this filter is inactive".
const FilterAll = "all"

// DefaultPageSize matches the list endpoints' default limit.
const DefaultPageSize = 10

var (
	errMissingFetcher = errors.New("console: screen fetcher is not configured")
	errMissingID      = errors.New("console: screen id accessor is required")
)

// SortDirection orders a sorted column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is the single active sort for a screen.
type SortSpec struct {
	Field     string        `json:"field,omitempty" yaml:"field,omitempty"`
	Direction SortDirection `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// CompareKind selects the comparator used for a sortable field.
type CompareKind int

const (
	// CompareLexical compares values as strings with locale-aware collation.
	CompareLexical CompareKind = iota
	// CompareNumeric parses values as numbers (price, percentage, quantity, duration).
	CompareNumeric
	// CompareBool orders false before true.
	CompareBool
	// CompareTime compares as epoch millis; missing dates count as epoch 0.
	CompareTime
	// CompareLookup resolves a foreign key to its display name and compares that.
	CompareLookup
)

// FieldSpec describes one sortable/searchable column of a screen. Lookup
// fields may carry their own resolver; otherwise the screen-level resolver
// applies.
type FieldSpec[E any] struct {
	Kind   CompareKind
	Value  func(E) any
	Lookup LookupResolver
}

// FilterPredicate reports whether an entity passes a filter set to value.
// The engine never calls predicates for inactive filters.
type FilterPredicate[E any] func(entity E, value any) bool

// LookupResolver maps a foreign key id to its display name. Unresolved ids
// render and sort as "Unknown".
type LookupResolver func(id int) (string, bool)

// ScreenConfig parametrizes the generic table engine for one entity kind.
type ScreenConfig[E any] struct {
	Kind       EntityKind
	PageSize   int
	ID         func(E) int
	Fields     map[string]FieldSpec[E]
	Searchable []string
	Filters    map[string]FilterPredicate[E]
	Lookup     LookupResolver
	// SetActive patches the activation flag locally after a successful bulk
	// call. Screens without an is_active column leave it nil.
	SetActive func(E, bool) E
	// DefaultSort applies until the user picks a column.
	DefaultSort SortSpec
}

// Screen holds the page-local list state for one entity kind: the fetched
// page, the filter/sort/search spec, the selection, and the page-level error.
// All methods are safe for concurrent use.
type Screen[E any] struct {
	mu        sync.Mutex
	cfg       ScreenConfig[E]
	fetch     ListFetcher[E]
	telemetry Telemetry

	items   []E
	count   int
	page    int
	loading bool
	pageErr string

	sortSpec  SortSpec
	search    string
	filters   map[string]any
	selection *Selection

	generation atomic.Uint64
	collator   *collate.Collator
}

// NewScreen builds a screen over the given fetcher.
func NewScreen[E any](cfg ScreenConfig[E], fetch ListFetcher[E], opts ...ScreenOption[E]) (*Screen[E], error) {
	if cfg.ID == nil {
		return nil, errMissingID
	}
	if fetch == nil {
		return nil, errMissingFetcher
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	s := &Screen[E]{
		cfg:       cfg,
		fetch:     fetch,
		telemetry: noopTelemetry{},
		page:      1,
		sortSpec:  cfg.DefaultSort,
		filters:   map[string]any{},
		selection: NewSelection(),
		collator:  collate.New(language.English),
	}
	if s.sortSpec.Field == "" {
		s.sortSpec = SortSpec{Field: "created_at", Direction: SortDesc}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ScreenOption customizes screen construction.
type ScreenOption[E any] func(*Screen[E])

// WithScreenTelemetry records screen events on the given sink.
func WithScreenTelemetry[E any](t Telemetry) ScreenOption[E] {
	return func(s *Screen[E]) {
		s.telemetry = normalizeTelemetry(t)
	}
}

// WithCollation overrides the locale used for lexical column comparison.
func WithCollation[E any](tag language.Tag) ScreenOption[E] {
	return func(s *Screen[E]) {
		s.collator = collate.New(tag)
	}
}

// PageOffset converts a 1-based page number into a list endpoint offset.
func PageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// TotalPages derives the page count from the server-side row count.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Load fetches the current page, replacing list state wholesale. Each call
// claims a new generation; a response arriving after a newer Load started is
// discarded so superseded fetches can never clobber fresh state.
func (s *Screen[E]) Load(ctx context.Context) error {
	gen := s.generation.Add(1)

	s.mu.Lock()
	s.loading = true
	page := s.page
	limit := s.cfg.PageSize
	s.mu.Unlock()

	result, err := s.fetch(ctx, limit, PageOffset(page, limit))

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation.Load() {
		// A newer Load superseded this response.
		return nil
	}
	s.loading = false
	if err != nil {
		s.items = nil
		s.pageErr = err.Error()
		s.telemetry.Record(ctx, "console.screen.load_error", map[string]any{
			"kind":  string(s.cfg.Kind),
			"page":  page,
			"error": err.Error(),
		})
		return err
	}
	s.items = result.Results
	s.count = result.Count
	s.pageErr = ""
	s.telemetry.Record(ctx, "console.screen.load", map[string]any{
		"kind":  string(s.cfg.Kind),
		"page":  page,
		"count": result.Count,
	})
	return nil
}

// SetPage moves to the given 1-based page and reloads. Out-of-range pages are
// ignored. The selection is scoped to the visible page and resets.
func (s *Screen[E]) SetPage(ctx context.Context, page int) error {
	s.mu.Lock()
	total := TotalPages(s.count, s.cfg.PageSize)
	if page < 1 || (total > 0 && page > total) {
		s.mu.Unlock()
		return nil
	}
	s.page = page
	s.selection.Clear()
	s.mu.Unlock()
	return s.Load(ctx)
}

// SortBy toggles sorting on field: selecting the active field flips the
// direction, selecting a new field resets to ascending.
func (s *Screen[E]) SortBy(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortSpec.Field == field {
		if s.sortSpec.Direction == SortAsc {
			s.sortSpec.Direction = SortDesc
		} else {
			s.sortSpec.Direction = SortAsc
		}
		return
	}
	s.sortSpec = SortSpec{Field: field, Direction: SortAsc}
}

// Sort returns the active sort spec.
func (s *Screen[E]) Sort() SortSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortSpec
}

// SetSearch updates the free-text query and resets the selection, which is
// scoped to the filtered view.
func (s *Screen[E]) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = query
	s.selection.Clear()
}

// SetFilter activates a filter. Passing FilterAll deactivates it.
func (s *Screen[E]) SetFilter(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == FilterAll || value == nil {
		delete(s.filters, key)
	} else {
		s.filters[key] = value
	}
	s.selection.Clear()
}

// ResetFilters deactivates every filter and clears the search query.
func (s *Screen[E]) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = map[string]any{}
	s.search = ""
	s.selection.Clear()
}

// Filter returns the active value for key, or FilterAll.
func (s *Screen[E]) Filter(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.filters[key]; ok {
		return v
	}
	return FilterAll
}

// View derives the displayed rows: active filters AND the search predicate,
// then the stable sort. Pure with respect to list state; recomputed per call.
func (s *Screen[E]) View() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Screen[E]) viewLocked() []E {
	filtered := make([]E, 0, len(s.items))
	for _, item := range s.items {
		if s.passesLocked(item) {
			filtered = append(filtered, item)
		}
	}
	s.sortLocked(filtered)
	return filtered
}

func (s *Screen[E]) passesLocked(item E) bool {
	for key, value := range s.filters {
		pred, ok := s.cfg.Filters[key]
		if !ok {
			continue
		}
		if !pred(item, value) {
			return false
		}
	}
	if s.search == "" {
		return true
	}
	needle := strings.ToLower(s.search)
	for _, field := range s.cfg.Searchable {
		spec, ok := s.cfg.Fields[field]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s.stringify(spec, item)), needle) {
			return true
		}
	}
	return false
}

func (s *Screen[E]) sortLocked(items []E) {
	spec, ok := s.cfg.Fields[s.sortSpec.Field]
	if !ok {
		return
	}
	desc := s.sortSpec.Direction == SortDesc
	sort.SliceStable(items, func(i, j int) bool {
		c := s.compare(spec, items[i], items[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func (s *Screen[E]) compare(spec FieldSpec[E], a, b E) int {
	av, bv := spec.Value(a), spec.Value(b)
	switch spec.Kind {
	case CompareNumeric:
		an, bn := numericValue(av), numericValue(bv)
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case CompareBool:
		an, bn := boolRank(av), boolRank(bv)
		return an - bn
	case CompareTime:
		an, bn := epochMillis(av), epochMillis(bv)
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case CompareLookup:
		return s.collator.CompareString(s.lookupName(spec, av), s.lookupName(spec, bv))
	default:
		return s.collator.CompareString(lexicalValue(av), lexicalValue(bv))
	}
}

func (s *Screen[E]) stringify(spec FieldSpec[E], item E) string {
	v := spec.Value(item)
	switch spec.Kind {
	case CompareNumeric:
		return strconv.FormatFloat(numericValue(v), 'f', -1, 64)
	case CompareLookup:
		return s.lookupName(spec, v)
	default:
		return lexicalValue(v)
	}
}

func (s *Screen[E]) lookupName(spec FieldSpec[E], v any) string {
	resolver := spec.Lookup
	if resolver == nil {
		resolver = s.cfg.Lookup
	}
	id, ok := v.(int)
	if ok && resolver != nil {
		if name, found := resolver(id); found {
			return name
		}
	}
	return "Unknown"
}

// Items returns the raw fetched page in server order.
func (s *Screen[E]) Items() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the server-side total row count.
func (s *Screen[E]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Page returns the current 1-based page number.
func (s *Screen[E]) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize returns the fixed page length for this screen.
func (s *Screen[E]) PageSize() int {
	return s.cfg.PageSize
}

// Pages returns the total page count derived from Count.
func (s *Screen[E]) Pages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalPages(s.count, s.cfg.PageSize)
}

// Loading reports whether a page fetch is outstanding.
func (s *Screen[E]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the page-level error message, empty when the last load succeeded.
func (s *Screen[E]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageErr
}

func (s *Screen[E]) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageErr = msg
}

// Selection returns the selection tracker scoped to this screen's view.
func (s *Screen[E]) Selection() *Selection {
	return s.selection
}

// ViewIDs returns the ids of the currently filtered+sorted rows.
func (s *Screen[E]) ViewIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.viewLocked()
	ids := make([]int, len(view))
	for i, item := range view {
		ids[i] = s.cfg.ID(item)
	}
	return ids
}

// ToggleAll toggles between an empty selection and the full filtered view.
func (s *Screen[E]) ToggleAll() {
	s.selection.ToggleAll(s.ViewIDs())
}

// AllSelected derives whether every filtered row is selected. Derived on
// demand rather than stored so it cannot drift when filters change.
func (s *Screen[E]) AllSelected() bool {
	return s.selection.AllSelected(s.ViewIDs())
}

// Kind reports which entity collection the screen is bound to.
func (s *Screen[E]) Kind() EntityKind {
	return s.cfg.Kind
}

// ToggleRow flips the selection state of a single row.
func (s *Screen[E]) ToggleRow(id int) {
	s.selection.Toggle(id)
}

// Snapshot flattens the screen into a type-erased view for transports.
func (s *Screen[E]) Snapshot() TableSnapshot {
	s.mu.Lock()
	view := s.viewLocked()
	rows := make([]any, len(view))
	ids := make([]int, len(view))
	for i, item := range view {
		rows[i] = item
		ids[i] = s.cfg.ID(item)
	}
	snap := TableSnapshot{
		Kind:     s.cfg.Kind,
		Page:     s.page,
		Pages:    TotalPages(s.count, s.cfg.PageSize),
		PageSize: s.cfg.PageSize,
		Count:    s.count,
		Loading:  s.loading,
		Error:    s.pageErr,
		Sort:     s.sortSpec,
		Search:   s.search,
		Rows:     rows,
	}
	s.mu.Unlock()
	snap.Selected = s.selection.IDs()
	snap.AllSelected = s.selection.AllSelected(ids)
	return snap
}

// applyCreated appends a server-confirmed row, preserving server order for
// the rest of the page.
func (s *Screen[E]) applyCreated(entity E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, entity)
	s.count++
}

// applyUpdated replaces the row with the same id in place.
func (s *Screen[E]) applyUpdated(entity E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.cfg.ID(entity)
	for i, item := range s.items {
		if s.cfg.ID(item) == id {
			s.items[i] = entity
			return
		}
	}
}

// applyDeleted removes the row by id.
func (s *Screen[E]) applyDeleted(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if s.cfg.ID(item) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.count--
			return
		}
	}
}

// ApplyBulk folds a bulk report into list state: activation flags flip (and
// rows disappear) only for ids whose call succeeded, then the selection is
// cleared.
func (s *Screen[E]) ApplyBulk(report BulkReport) {
	succeeded := make(map[int]struct{}, len(report.Succeeded))
	for _, id := range report.Succeeded {
		succeeded[id] = struct{}{}
	}
	s.mu.Lock()
	switch report.Action {
	case BulkDelete:
		kept := s.items[:0]
		for _, item := range s.items {
			if _, ok := succeeded[s.cfg.ID(item)]; ok {
				s.count--
				continue
			}
			kept = append(kept, item)
		}
		s.items = kept
	case BulkActivate, BulkDeactivate:
		if s.cfg.SetActive != nil {
			active := report.Action == BulkActivate
			for i, item := range s.items {
				if _, ok := succeeded[s.cfg.ID(item)]; ok {
					s.items[i] = s.cfg.SetActive(item, active)
				}
			}
		}
	}
	s.mu.Unlock()
	s.selection.Clear()
}

func numericValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func boolRank(v any) int {
	if b, ok := v.(bool); ok && b {
		return 1
	}
	return 0
}

func epochMillis(v any) int64 {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	case *time.Time:
		if t == nil || t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	}
	return 0
}

func lexicalValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case int:
		return strconv.Itoa(s)
	}
	return fmt.Sprintf("%v", v)
}
