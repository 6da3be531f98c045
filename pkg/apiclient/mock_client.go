package apiclient

import (
	"context"
	"fmt"
	"sync"

	console "github.com/goliatone/go-admin-console/components/console"
)

// MockData seeds deterministic admin API fixtures for tests or local demos.
type MockData struct {
	APIs       []console.API
	Exchanges  []console.Exchange
	Categories []console.Category
	Services   []console.Service
	Orders     []console.Order
	Payments   []console.Payment
	Users      []console.User
	Stats      console.Statistics
}

// MockCollection implements the fetcher, CRUD, and bulk contracts over an
// in-memory slice.
type MockCollection[E any] struct {
	mu        sync.Mutex
	rows      []E
	id        func(E) int
	setID     func(E, int) E
	setActive func(E, bool) E
	nextID    int
}

// NewMockCollection seeds a collection. setID and setActive may be nil for
// read-only resources.
func NewMockCollection[E any](rows []E, id func(E) int, setID func(E, int) E, setActive func(E, bool) E) *MockCollection[E] {
	next := 1
	for _, row := range rows {
		if id(row) >= next {
			next = id(row) + 1
		}
	}
	return &MockCollection[E]{
		rows:      append([]E(nil), rows...),
		id:        id,
		setID:     setID,
		setActive: setActive,
		nextID:    next,
	}
}

// List pages through the seeded rows.
func (m *MockCollection[E]) List(ctx context.Context, limit, offset int) (console.Page[E], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page := console.Page[E]{Count: len(m.rows)}
	if offset >= len(m.rows) || limit <= 0 {
		return page, nil
	}
	end := offset + limit
	if end > len(m.rows) {
		end = len(m.rows)
	}
	page.Results = append([]E(nil), m.rows[offset:end]...)
	return page, nil
}

// Fetcher adapts List to the console's fetcher contract.
func (m *MockCollection[E]) Fetcher() console.ListFetcher[E] {
	return m.List
}

// Create assigns the next id and appends the row.
func (m *MockCollection[E]) Create(ctx context.Context, draft E) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setID == nil {
		var zero E
		return zero, fmt.Errorf("apiclient: mock collection is read-only")
	}
	created := m.setID(draft, m.nextID)
	m.nextID++
	m.rows = append(m.rows, created)
	return created, nil
}

// Update replaces the row by id.
func (m *MockCollection[E]) Update(ctx context.Context, id int, draft E) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero E
	if m.setID == nil {
		return zero, fmt.Errorf("apiclient: mock collection is read-only")
	}
	for i, row := range m.rows {
		if m.id(row) == id {
			updated := m.setID(draft, id)
			m.rows[i] = updated
			return updated, nil
		}
	}
	return zero, &APIError{Status: 404, Message: fmt.Sprintf("row %d not found", id)}
}

// Delete removes the row by id.
func (m *MockCollection[E]) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if m.id(row) == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return &APIError{Status: 404, Message: fmt.Sprintf("row %d not found", id)}
}

// SetActive flips the activation flag by id.
func (m *MockCollection[E]) SetActive(ctx context.Context, id int, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setActive == nil {
		return fmt.Errorf("apiclient: mock collection has no activation flag")
	}
	for i, row := range m.rows {
		if m.id(row) == id {
			m.rows[i] = m.setActive(row, active)
			return nil
		}
	}
	return &APIError{Status: 404, Message: fmt.Sprintf("row %d not found", id)}
}

// Rows returns a copy of the current rows.
func (m *MockCollection[E]) Rows() []E {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]E(nil), m.rows...)
}

// MockAdmin bundles mock collections for every admin resource.
type MockAdmin struct {
	APIs       *MockCollection[console.API]
	Exchanges  *MockCollection[console.Exchange]
	Categories *MockCollection[console.Category]
	Services   *MockCollection[console.Service]
	Orders     *MockCollection[console.Order]
	Payments   *MockCollection[console.Payment]
	Users      *MockCollection[console.User]
	stats      console.Statistics
}

// NewMockAdmin builds a mock admin API from the provided fixtures.
func NewMockAdmin(data MockData) *MockAdmin {
	return &MockAdmin{
		APIs: NewMockCollection(data.APIs,
			func(a console.API) int { return a.ID },
			func(a console.API, id int) console.API { a.ID = id; return a },
			func(a console.API, active bool) console.API { a.IsActive = active; return a }),
		Exchanges: NewMockCollection(data.Exchanges,
			func(e console.Exchange) int { return e.ID },
			func(e console.Exchange, id int) console.Exchange { e.ID = id; return e },
			func(e console.Exchange, active bool) console.Exchange { e.IsActive = active; return e }),
		Categories: NewMockCollection(data.Categories,
			func(c console.Category) int { return c.ID },
			func(c console.Category, id int) console.Category { c.ID = id; return c },
			func(c console.Category, active bool) console.Category { c.IsActive = active; return c }),
		Services: NewMockCollection(data.Services,
			func(s console.Service) int { return s.ID },
			func(s console.Service, id int) console.Service { s.ID = id; return s },
			func(s console.Service, active bool) console.Service { s.IsActive = active; return s }),
		Orders: NewMockCollection(data.Orders,
			func(o console.Order) int { return o.ID }, nil, nil),
		Payments: NewMockCollection(data.Payments,
			func(p console.Payment) int { return p.ID }, nil, nil),
		Users: NewMockCollection(data.Users,
			func(u console.User) int { return u.ID }, nil, nil),
		stats: data.Stats,
	}
}

// StatsFetcher returns the seeded statistics for any range tag.
func (m *MockAdmin) StatsFetcher() console.StatsFetcher {
	return func(ctx context.Context, rangeTag string) (console.Statistics, error) {
		return m.stats, nil
	}
}
