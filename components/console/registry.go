package console

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// TableSnapshot is a type-erased view of a screen, shaped for transports
// that cannot see the generic element type.
type TableSnapshot struct {
	Kind        EntityKind `json:"kind"`
	Page        int        `json:"page"`
	Pages       int        `json:"pages"`
	PageSize    int        `json:"page_size"`
	Count       int        `json:"count"`
	Loading     bool       `json:"loading"`
	Error       string     `json:"error,omitempty"`
	Sort        SortSpec   `json:"sort"`
	Search      string     `json:"search,omitempty"`
	Rows        []any      `json:"rows"`
	Selected    []int      `json:"selected"`
	AllSelected bool       `json:"all_selected"`
}

// TableScreen is the non-generic surface every Screen[E] satisfies. The
// command and HTTP layers drive screens through it.
type TableScreen interface {
	Kind() EntityKind
	Load(ctx context.Context) error
	SetPage(ctx context.Context, page int) error
	SortBy(field string)
	SetSearch(query string)
	SetFilter(key string, value any)
	ResetFilters()
	ToggleRow(id int)
	ToggleAll()
	ApplyBulk(report BulkReport)
	Snapshot() TableSnapshot
}

// ScreenHook lets packages register screens during init().
type ScreenHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []ScreenHook
)

// RegisterScreenHook registers a hook executed against new registries.
func RegisterScreenHook(h ScreenHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry maps entity kinds to their screen definitions and live screens.
type Registry struct {
	mu          sync.RWMutex
	definitions map[EntityKind]ScreenDefinition
	screens     map[EntityKind]TableScreen
}

// NewRegistry builds a registry seeded with the default screen definitions
// and applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[EntityKind]ScreenDefinition{},
		screens:     map[EntityKind]TableScreen{},
	}
	for _, def := range DefaultScreenDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered screen hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// LoadManifest validates a manifest document and registers its definitions,
// replacing any defaults with the same kind.
func (r *Registry) LoadManifest(doc *ScreenManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("console: manifest document is nil")
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	for _, def := range doc.Screens {
		if err := r.RegisterDefinition(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores screen metadata.
func (r *Registry) RegisterDefinition(def ScreenDefinition) error {
	if def.Kind == "" {
		return fmt.Errorf("console: screen definition kind is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Kind] = def
	return nil
}

// RegisterScreen associates a live screen with a definition.
func (r *Registry) RegisterScreen(screen TableScreen) error {
	if screen == nil {
		return fmt.Errorf("console: screen cannot be nil")
	}
	kind := screen.Kind()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[kind]; !ok {
		return fmt.Errorf("console: screen definition %s not found", kind)
	}
	r.screens[kind] = screen
	return nil
}

// Definition fetches a screen definition by kind.
func (r *Registry) Definition(kind EntityKind) (ScreenDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[kind]
	return def, ok
}

// Screen fetches a live screen by kind.
func (r *Registry) Screen(kind EntityKind) (TableScreen, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	screen, ok := r.screens[kind]
	return screen, ok
}

// Definitions returns all registered definitions sorted by kind.
func (r *Registry) Definitions() []ScreenDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]ScreenDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Kind < defs[j].Kind })
	return defs
}

// Kinds returns the kinds with live screens attached, sorted.
func (r *Registry) Kinds() []EntityKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]EntityKind, 0, len(r.screens))
	for kind := range r.screens {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
