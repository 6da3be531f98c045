package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFetcher[E any](rows []E) ListFetcher[E] {
	return func(ctx context.Context, limit, offset int) (Page[E], error) {
		return Page[E]{Count: len(rows), Results: rows}, nil
	}
}

func TestNewRegistrySeedsDefaults(t *testing.T) {
	reg := NewRegistry()

	defs := reg.Definitions()
	require.Len(t, defs, 7)
	kinds := make([]EntityKind, len(defs))
	for i, def := range defs {
		kinds[i] = def.Kind
	}
	assert.Equal(t, []EntityKind{
		KindAPIs, KindCategories, KindExchanges, KindOrders,
		KindPayments, KindServices, KindUsers,
	}, kinds)

	services, ok := reg.Definition(KindServices)
	require.True(t, ok)
	assert.Equal(t, 4, services.PageSize)
}

func TestRegisterScreenRequiresDefinition(t *testing.T) {
	reg := &Registry{
		definitions: map[EntityKind]ScreenDefinition{},
		screens:     map[EntityKind]TableScreen{},
	}

	screen, err := NewScreen(ExchangeScreenConfig(), fixedFetcher([]Exchange{}))
	require.NoError(t, err)

	err = reg.RegisterScreen(screen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definition exchanges not found")

	require.NoError(t, reg.RegisterDefinition(ScreenDefinition{Kind: KindExchanges}))
	require.NoError(t, reg.RegisterScreen(screen))

	got, ok := reg.Screen(KindExchanges)
	require.True(t, ok)
	assert.Equal(t, KindExchanges, got.Kind())
	assert.Equal(t, []EntityKind{KindExchanges}, reg.Kinds())
}

func TestRegistryLoadManifestReplacesDefaults(t *testing.T) {
	reg := NewRegistry()
	doc := &ScreenManifestDocument{
		Version: ManifestVersion,
		Screens: []ScreenDefinition{{
			Kind:     KindAPIs,
			PageSize: 25,
			Columns:  []ColumnDefinition{{Field: "id", Kind: "numeric"}},
		}},
	}

	require.NoError(t, reg.LoadManifest(doc))
	def, ok := reg.Definition(KindAPIs)
	require.True(t, ok)
	assert.Equal(t, 25, def.PageSize)
}

func TestRegistryLoadManifestRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	require.Error(t, reg.LoadManifest(nil))
	require.Error(t, reg.LoadManifest(&ScreenManifestDocument{Version: ManifestVersion}))
}

func TestApplyDefinitionOverlays(t *testing.T) {
	cfg := ExchangeScreenConfig()
	cfg = ApplyDefinition(cfg, ScreenDefinition{
		Kind:        KindExchanges,
		PageSize:    12,
		Searchable:  []string{"name", "price"},
		DefaultSort: SortSpec{Field: "price", Direction: SortDesc},
	})

	assert.Equal(t, 12, cfg.PageSize)
	assert.Equal(t, []string{"name", "price"}, cfg.Searchable)
	assert.Equal(t, SortSpec{Field: "price", Direction: SortDesc}, cfg.DefaultSort)
}

func TestScreenHooksRunAgainstNewRegistries(t *testing.T) {
	calls := 0
	RegisterScreenHook(func(reg *Registry) error {
		calls++
		return reg.RegisterDefinition(ScreenDefinition{Kind: KindAPIs, PageSize: 50})
	})

	reg := NewRegistry()
	assert.GreaterOrEqual(t, calls, 1)
	def, ok := reg.Definition(KindAPIs)
	require.True(t, ok)
	assert.Equal(t, 50, def.PageSize)
}

func TestUserScreenConfigSortsByIDByDefault(t *testing.T) {
	rows := []User{
		{ID: 3, Username: "carol"},
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}
	screen, err := NewScreen(UserScreenConfig(), fixedFetcher(rows))
	require.NoError(t, err)
	require.NoError(t, screen.Load(context.Background()))

	view := screen.View()
	require.Len(t, view, 3)
	assert.Equal(t, 1, view[0].ID)
	assert.Equal(t, 3, view[2].ID)
}

func TestMatchHelpersAcceptTransportValues(t *testing.T) {
	cfg := APIScreenConfig(Lookups{})

	active := cfg.Filters["active"]
	assert.True(t, active(API{IsActive: true}, "active"))
	assert.True(t, active(API{IsActive: false}, "0"))
	assert.False(t, active(API{IsActive: true}, "inactive"))
	assert.False(t, active(API{IsActive: true}, 7))

	exchange := cfg.Filters["exchange"]
	assert.True(t, exchange(API{ExchangeID: 3}, 3))
	assert.True(t, exchange(API{ExchangeID: 3}, float64(3)))
	assert.True(t, exchange(API{ExchangeID: 3}, " 3 "))
	assert.False(t, exchange(API{ExchangeID: 3}, "x"))
}
