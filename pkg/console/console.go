package console

import (
	core "github.com/goliatone/go-admin-console/components/console"
)

// Screen exposes the underlying components/console screen engine.
type Screen[E any] = core.Screen[E]

// ScreenConfig re-export for convenience.
type ScreenConfig[E any] = core.ScreenConfig[E]

// Registry re-export for convenience.
type Registry = core.Registry

// DateRangeState re-export for convenience.
type DateRangeState = core.DateRangeState

// NewScreen proxies to the internal constructor.
func NewScreen[E any](cfg core.ScreenConfig[E], fetch core.ListFetcher[E], opts ...core.ScreenOption[E]) (*core.Screen[E], error) {
	return core.NewScreen(cfg, fetch, opts...)
}

// NewRegistry proxies to the internal constructor.
func NewRegistry() *core.Registry {
	return core.NewRegistry()
}
