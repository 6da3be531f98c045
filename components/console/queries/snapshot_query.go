package queries

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
)

// SnapshotInput identifies the screen to view.
type SnapshotInput struct {
	Kind console.EntityKind
}

// SnapshotQuery renders the current table state for a screen: rows after
// filter/sort/search, pagination, selection.
type SnapshotQuery struct {
	registry *console.Registry
}

// NewSnapshotQuery builds the query.
func NewSnapshotQuery(registry *console.Registry) *SnapshotQuery {
	return &SnapshotQuery{registry: registry}
}

var _ gocommand.Querier[SnapshotInput, console.TableSnapshot] = (*SnapshotQuery)(nil)

// Query derives the snapshot without touching the network.
func (q *SnapshotQuery) Query(ctx context.Context, input SnapshotInput) (console.TableSnapshot, error) {
	screen, ok := q.registry.Screen(input.Kind)
	if !ok {
		return console.TableSnapshot{}, fmt.Errorf("screen %s not registered", input.Kind)
	}
	return screen.Snapshot(), nil
}

// DefinitionsQuery lists the registered screen definitions.
type DefinitionsQuery struct {
	registry *console.Registry
}

// NewDefinitionsQuery builds the query.
func NewDefinitionsQuery(registry *console.Registry) *DefinitionsQuery {
	return &DefinitionsQuery{registry: registry}
}

var _ gocommand.Querier[struct{}, []console.ScreenDefinition] = (*DefinitionsQuery)(nil)

// Query returns every definition sorted by kind.
func (q *DefinitionsQuery) Query(ctx context.Context, _ struct{}) ([]console.ScreenDefinition, error) {
	return q.registry.Definitions(), nil
}
