package queries

import (
	"context"
	"testing"

	console "github.com/goliatone/go-admin-console/components/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exchangeScreen(t *testing.T, rows []console.Exchange) (*console.Registry, console.TableScreen) {
	t.Helper()
	screen, err := console.NewScreen(console.ExchangeScreenConfig(),
		func(ctx context.Context, limit, offset int) (console.Page[console.Exchange], error) {
			return console.Page[console.Exchange]{Count: len(rows), Results: rows}, nil
		})
	require.NoError(t, err)
	reg := console.NewRegistry()
	require.NoError(t, reg.RegisterScreen(screen))
	return reg, screen
}

func TestSnapshotQueryReturnsTableState(t *testing.T) {
	reg, screen := exchangeScreen(t, []console.Exchange{
		{ID: 1, Name: "Binance", IsActive: true},
		{ID: 2, Name: "Kraken", IsActive: true},
	})
	require.NoError(t, screen.Load(context.Background()))
	screen.ToggleRow(2)

	snap, err := NewSnapshotQuery(reg).Query(context.Background(), SnapshotInput{Kind: console.KindExchanges})
	require.NoError(t, err)
	assert.Equal(t, console.KindExchanges, snap.Kind)
	assert.Equal(t, 2, snap.Count)
	assert.Len(t, snap.Rows, 2)
	assert.Equal(t, []int{2}, snap.Selected)
}

func TestSnapshotQueryUnknownKind(t *testing.T) {
	reg, _ := exchangeScreen(t, nil)

	_, err := NewSnapshotQuery(reg).Query(context.Background(), SnapshotInput{Kind: console.KindPayments})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screen payments not registered")
}

func TestDefinitionsQueryListsDefaults(t *testing.T) {
	reg, _ := exchangeScreen(t, nil)

	defs, err := NewDefinitionsQuery(reg).Query(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.Len(t, defs, 7)
	assert.Equal(t, console.KindAPIs, defs[0].Kind)
}

func TestDashboardMetricsQueryShapesCards(t *testing.T) {
	state, err := console.NewDateRangeState(console.DateRangeOptions{
		Fetch: func(ctx context.Context, rangeTag string) (console.Statistics, error) {
			return console.Statistics{
				Metrics: console.MetricsSnapshot{
					Orders: console.MetricPair{Current: 120, Previous: 100},
				},
				Chart: []console.SeriesPoint{{Label: "Mar 1", Value: 3}},
			}, nil
		},
	})
	require.NoError(t, err)
	require.NoError(t, state.Refresh(context.Background()))

	metrics, err := NewDashboardMetricsQuery(state).Query(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.Equal(t, console.Range30D, metrics.Predefined)
	assert.True(t, metrics.HasData)
	require.Len(t, metrics.Cards, 4)
	assert.InDelta(t, 20.0, metrics.Cards[0].PercentChange, 0.0001)
	require.Len(t, metrics.Chart, 1)
}
