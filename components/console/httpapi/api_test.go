package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
	"github.com/goliatone/go-admin-console/components/console/commands"
	"github.com/goliatone/go-admin-console/components/console/queries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers(t *testing.T) (*Handlers, console.TableScreen) {
	t.Helper()
	rows := []console.Exchange{
		{ID: 1, Name: "Binance", IsActive: true},
		{ID: 2, Name: "Kraken", IsActive: true},
	}
	screen, err := console.NewScreen(console.ExchangeScreenConfig(),
		func(ctx context.Context, limit, offset int) (console.Page[console.Exchange], error) {
			return console.Page[console.Exchange]{Count: len(rows), Results: rows}, nil
		})
	require.NoError(t, err)

	reg := console.NewRegistry()
	require.NoError(t, reg.RegisterScreen(screen))

	state, err := console.NewDateRangeState(console.DateRangeOptions{
		Fetch: func(ctx context.Context, rangeTag string) (console.Statistics, error) {
			return console.Statistics{Chart: []console.SeriesPoint{{Label: "x", Value: 1}}}, nil
		},
	})
	require.NoError(t, err)

	orchestrator := console.NewBulkOrchestrator(stubBulkClient{}, nil)
	return &Handlers{
		Load: commands.NewLoadScreenCommand(reg, nil),
		Bulk: map[console.EntityKind]gocommand.Commander[commands.BulkActionMessage]{
			console.KindExchanges: commands.NewBulkActionCommand(screen, orchestrator, nil),
		},
		SetRange: commands.NewSetRangeCommand(state, nil),
		Refresh:  commands.NewRefreshStatsCommand(state, nil),
		Snapshot: queries.NewSnapshotQuery(reg),
		Metrics:  queries.NewDashboardMetricsQuery(state),
	}, screen
}

type stubBulkClient struct{}

func (stubBulkClient) SetActive(ctx context.Context, id int, active bool) error { return nil }
func (stubBulkClient) Delete(ctx context.Context, id int) error                 { return nil }

func TestHandleLoadThenSnapshot(t *testing.T) {
	handlers, _ := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/screens/load", strings.NewReader(`{"Kind":"exchanges"}`))
	rec := httptest.NewRecorder()
	handlers.HandleLoadScreen(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handlers.HandleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/screens/exchanges", nil), "exchanges")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap console.TableSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, console.KindExchanges, snap.Kind)
	assert.Equal(t, 2, snap.Count)
	assert.Len(t, snap.Rows, 2)
}

func TestHandleSnapshotUnknownKind(t *testing.T) {
	handlers, _ := testHandlers(t)

	rec := httptest.NewRecorder()
	handlers.HandleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/screens/payments", nil), "payments")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleBulkActionUnconfirmedIs400(t *testing.T) {
	handlers, screen := testHandlers(t)
	require.NoError(t, screen.Load(context.Background()))

	body := `{"Action":"deactivate","IDs":[1,2],"Confirmed":false}`
	rec := httptest.NewRecorder()
	handlers.HandleBulkAction(rec, httptest.NewRequest(http.MethodPost, "/screens/exchanges/bulk", strings.NewReader(body)), "exchanges")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "deactivate 2 rows?")
}

func TestHandleBulkActionAppliesToScreen(t *testing.T) {
	handlers, screen := testHandlers(t)
	require.NoError(t, screen.Load(context.Background()))

	body := `{"Action":"deactivate","IDs":[1],"Confirmed":true}`
	rec := httptest.NewRecorder()
	handlers.HandleBulkAction(rec, httptest.NewRequest(http.MethodPost, "/screens/exchanges/bulk", strings.NewReader(body)), "exchanges")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleBulkActionUnknownScreenIs404(t *testing.T) {
	handlers, _ := testHandlers(t)

	rec := httptest.NewRecorder()
	handlers.HandleBulkAction(rec, httptest.NewRequest(http.MethodPost, "/screens/orders/bulk", strings.NewReader(`{}`)), "orders")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSetRangeAndMetrics(t *testing.T) {
	handlers, _ := testHandlers(t)

	rec := httptest.NewRecorder()
	handlers.HandleSetRange(rec, httptest.NewRequest(http.MethodPost, "/range", strings.NewReader(`{"Predefined":"7d"}`)))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handlers.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var metrics queries.DashboardMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, console.Range7D, metrics.Predefined)
	assert.True(t, metrics.HasData)
}

func TestHandleRefreshStats(t *testing.T) {
	handlers, _ := testHandlers(t)

	rec := httptest.NewRecorder()
	handlers.HandleRefreshStats(rec, httptest.NewRequest(http.MethodPost, "/stats/refresh", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRespondErrorMapsValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, &console.ValidationError{Fields: map[string]string{"name": "This field is required."}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "This field is required.", fields["name"])
}

func TestRespondErrorMapsConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, console.ErrExchangeInUse)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
