package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
)

// DashboardMetrics is the card + chart payload for the active range.
type DashboardMetrics struct {
	Predefined console.PredefinedRange `json:"predefined"`
	HasData    bool                    `json:"has_data"`
	Cards      []console.MetricCard    `json:"cards"`
	Chart      []console.SeriesPoint   `json:"chart"`
}

// DashboardMetricsQuery reads the shared date range state.
type DashboardMetricsQuery struct {
	state *console.DateRangeState
}

// NewDashboardMetricsQuery builds the query.
func NewDashboardMetricsQuery(state *console.DateRangeState) *DashboardMetricsQuery {
	return &DashboardMetricsQuery{state: state}
}

var _ gocommand.Querier[struct{}, DashboardMetrics] = (*DashboardMetricsQuery)(nil)

// Query snapshots the current metrics without re-fetching.
func (q *DashboardMetricsQuery) Query(ctx context.Context, _ struct{}) (DashboardMetrics, error) {
	return DashboardMetrics{
		Predefined: q.state.Predefined(),
		HasData:    q.state.HasData(),
		Cards:      console.MetricCards(q.state.Metrics()),
		Chart:      q.state.Chart(),
	}, nil
}
