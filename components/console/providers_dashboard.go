package console

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// MetricCard is one dashboard stat card with its derived change.
type MetricCard struct {
	Name          string  `json:"name"`
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	PercentChange float64 `json:"percent_change"`
}

// MetricCards shapes a snapshot into the four dashboard cards, deriving the
// percent change for each.
func MetricCards(snapshot MetricsSnapshot) []MetricCard {
	pairs := []struct {
		name string
		pair MetricPair
	}{
		{"orders", snapshot.Orders},
		{"revenue", snapshot.Revenue},
		{"services", snapshot.Services},
		{"users", snapshot.Users},
	}
	cards := make([]MetricCard, len(pairs))
	for i, p := range pairs {
		cards[i] = MetricCard{
			Name:          p.name,
			Current:       p.pair.Current,
			Previous:      p.pair.Previous,
			PercentChange: PercentChange(p.pair.Current, p.pair.Previous),
		}
	}
	return cards
}

// DashboardChart renders the orders chart for the active date range: the
// bucketer derives the labels, the fetched series fills the values, and the
// echarts renderer draws the result. When the range has no data every bucket
// renders as zero.
type DashboardChart struct {
	state    *DateRangeState
	renderer *EChartsRenderer
	now      func() time.Time
}

// NewDashboardChart wires the shared range state to a renderer.
func NewDashboardChart(state *DateRangeState, renderer *EChartsRenderer) (*DashboardChart, error) {
	if state == nil {
		return nil, errors.New("console: dashboard chart requires date range state")
	}
	if renderer == nil {
		renderer = NewEChartsRenderer("bar")
	}
	return &DashboardChart{state: state, renderer: renderer, now: time.Now}, nil
}

// Render produces chart HTML for the current range.
func (c *DashboardChart) Render(ctx context.Context) (string, error) {
	pre := c.state.Predefined()
	plan := BucketLabels(c.state.Range(), pre, c.now())
	points := c.alignedPoints(plan)
	title := "Orders"
	subtitle := string(pre)
	if pre != RangeAll && pre != RangeCustom {
		subtitle = fmt.Sprintf("last %s", pre)
	}
	return c.renderer.Render(title, subtitle, "Orders", plan.Labels, points)
}

// alignedPoints maps the fetched series onto the bucket labels. Buckets the
// server did not report, and every bucket when the range has no data, carry
// a zero value.
func (c *DashboardChart) alignedPoints(plan BucketPlan) []SeriesPoint {
	points := make([]SeriesPoint, len(plan.Labels))
	for i, label := range plan.Labels {
		points[i] = SeriesPoint{Label: label}
	}
	if !c.state.HasData() {
		return points
	}
	fetched := c.state.Chart()
	byLabel := make(map[string]float64, len(fetched))
	for _, p := range fetched {
		byLabel[p.Label] = p.Value
	}
	for i, label := range plan.Labels {
		if v, ok := byLabel[label]; ok {
			points[i].Value = v
			continue
		}
		// Positional fallback for servers that label buckets differently.
		if i < len(fetched) {
			points[i].Value = fetched[i].Value
		}
	}
	return points
}
