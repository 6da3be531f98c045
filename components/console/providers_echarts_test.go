package console

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderSeries() []SeriesPoint {
	return []SeriesPoint{
		{Label: "Mar 1", Value: 3},
		{Label: "Mar 2", Value: 7},
	}
}

func TestEChartsRendererRendersEachType(t *testing.T) {
	labels := []string{"Mar 1", "Mar 2"}
	for _, chartType := range []string{"bar", "line", "area"} {
		renderer := NewEChartsRenderer(chartType, WithChartCache(nil))
		html, err := renderer.Render("Orders", "last 7d", "Orders", labels, orderSeries())
		require.NoError(t, err, chartType)
		assert.Contains(t, html, "echarts", chartType)
	}
}

func TestEChartsRendererRejectsEmptySeries(t *testing.T) {
	renderer := NewEChartsRenderer("bar")
	_, err := renderer.Render("Orders", "", "Orders", nil, nil)
	require.Error(t, err)
}

func TestEChartsRendererRejectsUnknownType(t *testing.T) {
	renderer := NewEChartsRenderer("pie", WithChartCache(nil))
	_, err := renderer.Render("Orders", "", "Orders", []string{"a"}, orderSeries())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported chart type")
}

func TestEChartsRendererUsesInjectedCache(t *testing.T) {
	cache := NewChartCache(0) // disabled cache still goes through GetOrRender
	renderer := NewEChartsRenderer("bar", WithChartCache(cache))

	html, err := renderer.Render("Orders", "", "Orders", []string{"Mar 1", "Mar 2"}, orderSeries())
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestEChartsRendererAssetsHost(t *testing.T) {
	renderer := NewEChartsRenderer("bar",
		WithChartCache(nil),
		WithChartAssetsHost("https://cdn.example.com/assets/"))

	html, err := renderer.Render("Orders", "", "Orders", []string{"Mar 1", "Mar 2"}, orderSeries())
	require.NoError(t, err)
	assert.Contains(t, html, "https://cdn.example.com/assets/")
}

func TestDashboardChartZeroFillsWithoutData(t *testing.T) {
	state, err := NewDateRangeState(DateRangeOptions{
		Fetch: func(ctx context.Context, rangeTag string) (Statistics, error) {
			return Statistics{}, nil
		},
		Now: fixedNow,
	})
	require.NoError(t, err)
	require.NoError(t, state.Refresh(context.Background()))
	require.False(t, state.HasData())

	chart, err := NewDashboardChart(state, NewEChartsRenderer("area", WithChartCache(nil)))
	require.NoError(t, err)
	chart.now = fixedNow

	html, err := chart.Render(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "Orders"))
}

func TestDashboardChartAlignsFetchedSeries(t *testing.T) {
	state, err := NewDateRangeState(DateRangeOptions{
		Fetch: func(ctx context.Context, rangeTag string) (Statistics, error) {
			return Statistics{Chart: []SeriesPoint{
				{Label: "Feb 14", Value: 3},
				{Label: "unlabeled", Value: 9},
			}}, nil
		},
		Now: fixedNow,
	})
	require.NoError(t, err)
	require.NoError(t, state.Refresh(context.Background()))

	chart, err := NewDashboardChart(state, nil)
	require.NoError(t, err)
	chart.now = fixedNow

	plan := BucketLabels(state.Range(), state.Predefined(), fixedNow())
	points := chart.alignedPoints(plan)
	require.Len(t, points, len(plan.Labels))
	assert.Equal(t, float64(3), points[0].Value, "label match wins")
	assert.Equal(t, float64(9), points[1].Value, "positional fallback for unmatched labels")
}
