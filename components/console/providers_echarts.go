package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// EChartsRenderer turns a bucketed series into chart HTML. It is a stateless
// rendering collaborator: callers shape the series, the renderer only draws.
type EChartsRenderer struct {
	chartType  string
	cache      RenderCache
	theme      string
	assetsHost string
}

// EChartsOption customizes renderer behavior.
type EChartsOption func(*EChartsRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the chart theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsOption {
	return func(r *EChartsRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer for a chart type (bar, line, area).
func NewEChartsRenderer(chartType string, options ...EChartsOption) *EChartsRenderer {
	r := &EChartsRenderer{
		chartType: strings.ToLower(chartType),
		cache:     sharedChartCache,
		theme:     types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render draws the series against the bucket labels and returns chart HTML.
func (r *EChartsRenderer) Render(title, subtitle, seriesName string, labels []string, points []SeriesPoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("console: chart series is required")
	}
	renderFn := func() (string, error) {
		return r.render(title, subtitle, seriesName, labels, points)
	}
	if r.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", r.chartType, title, seriesHash(labels, points))
		return r.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (r *EChartsRenderer) render(title, subtitle, seriesName string, labels []string, points []SeriesPoint) (string, error) {
	switch r.chartType {
	case "bar":
		return r.renderBar(title, subtitle, seriesName, labels, points)
	case "line":
		return r.renderLine(title, subtitle, seriesName, labels, points, false)
	case "area":
		return r.renderLine(title, subtitle, seriesName, labels, points, true)
	default:
		return "", fmt.Errorf("console: unsupported chart type: %s", r.chartType)
	}
}

func (r *EChartsRenderer) renderBar(title, subtitle, seriesName string, labels []string, points []SeriesPoint) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(title, subtitle)...)
	bar.SetXAxis(labels)
	bar.AddSeries(seriesName, toBarData(points))
	return renderChart(bar)
}

func (r *EChartsRenderer) renderLine(title, subtitle, seriesName string, labels []string, points []SeriesPoint, filled bool) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(title, subtitle)...)
	line.SetXAxis(labels)
	line.AddSeries(seriesName, toLineData(points))
	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	}
	if filled {
		seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}))
	}
	line.SetSeriesOptions(seriesOpts...)
	return renderChart(line)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *EChartsRenderer) globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func toBarData(points []SeriesPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(points []SeriesPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}
