package console

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// PredefinedRange is a named date-range shortcut. It is the source of truth
// for which bucketing strategy and which statistics query apply.
type PredefinedRange string

const (
	Range1D     PredefinedRange = "1d"
	Range7D     PredefinedRange = "7d"
	Range30D    PredefinedRange = "30d"
	Range90D    PredefinedRange = "90d"
	RangeAll    PredefinedRange = "all"
	RangeCustom PredefinedRange = "custom"
)

// DateRange is a concrete inclusive interval. A nil *DateRange means
// "all time".
type DateRange struct {
	From time.Time
	To   time.Time
}

// MetricPair carries a metric for the selected period and the immediately
// preceding period of equal length.
type MetricPair struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
}

// MetricsSnapshot is the dashboard card data for a range.
type MetricsSnapshot struct {
	Orders   MetricPair `json:"orders"`
	Revenue  MetricPair `json:"revenue"`
	Services MetricPair `json:"services"`
	Users    MetricPair `json:"users"`
}

// SeriesPoint is one labeled chart value.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Statistics is the dashboard stats endpoint payload for a range.
type Statistics struct {
	Metrics MetricsSnapshot `json:"metrics"`
	Chart   []SeriesPoint   `json:"chart_data"`
}

// StatsFetcher loads statistics for an uppercased range tag ("30D"); the tag
// is empty for all-time.
type StatsFetcher func(ctx context.Context, rangeTag string) (Statistics, error)

var errMissingStatsFetcher = errors.New("console: date range state requires a stats fetcher")

// PercentChange computes the change between two metric values. This is the
// one purely numeric contract in the system: previous 0 yields 100 when
// current is positive and 0 when both are zero.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// DateRangeState is the shared dashboard range: the selected interval, the
// predefined tag, the fetched metrics snapshot and chart series, and the
// has-data flag. It is constructed explicitly by the dashboard composition
// root and passed down; there is no package-level singleton. Safe for
// concurrent use.
type DateRangeState struct {
	mu        sync.Mutex
	rng       *DateRange
	pre       PredefinedRange
	hasData   bool
	stats     Statistics
	fetch     StatsFetcher
	now       func() time.Time
	hook      *BroadcastHook
	telemetry Telemetry

	generation atomic.Uint64
}

// DateRangeOptions configures a DateRangeState.
type DateRangeOptions struct {
	Fetch     StatsFetcher
	Now       func() time.Time
	Broadcast *BroadcastHook
	Telemetry Telemetry
}

// NewDateRangeState builds the state pre-selected to the trailing 30 days,
// matching the dashboard's initial view.
func NewDateRangeState(opts DateRangeOptions) (*DateRangeState, error) {
	if opts.Fetch == nil {
		return nil, errMissingStatsFetcher
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &DateRangeState{
		fetch:     opts.Fetch,
		now:       opts.Now,
		hook:      opts.Broadcast,
		telemetry: normalizeTelemetry(opts.Telemetry),
		hasData:   true,
	}
	now := s.now()
	s.rng = &DateRange{From: now.AddDate(0, 0, -29), To: now}
	s.pre = Range30D
	return s, nil
}

// Range returns the selected interval, nil for all time.
func (s *DateRangeState) Range() *DateRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng == nil {
		return nil
	}
	rng := *s.rng
	return &rng
}

// Predefined returns the active range tag.
func (s *DateRangeState) Predefined() PredefinedRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pre
}

// HasData reports whether the last statistics fetch returned a non-empty
// chart series. It drives the "no data" banner.
func (s *DateRangeState) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasData
}

// Metrics returns the last fetched snapshot. All zeros while HasData is false.
func (s *DateRangeState) Metrics() MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasData {
		return MetricsSnapshot{}
	}
	return s.stats.Metrics
}

// Chart returns the last fetched chart series.
func (s *DateRangeState) Chart() []SeriesPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SeriesPoint, len(s.stats.Chart))
	copy(out, s.stats.Chart)
	return out
}

// SetPredefined selects a chip, derives the concrete interval, and refreshes
// statistics for the new tag.
func (s *DateRangeState) SetPredefined(ctx context.Context, pre PredefinedRange) error {
	now := s.now()
	var rng *DateRange
	switch pre {
	case Range1D:
		rng = &DateRange{From: now, To: now}
	case Range7D:
		rng = &DateRange{From: now.AddDate(0, 0, -6), To: now}
	case Range30D:
		rng = &DateRange{From: now.AddDate(0, 0, -29), To: now}
	case Range90D:
		rng = &DateRange{From: now.AddDate(0, 0, -89), To: now}
	case RangeAll:
		rng = nil
	default:
		return errors.New("console: unknown predefined range " + string(pre))
	}

	s.mu.Lock()
	s.pre = pre
	s.rng = rng
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetCustomRange selects a calendar interval and marks the tag custom.
func (s *DateRangeState) SetCustomRange(ctx context.Context, from, to time.Time) error {
	s.mu.Lock()
	s.pre = RangeCustom
	s.rng = &DateRange{From: from, To: to}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh fetches statistics for the active tag. The fetch carries a
// generation token: if another range change lands while the request is in
// flight, the stale response is discarded instead of winning by arriving
// last.
func (s *DateRangeState) Refresh(ctx context.Context) error {
	gen := s.generation.Add(1)

	s.mu.Lock()
	tag := s.queryTagLocked()
	pre := s.pre
	s.mu.Unlock()

	stats, err := s.fetch(ctx, tag)

	s.mu.Lock()
	if gen != s.generation.Load() {
		s.mu.Unlock()
		return nil
	}
	if err != nil || len(stats.Chart) == 0 {
		s.hasData = false
		s.stats = Statistics{}
	} else {
		s.hasData = true
		s.stats = stats
	}
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		_ = hook.ListUpdated(ctx, ListEvent{Kind: "dashboard", Reason: "range:" + string(pre)})
	}
	s.telemetry.Record(ctx, "console.range.refresh", map[string]any{
		"range":    string(pre),
		"has_data": err == nil && len(stats.Chart) > 0,
	})
	if err != nil {
		return err
	}
	return nil
}

// queryTagLocked maps the tag to the statistics query parameter: uppercased
// for concrete ranges, empty for all time.
func (s *DateRangeState) queryTagLocked() string {
	if s.pre == RangeAll {
		return ""
	}
	return strings.ToUpper(string(s.pre))
}
