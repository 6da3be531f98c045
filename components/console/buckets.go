package console

import "time"

// BucketInterval names the grouping strategy chosen for a range.
type BucketInterval string

const (
	BucketHourly  BucketInterval = "hourly"
	BucketDaily   BucketInterval = "daily"
	BucketSpaced  BucketInterval = "spaced"
	BucketWeekly  BucketInterval = "weekly"
	BucketMonthly BucketInterval = "monthly"
)

// BucketPlan is the deterministic label set charts render against.
type BucketPlan struct {
	Interval BucketInterval
	Labels   []string
}

// singleDayLabels are the fixed 3-hour buckets for a one-day range.
var singleDayLabels = []string{"12am", "3am", "6am", "9am", "12pm", "3pm", "6pm", "9pm"}

// BucketLabels derives the chart buckets for a range. The predefined tag
// takes precedence: "all" is always the trailing 24 calendar months
// relative to now, regardless of any selected interval. A nil range falls
// back to the trailing 7 days.
func BucketLabels(rng *DateRange, pre PredefinedRange, now time.Time) BucketPlan {
	if pre == RangeAll {
		// Anchor on the first of the month: AddDate on a month-end day
		// overflows short months (May 31 minus one month lands on May 1)
		// and would duplicate a label.
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		labels := make([]string, 0, 24)
		for i := 23; i >= 0; i-- {
			labels = append(labels, month.AddDate(0, -i, 0).Format("Jan 2006"))
		}
		return BucketPlan{Interval: BucketMonthly, Labels: labels}
	}

	if rng == nil {
		from := dateOnly(now).AddDate(0, 0, -6)
		return BucketPlan{Interval: BucketDaily, Labels: dailyLabels(from, dateOnly(now), "Jan 2")}
	}

	from := dateOnly(rng.From)
	to := dateOnly(rng.To)
	if to.Before(from) {
		from, to = to, from
	}
	dayCount := int(to.Sub(from).Hours()/24) + 1

	switch {
	case dayCount == 1:
		labels := make([]string, len(singleDayLabels))
		copy(labels, singleDayLabels)
		return BucketPlan{Interval: BucketHourly, Labels: labels}
	case dayCount <= 7:
		return BucketPlan{Interval: BucketDaily, Labels: dailyLabels(from, to, "Mon, Jan 2")}
	case dayCount <= 31:
		stride := ceilDiv(dayCount, 10)
		return BucketPlan{Interval: BucketSpaced, Labels: stridedLabels(from, to, dayCount, stride)}
	case dayCount <= 90:
		stride := ceilDiv(dayCount, 12) * 7
		return BucketPlan{Interval: BucketWeekly, Labels: stridedLabels(from, to, dayCount, stride)}
	default:
		return BucketPlan{Interval: BucketMonthly, Labels: monthlyLabels(from, to)}
	}
}

func dailyLabels(from, to time.Time, layout string) []string {
	var labels []string
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		labels = append(labels, day.Format(layout))
	}
	return labels
}

// stridedLabels emits every Nth day starting at from, always including the
// final day of the range.
func stridedLabels(from, to time.Time, dayCount, stride int) []string {
	var labels []string
	for i := 0; i < dayCount; i += stride {
		labels = append(labels, from.AddDate(0, 0, i).Format("Jan 2"))
	}
	last := to.Format("Jan 2")
	if len(labels) == 0 || labels[len(labels)-1] != last {
		labels = append(labels, last)
	}
	return labels
}

func monthlyLabels(from, to time.Time) []string {
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	var labels []string
	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		labels = append(labels, month.Format("Jan 2006"))
	}
	return labels
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
