package domain

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DailyMetricRow is one raw (post, date) observation for a single metric,
// written by the ingestion pipeline and only ever read here. A NULL stored
// value is surfaced as zero by the reader.
type DailyMetricRow struct {
	PostID uuid.UUID
	Date   time.Time
	Value  float64
}

// DateSeries maps a YYYY-MM-DD date to a numeric value. Dates without any
// contributing row are absent, not zero; total and summary computation treat
// absence as zero.
type DateSeries map[string]float64

// SeriesPoint is one bucketed observation in a response series.
type SeriesPoint struct {
	Date  string
	Value float64
}

// AggregateDaily collapses per-post daily rows into one date-keyed series by
// summing every post's value for the same date.
func AggregateDaily(rows []DailyMetricRow) DateSeries {
	series := make(DateSeries, len(rows))
	for _, row := range rows {
		series[Midnight(row.Date).Format(DateLayout)] += row.Value
	}
	return series
}

// Bucket re-keys a daily series at the requested granularity and returns it
// sorted ascending by date. Weekly buckets anchor on the Monday of each
// date's week, monthly buckets on the first of the month; values sharing a
// bucket key are summed. Buckets are only emitted for keys with at least one
// contributing date; gaps are never filled with synthetic zeros. Every output
// value is rounded to 2 decimals, half away from zero.
func Bucket(series DateSeries, g Granularity) []SeriesPoint {
	if g == GranularityDaily {
		points := make([]SeriesPoint, 0, len(series))
		for date, value := range series {
			points = append(points, SeriesPoint{Date: date, Value: round2(value)})
		}
		sortPoints(points)
		return points
	}

	buckets := make(DateSeries, len(series))
	for date, value := range series {
		buckets[bucketKey(date, g)] += value
	}

	points := make([]SeriesPoint, 0, len(buckets))
	for date, value := range buckets {
		points = append(points, SeriesPoint{Date: date, Value: round2(value)})
	}
	sortPoints(points)
	return points
}

// SeriesFromPoints rebuilds the map form of a bucketed series, used when an
// already-bucketed series needs re-bucketing (a no-op at the same
// granularity).
func SeriesFromPoints(points []SeriesPoint) DateSeries {
	series := make(DateSeries, len(points))
	for _, p := range points {
		series[p.Date] += p.Value
	}
	return series
}

func bucketKey(date string, g Granularity) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		// Series keys are produced by this package; a malformed one stays
		// its own bucket rather than corrupting neighbours.
		return date
	}

	switch g {
	case GranularityWeekly:
		// 0=Sunday..6=Saturday; distance back to Monday.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset).Format(DateLayout)
	case GranularityMonthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).Format(DateLayout)
	}
	return date
}

func sortPoints(points []SeriesPoint) {
	// ISO dates sort lexicographically in chronological order.
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
