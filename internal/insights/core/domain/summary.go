package domain

// Summary carries the headline figures for one series: total over the window,
// average per bucket, and percentage change against the preceding window.
type Summary struct {
	Total   float64
	Average float64
	Change  float64
}

// Summarize derives the summary for a bucketed series. comparison is the
// bucketed series of the window immediately before the current one; nil means
// no baseline exists and change falls back to the zero policy below.
//
// Rate metrics report their average as the total: summing a ratio across
// posts and days is meaningless, and the dashboard contract has always shown
// the mean instead. Other metrics total by plain summation.
//
// Change policy: baseline > 0 gives the usual percentage delta; growth from a
// zero baseline is capped at 100; zero over zero is 0.
func Summarize(m Metric, current, comparison []SeriesPoint) Summary {
	sum := pointsTotal(current)

	average := 0.0
	if len(current) > 0 {
		average = round2(sum / float64(len(current)))
	}

	total := round2(sum)
	if m.IsRate() {
		total = average
	}

	return Summary{
		Total:   total,
		Average: average,
		Change:  changePercent(total, pointsTotal(comparison)),
	}
}

// CombineSummaries merges per-metric summaries into one overview figure:
// totals are summed, averages take the simple mean of the per-metric
// averages, and change is fixed at 0 because one delta across heterogeneous
// metrics carries no meaning.
func CombineSummaries(summaries []Summary) Summary {
	if len(summaries) == 0 {
		return Summary{}
	}

	var totalSum, avgSum float64
	for _, s := range summaries {
		totalSum += s.Total
		avgSum += s.Average
	}

	return Summary{
		Total:   round2(totalSum),
		Average: round2(avgSum / float64(len(summaries))),
		Change:  0,
	}
}

func changePercent(total, baseline float64) float64 {
	switch {
	case baseline > 0:
		return round2((total - baseline) / baseline * 100)
	case total > 0:
		return 100
	default:
		return 0
	}
}

func pointsTotal(points []SeriesPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum
}
