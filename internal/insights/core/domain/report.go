package domain

// MetricReport is the single-metric response shape: the bucketed current
// series, the comparison series when one was requested, and the summary.
type MetricReport struct {
	Metric      Metric
	Granularity Granularity
	Current     []SeriesPoint
	Comparison  []SeriesPoint // nil unless comparison was requested
	Summary     Summary
}

// EmptyMetricReport is the short-circuit result for a content filter that
// matched no posts: an empty current series, no comparison, zero summary.
func EmptyMetricReport(m Metric, g Granularity) *MetricReport {
	return &MetricReport{
		Metric:      m,
		Granularity: g,
		Current:     []SeriesPoint{},
		Comparison:  nil,
		Summary:     Summary{},
	}
}

// OverviewReport is the "all" mode response shape: one series per metric in
// the fan-out set, the primary metric's series for consumers expecting a
// single default series, and one combined summary.
type OverviewReport struct {
	Granularity Granularity
	Series      map[Metric][]SeriesPoint
	Primary     []SeriesPoint
	Summary     Summary
}
