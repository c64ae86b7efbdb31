package fiber

import "content-insights-service/internal/insights/core/domain"

// SeriesPointResponse is one charted observation.
type SeriesPointResponse struct {
	Date  string  `json:"date" example:"2024-03-04"`
	Value float64 `json:"value" example:"1250"`
}

type SummaryResponse struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Change  float64 `json:"change"`
}

// MetricReportResponse is the single-metric payload. Comparison is null
// unless compare=true was requested.
type MetricReportResponse struct {
	Metric      string                `json:"metric"`
	Granularity string                `json:"granularity"`
	Current     []SeriesPointResponse `json:"current"`
	Comparison  []SeriesPointResponse `json:"comparison"`
	Summary     SummaryResponse       `json:"summary"`
}

// OverviewResponse is the "all" mode payload: one series per metric plus the
// primary series under current.
type OverviewResponse struct {
	Granularity string                           `json:"granularity"`
	Series      map[string][]SeriesPointResponse `json:"series"`
	Current     []SeriesPointResponse            `json:"current"`
	Summary     SummaryResponse                  `json:"summary"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"unknown metric"`
}

func toSeriesResponse(points []domain.SeriesPoint) []SeriesPointResponse {
	if points == nil {
		return nil
	}
	out := make([]SeriesPointResponse, len(points))
	for i, p := range points {
		out[i] = SeriesPointResponse{Date: p.Date, Value: p.Value}
	}
	return out
}

func toSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{Total: s.Total, Average: s.Average, Change: s.Change}
}

func toReportResponse(r *domain.MetricReport) MetricReportResponse {
	resp := MetricReportResponse{
		Metric:      string(r.Metric),
		Granularity: string(r.Granularity),
		Current:     toSeriesResponse(r.Current),
		Comparison:  toSeriesResponse(r.Comparison),
		Summary:     toSummaryResponse(r.Summary),
	}
	if resp.Current == nil {
		resp.Current = []SeriesPointResponse{}
	}
	return resp
}

func toOverviewResponse(r *domain.OverviewReport) OverviewResponse {
	series := make(map[string][]SeriesPointResponse, len(r.Series))
	for metric, points := range r.Series {
		s := toSeriesResponse(points)
		if s == nil {
			s = []SeriesPointResponse{}
		}
		series[string(metric)] = s
	}

	current := toSeriesResponse(r.Primary)
	if current == nil {
		current = []SeriesPointResponse{}
	}

	return OverviewResponse{
		Granularity: string(r.Granularity),
		Series:      series,
		Current:     current,
		Summary:     toSummaryResponse(r.Summary),
	}
}
