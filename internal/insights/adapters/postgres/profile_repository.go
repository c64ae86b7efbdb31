package postgres

import (
	"context"
	"fmt"
	"time"

	"content-insights-service/internal/insights/core/domain"
	"content-insights-service/internal/insights/core/ports"
)

// profileMetricColumns maps profile-level metrics to their columns on
// profile_daily_metrics. Kept local: the core only classifies these metrics
// and leaves their storage shape to this subsystem.
var profileMetricColumns = map[domain.Metric]string{
	domain.MetricFollowers:    "followers_gained",
	domain.MetricProfileViews: "profile_views_gained",
}

// ProfileMetricsRepository is the Postgres-backed profile subsystem. It
// produces the same report shape as the post pipeline: bucketed current
// series, optional comparison, summary.
type ProfileMetricsRepository struct {
	db DB
}

func NewProfileMetricsRepository(db DB) *ProfileMetricsRepository {
	return &ProfileMetricsRepository{db: db}
}

var _ ports.ProfileMetricsPort = (*ProfileMetricsRepository)(nil)

func (r *ProfileMetricsRepository) FetchReport(ctx context.Context, q ports.ProfileQuery) (*domain.MetricReport, error) {
	column, ok := profileMetricColumns[q.Metric]
	if !ok {
		return nil, fmt.Errorf("metric %q is not a profile metric", q.Metric)
	}

	currentSeries, err := r.fetchSeries(ctx, column, q, q.Current)
	if err != nil {
		return nil, err
	}
	comparisonSeries, err := r.fetchSeries(ctx, column, q, q.Comparison)
	if err != nil {
		return nil, err
	}

	currentPoints := domain.Bucket(currentSeries, q.Granularity)
	comparisonPoints := domain.Bucket(comparisonSeries, q.Granularity)

	report := &domain.MetricReport{
		Metric:      q.Metric,
		Granularity: q.Granularity,
		Current:     currentPoints,
		Summary:     domain.Summarize(q.Metric, currentPoints, comparisonPoints),
	}
	if q.IncludeComparison {
		report.Comparison = comparisonPoints
	}
	return report, nil
}

func (r *ProfileMetricsRepository) fetchSeries(ctx context.Context, column string, q ports.ProfileQuery, interval domain.DateInterval) (domain.DateSeries, error) {
	// One row per (account, date); SUM collapses accidental duplicates from
	// ingestion retries. Column names come from the fixed mapping above.
	query := fmt.Sprintf(`
SELECT metric_date, COALESCE(SUM(%s), 0)
FROM profile_daily_metrics
WHERE account_id = $1
  AND metric_date BETWEEN $2 AND $3
GROUP BY metric_date`, column)

	rows, err := r.db.QueryContext(ctx, query, q.AccountID.String(), interval.Start, interval.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := make(domain.DateSeries)
	for rows.Next() {
		var (
			date  time.Time
			value float64
		)
		if err := rows.Scan(&date, &value); err != nil {
			return nil, err
		}
		series[domain.Midnight(date).Format(domain.DateLayout)] += value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return series, nil
}
