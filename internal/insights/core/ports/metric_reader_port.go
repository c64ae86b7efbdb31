package ports

import (
	"context"

	"content-insights-service/internal/insights/core/domain"

	"github.com/google/uuid"
)

// DailyRowFilter scopes a raw-row fetch to one owner, one metric and one
// inclusive date window, optionally restricted to a resolved set of post ids.
type DailyRowFilter struct {
	AccountID uuid.UUID
	Metric    domain.Metric
	Interval  domain.DateInterval
	PostIDs   []uuid.UUID // nil = no restriction
}

// MetricRowReaderPort retrieves the raw per-post daily rows for one metric.
// Row ordering carries no meaning; aggregation is order-independent.
type MetricRowReaderPort interface {
	FetchDailyRows(ctx context.Context, f DailyRowFilter) ([]domain.DailyMetricRow, error)
}
