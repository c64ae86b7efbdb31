package ports

import (
	"context"

	"content-insights-service/internal/insights/core/domain"

	"github.com/google/uuid"
)

// ProfileQuery is the resolved request handed to the profile-metric
// subsystem: windows already computed, metric already classified.
type ProfileQuery struct {
	AccountID         uuid.UUID
	Metric            domain.Metric
	Current           domain.DateInterval
	Comparison        domain.DateInterval
	Granularity       domain.Granularity
	IncludeComparison bool
}

// ProfileMetricsPort is the alternate pipeline for profile-level metrics
// (followers, profile views). It is opaque to this engine; the only contract
// is that it produces the same report shape.
type ProfileMetricsPort interface {
	FetchReport(ctx context.Context, q ProfileQuery) (*domain.MetricReport, error)
}
