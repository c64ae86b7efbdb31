package usecase

import (
	"context"
	"fmt"
	"time"

	"content-insights-service/internal/insights/core/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MetricReportEngine is the single-metric pipeline the overview fans out
// over; satisfied by *GetMetricReportUseCase.
type MetricReportEngine interface {
	Execute(ctx context.Context, in GetMetricReportInput) (*domain.MetricReport, error)
}

// GetOverviewInput is the "all" mode query: every metric in the registry over
// one window, one filter, one granularity.
type GetOverviewInput struct {
	AccountID   uuid.UUID
	Period      string
	StartDate   *time.Time
	EndDate     *time.Time
	ContentType string
	Granularity string
}

// GateKey canonicalizes the overview query for supersede tracking.
func (in GetOverviewInput) GateKey() string {
	return in.single("all").GateKey()
}

func (in GetOverviewInput) single(metric domain.Metric) GetMetricReportInput {
	return GetMetricReportInput{
		AccountID:   in.AccountID,
		Metric:      string(metric),
		Period:      in.Period,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		ContentType: in.ContentType,
		Granularity: in.Granularity,
	}
}

// GetOverviewUseCase runs one single-metric pipeline per registry entry
// concurrently and merges the results. All-or-nothing: the first failure
// cancels the remaining fetches and fails the whole call, so a partial
// overview is never observable.
type GetOverviewUseCase struct {
	engine   MetricReportEngine
	registry []domain.Metric
	primary  domain.Metric
}

func NewGetOverviewUseCase(engine MetricReportEngine) *GetOverviewUseCase {
	return NewGetOverviewUseCaseWithRegistry(engine, domain.OverviewMetrics, domain.PrimaryOverviewMetric)
}

// NewGetOverviewUseCaseWithRegistry allows a caller-defined metric set. An
// empty set falls back to the default; a primary outside the set falls back
// to the set's first metric.
func NewGetOverviewUseCaseWithRegistry(engine MetricReportEngine, registry []domain.Metric, primary domain.Metric) *GetOverviewUseCase {
	if len(registry) == 0 {
		registry = domain.OverviewMetrics
	}
	found := false
	for _, m := range registry {
		if m == primary {
			found = true
			break
		}
	}
	if !found {
		primary = registry[0]
	}
	return &GetOverviewUseCase{
		engine:   engine,
		registry: append([]domain.Metric(nil), registry...),
		primary:  primary,
	}
}

func (uc *GetOverviewUseCase) Execute(ctx context.Context, in GetOverviewInput) (*domain.OverviewReport, error) {
	granularity, ok := domain.ParseGranularity(in.Granularity)
	if !ok {
		return nil, ErrInvalidGranularity
	}

	// Each pipeline writes only its own slot; the slice is read after Wait,
	// so the fan-out shares no mutable state.
	reports := make([]*domain.MetricReport, len(uc.registry))

	g, gctx := errgroup.WithContext(ctx)
	for i, metric := range uc.registry {
		i, metric := i, metric
		g.Go(func() error {
			report, err := uc.engine.Execute(gctx, in.single(metric))
			if err != nil {
				return fmt.Errorf("metric %s: %w", metric, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	series := make(map[domain.Metric][]domain.SeriesPoint, len(uc.registry))
	summaries := make([]domain.Summary, 0, len(uc.registry))
	var primary []domain.SeriesPoint

	for i, metric := range uc.registry {
		series[metric] = reports[i].Current
		summaries = append(summaries, reports[i].Summary)
		if metric == uc.primary {
			primary = reports[i].Current
		}
	}

	return &domain.OverviewReport{
		Granularity: granularity,
		Series:      series,
		Primary:     primary,
		Summary:     domain.CombineSummaries(summaries),
	}, nil
}
