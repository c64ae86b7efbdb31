package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-insights-service/internal/insights/core/domain"
	"content-insights-service/internal/insights/core/ports"

	"github.com/google/uuid"
)

var (
	ErrUnknownMetric      = errors.New("unknown metric")
	ErrDatesRequired      = errors.New("custom period requires start_date and end_date")
	ErrInvalidDateOrder   = errors.New("start_date must not be after end_date")
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrFetchFailed        = errors.New("metric fetch failed")
)

const defaultFetchTimeout = 10 * time.Second

// GetMetricReportInput carries one fully explicit query; nothing is read from
// ambient request state. StartDate/EndDate are only consulted for the custom
// period.
type GetMetricReportInput struct {
	AccountID   uuid.UUID
	Metric      string
	Period      string
	StartDate   *time.Time
	EndDate     *time.Time
	ContentType string
	Compare     bool
	Granularity string
}

// GateKey canonicalizes the query so that re-issuing the same logical request
// supersedes the one still in flight.
func (in GetMetricReportInput) GateKey() string {
	start, end := "", ""
	if in.StartDate != nil {
		start = in.StartDate.Format(domain.DateLayout)
	}
	if in.EndDate != nil {
		end = in.EndDate.Format(domain.DateLayout)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%t|%s",
		in.AccountID, in.Metric, in.Period, start, end,
		in.ContentType, in.Compare, in.Granularity)
}

// GetMetricReportUseCase runs the single-metric pipeline: resolve the date
// windows, resolve the content filter, fetch raw rows for the current and
// preceding window, aggregate, bucket and summarize. Profile metrics are
// routed to the profile subsystem instead.
type GetMetricReportUseCase struct {
	rows         ports.MetricRowReaderPort
	posts        ports.PostCatalogPort
	profile      ports.ProfileMetricsPort
	fetchTimeout time.Duration
	now          func() time.Time
}

func NewGetMetricReportUseCase(
	rows ports.MetricRowReaderPort,
	posts ports.PostCatalogPort,
	profile ports.ProfileMetricsPort,
	fetchTimeout time.Duration,
) *GetMetricReportUseCase {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &GetMetricReportUseCase{
		rows:         rows,
		posts:        posts,
		profile:      profile,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

func (uc *GetMetricReportUseCase) Execute(ctx context.Context, in GetMetricReportInput) (*domain.MetricReport, error) {
	metric, granularity, err := uc.validate(in)
	if err != nil {
		return nil, err
	}

	var customStart, customEnd time.Time
	if in.StartDate != nil {
		customStart = *in.StartDate
	}
	if in.EndDate != nil {
		customEnd = *in.EndDate
	}
	current, comparison := domain.ResolveDateRange(
		domain.Period(in.Period), customStart, customEnd, uc.now())

	if metric.IsProfile() {
		report, err := uc.profile.FetchReport(ctx, ports.ProfileQuery{
			AccountID:         in.AccountID,
			Metric:            metric,
			Current:           current,
			Comparison:        comparison,
			Granularity:       granularity,
			IncludeComparison: in.Compare,
		})
		if err != nil {
			return nil, fetchFailed(err)
		}
		return report, nil
	}

	postIDs, empty, err := uc.resolveFilter(ctx, in.AccountID, domain.ParseContentType(in.ContentType))
	if err != nil {
		return nil, err
	}
	if empty {
		// No post matches the filter: done, without touching the row store.
		return domain.EmptyMetricReport(metric, granularity), nil
	}

	currentRows, err := uc.fetchRows(ctx, in.AccountID, metric, current, postIDs)
	if err != nil {
		return nil, err
	}

	// The preceding window is always fetched: even without an explicit
	// comparison it is the baseline for the change figure.
	comparisonRows, err := uc.fetchRows(ctx, in.AccountID, metric, comparison, postIDs)
	if err != nil {
		return nil, err
	}

	currentPoints := domain.Bucket(domain.AggregateDaily(currentRows), granularity)
	comparisonPoints := domain.Bucket(domain.AggregateDaily(comparisonRows), granularity)

	report := &domain.MetricReport{
		Metric:      metric,
		Granularity: granularity,
		Current:     currentPoints,
		Summary:     domain.Summarize(metric, currentPoints, comparisonPoints),
	}
	if in.Compare {
		report.Comparison = comparisonPoints
	}
	return report, nil
}

// validate rejects the request before any I/O is issued.
func (uc *GetMetricReportUseCase) validate(in GetMetricReportInput) (domain.Metric, domain.Granularity, error) {
	metric, ok := domain.ParseMetric(in.Metric)
	if !ok {
		return "", "", ErrUnknownMetric
	}

	granularity, ok := domain.ParseGranularity(in.Granularity)
	if !ok {
		return "", "", ErrInvalidGranularity
	}

	if domain.Period(in.Period) == domain.PeriodCustom {
		if in.StartDate == nil || in.EndDate == nil {
			return "", "", ErrDatesRequired
		}
		if in.StartDate.After(*in.EndDate) {
			return "", "", ErrInvalidDateOrder
		}
	}

	return metric, granularity, nil
}

// resolveFilter returns the post-id restriction for a concrete content type.
// empty=true means the filter matched nothing and the request short-circuits.
func (uc *GetMetricReportUseCase) resolveFilter(ctx context.Context, accountID uuid.UUID, contentType domain.ContentType) (ids []uuid.UUID, empty bool, err error) {
	if contentType == domain.ContentTypeAll {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.fetchTimeout)
	defer cancel()

	ids, err = uc.posts.ResolvePostIDs(ctx, accountID, contentType)
	if err != nil {
		return nil, false, fetchFailed(err)
	}
	return ids, len(ids) == 0, nil
}

func (uc *GetMetricReportUseCase) fetchRows(ctx context.Context, accountID uuid.UUID, metric domain.Metric, interval domain.DateInterval, postIDs []uuid.UUID) ([]domain.DailyMetricRow, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.fetchTimeout)
	defer cancel()

	rows, err := uc.rows.FetchDailyRows(ctx, ports.DailyRowFilter{
		AccountID: accountID,
		Metric:    metric,
		Interval:  interval,
		PostIDs:   postIDs,
	})
	if err != nil {
		return nil, fetchFailed(err)
	}
	return rows, nil
}

// fetchFailed tags a store error so the handler can map it, keeping the
// cause in the message. A caller-side cancellation is not a fetch failure.
func fetchFailed(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}
