package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"content-insights-service/internal/insights/core/domain"
	"content-insights-service/internal/insights/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// metricAll requests the whole overview registry instead of one metric.
const metricAll = "all"

type GetMetricReportUseCase interface {
	Execute(ctx context.Context, in usecase.GetMetricReportInput) (*domain.MetricReport, error)
}

type GetOverviewUseCase interface {
	Execute(ctx context.Context, in usecase.GetOverviewInput) (*domain.OverviewReport, error)
}

type InsightsHandler struct {
	report   GetMetricReportUseCase
	overview GetOverviewUseCase
	gate     *usecase.RequestGate
}

func NewInsightsHandler(report GetMetricReportUseCase, overview GetOverviewUseCase) *InsightsHandler {
	return &InsightsHandler{
		report:   report,
		overview: overview,
		gate:     usecase.NewRequestGate(),
	}
}

// GetMetrics godoc
// @Summary Query a content metric series
// @Description Returns the bucketed series, optional comparison window and summary for one metric, or the full overview when metric=all
// @Tags Insights
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "Account id (set by the auth gateway)"
// @Param metric query string true "Metric name, or all"
// @Param period query string false "Period: 7d | 30d | 90d | 1y | custom"
// @Param start_date query string false "YYYY-MM-DD, required when period=custom"
// @Param end_date query string false "YYYY-MM-DD, required when period=custom"
// @Param content_type query string false "Content type filter, default all"
// @Param compare query bool false "Include the comparison series"
// @Param granularity query string false "Granularity: daily | weekly | monthly"
// @Success 200 {object} MetricReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights/metrics [get]
func (h *InsightsHandler) GetMetrics(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Get("X-Account-ID"))
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Error: "unauthenticated",
		})
	}

	metric := c.Query("metric", "")
	if metric == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "metric is required",
		})
	}

	startDate, ok := parseDateParam(c, "start_date")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'start_date' parameter",
		})
	}
	endDate, ok := parseDateParam(c, "end_date")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'end_date' parameter",
		})
	}

	if metric == metricAll {
		return h.getOverview(c, accountID, startDate, endDate)
	}

	in := usecase.GetMetricReportInput{
		AccountID:   accountID,
		Metric:      metric,
		Period:      c.Query("period", ""),
		StartDate:   startDate,
		EndDate:     endDate,
		ContentType: c.Query("content_type", ""),
		Compare:     c.QueryBool("compare", false),
		Granularity: c.Query("granularity", ""),
	}

	ctx, release := h.gate.Acquire(c.UserContext(), in.GateKey())
	defer release()

	res, err := h.report.Execute(ctx, in)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toReportResponse(res))
}

func (h *InsightsHandler) getOverview(c *fiber.Ctx, accountID uuid.UUID, startDate, endDate *time.Time) error {
	in := usecase.GetOverviewInput{
		AccountID:   accountID,
		Period:      c.Query("period", ""),
		StartDate:   startDate,
		EndDate:     endDate,
		ContentType: c.Query("content_type", ""),
		Granularity: c.Query("granularity", ""),
	}

	ctx, release := h.gate.Acquire(c.UserContext(), in.GateKey())
	defer release()

	res, err := h.overview.Execute(ctx, in)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toOverviewResponse(res))
}

func (h *InsightsHandler) renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownMetric),
		errors.Is(err, usecase.ErrDatesRequired),
		errors.Is(err, usecase.ErrInvalidDateOrder),
		errors.Is(err, usecase.ErrInvalidGranularity):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	case errors.Is(err, context.Canceled):
		// Superseded by a newer request for the same query.
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Error: "superseded",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func parseDateParam(c *fiber.Ctx, name string) (*time.Time, bool) {
	raw := c.Query(name, "")
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
