package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"content-insights-service/internal/insights/core/domain"
	"content-insights-service/internal/insights/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type fakeReportUseCase struct {
	ExecuteFunc func(ctx context.Context, in usecase.GetMetricReportInput) (*domain.MetricReport, error)
	LastInput   usecase.GetMetricReportInput
	called      bool
}

func (f *fakeReportUseCase) Execute(ctx context.Context, in usecase.GetMetricReportInput) (*domain.MetricReport, error) {
	f.called = true
	f.LastInput = in
	if f.ExecuteFunc != nil {
		return f.ExecuteFunc(ctx, in)
	}
	return &domain.MetricReport{
		Metric:      domain.Metric(in.Metric),
		Granularity: domain.GranularityDaily,
		Current:     []domain.SeriesPoint{},
	}, nil
}

type fakeOverviewUseCase struct {
	ExecuteFunc func(ctx context.Context, in usecase.GetOverviewInput) (*domain.OverviewReport, error)
	called      bool
}

func (f *fakeOverviewUseCase) Execute(ctx context.Context, in usecase.GetOverviewInput) (*domain.OverviewReport, error) {
	f.called = true
	if f.ExecuteFunc != nil {
		return f.ExecuteFunc(ctx, in)
	}
	return &domain.OverviewReport{
		Granularity: domain.GranularityDaily,
		Series:      map[domain.Metric][]domain.SeriesPoint{},
		Primary:     []domain.SeriesPoint{},
	}, nil
}

// helper: create fiber app and routes
func setupTestApp(report GetMetricReportUseCase, overview GetOverviewUseCase) *fiber.App {
	app := fiber.New()
	h := NewInsightsHandler(report, overview)

	app.Get("/insights/metrics", h.GetMetrics)

	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, path string, accountID string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accountID != "" {
		req.Header.Set("X-Account-ID", accountID)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func TestGetMetrics_SingleMetricSuccess(t *testing.T) {
	fakeUC := &fakeReportUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetMetricReportInput) (*domain.MetricReport, error) {
			return &domain.MetricReport{
				Metric:      domain.MetricImpressions,
				Granularity: domain.GranularityDaily,
				Current:     []domain.SeriesPoint{{Date: "2024-03-04", Value: 120}},
				Summary:     domain.Summary{Total: 120, Average: 120, Change: 50},
			}, nil
		},
	}
	app := setupTestApp(fakeUC, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app,
		"/insights/metrics?metric=impressions&period=7d&granularity=daily",
		uuid.NewString())

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	var respJSON MetricReportResponse
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON.Metric != "impressions" {
		t.Errorf("metric = %s, want impressions", respJSON.Metric)
	}
	if len(respJSON.Current) != 1 || respJSON.Current[0].Value != 120 {
		t.Errorf("unexpected current series: %+v", respJSON.Current)
	}
	if respJSON.Summary.Change != 50 {
		t.Errorf("change = %v, want 50", respJSON.Summary.Change)
	}
}

func TestGetMetrics_ComparisonNullWhenNotRequested(t *testing.T) {
	fakeUC := &fakeReportUseCase{}
	app := setupTestApp(fakeUC, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app,
		"/insights/metrics?metric=impressions&period=7d", uuid.NewString())

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if respJSON["comparison"] != nil {
		t.Errorf("comparison = %v, want null", respJSON["comparison"])
	}
}

func TestGetMetrics_ParsesQueryIntoInput(t *testing.T) {
	fakeUC := &fakeReportUseCase{}
	app := setupTestApp(fakeUC, &fakeOverviewUseCase{})
	accountID := uuid.New()

	resp, body := doRequest(t, app,
		"/insights/metrics?metric=reactions&period=custom&start_date=2024-03-01&end_date=2024-03-10&content_type=video&compare=true&granularity=weekly",
		accountID.String())

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	in := fakeUC.LastInput
	if in.AccountID != accountID {
		t.Errorf("account id = %s, want %s", in.AccountID, accountID)
	}
	if in.Metric != "reactions" || in.Period != "custom" || in.ContentType != "video" {
		t.Errorf("unexpected input: %+v", in)
	}
	if !in.Compare {
		t.Error("compare flag not parsed")
	}
	if in.Granularity != "weekly" {
		t.Errorf("granularity = %s, want weekly", in.Granularity)
	}
	if in.StartDate == nil || in.StartDate.Format(domain.DateLayout) != "2024-03-01" {
		t.Errorf("start date not parsed: %v", in.StartDate)
	}
	if in.EndDate == nil || in.EndDate.Format(domain.DateLayout) != "2024-03-10" {
		t.Errorf("end date not parsed: %v", in.EndDate)
	}
}

func TestGetMetrics_MissingAccountHeader(t *testing.T) {
	app := setupTestApp(&fakeReportUseCase{}, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app, "/insights/metrics?metric=impressions", "")

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusUnauthorized, resp.StatusCode, string(body))
	}
}

func TestGetMetrics_MissingMetric(t *testing.T) {
	app := setupTestApp(&fakeReportUseCase{}, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app, "/insights/metrics", uuid.NewString())

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

func TestGetMetrics_MalformedDate(t *testing.T) {
	fakeUC := &fakeReportUseCase{}
	app := setupTestApp(fakeUC, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app,
		"/insights/metrics?metric=impressions&period=custom&start_date=03-01-2024&end_date=2024-03-10",
		uuid.NewString())

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
	if fakeUC.called {
		t.Error("malformed date must be rejected before the usecase runs")
	}
}

func TestGetMetrics_ValidationError(t *testing.T) {
	fakeUC := &fakeReportUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetMetricReportInput) (*domain.MetricReport, error) {
			return nil, usecase.ErrUnknownMetric
		},
	}
	app := setupTestApp(fakeUC, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app, "/insights/metrics?metric=clicks", uuid.NewString())

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if respJSON["error"] != "invalid_query" {
		t.Errorf("expected error=invalid_query, got %v", respJSON["error"])
	}
}

func TestGetMetrics_InternalError(t *testing.T) {
	fakeUC := &fakeReportUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetMetricReportInput) (*domain.MetricReport, error) {
			return nil, errors.New("db error")
		},
	}
	app := setupTestApp(fakeUC, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app, "/insights/metrics?metric=impressions", uuid.NewString())

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusInternalServerError, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if respJSON["error"] != "internal_server_error" {
		t.Errorf("expected error=internal_server_error, got %v", respJSON["error"])
	}
}

func TestGetMetrics_SupersededRequest(t *testing.T) {
	fakeUC := &fakeReportUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetMetricReportInput) (*domain.MetricReport, error) {
			return nil, context.Canceled
		},
	}
	app := setupTestApp(fakeUC, &fakeOverviewUseCase{})

	resp, body := doRequest(t, app, "/insights/metrics?metric=impressions", uuid.NewString())

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusConflict, resp.StatusCode, string(body))
	}
}

// ---- all mode ----

func TestGetMetrics_AllModeRoutesToOverview(t *testing.T) {
	reportUC := &fakeReportUseCase{}
	overviewUC := &fakeOverviewUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetOverviewInput) (*domain.OverviewReport, error) {
			series := make(map[domain.Metric][]domain.SeriesPoint)
			for _, m := range domain.OverviewMetrics {
				series[m] = []domain.SeriesPoint{{Date: "2024-03-04", Value: 1}}
			}
			return &domain.OverviewReport{
				Granularity: domain.GranularityDaily,
				Series:      series,
				Primary:     series[domain.PrimaryOverviewMetric],
				Summary:     domain.Summary{Total: 5, Average: 1},
			}, nil
		},
	}
	app := setupTestApp(reportUC, overviewUC)

	resp, body := doRequest(t, app, "/insights/metrics?metric=all&period=30d", uuid.NewString())

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}
	if reportUC.called {
		t.Error("all mode must not invoke the single-metric usecase directly")
	}
	if !overviewUC.called {
		t.Fatal("overview usecase not invoked")
	}

	var respJSON OverviewResponse
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if len(respJSON.Series) != 5 {
		t.Errorf("expected 5 series keys, got %d", len(respJSON.Series))
	}
	if len(respJSON.Current) != 1 {
		t.Errorf("expected primary series under current, got %+v", respJSON.Current)
	}
	if respJSON.Summary.Change != 0 {
		t.Errorf("combined change = %v, want 0", respJSON.Summary.Change)
	}
}
