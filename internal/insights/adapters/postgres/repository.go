package postgres

import (
	"context"
	"fmt"
	"time"

	"content-insights-service/internal/insights/core/domain"
	"content-insights-service/internal/insights/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MetricRowRepository reads per-post daily metric rows. The value column is
// chosen from the fixed metric mapping, never from request input, so the
// Sprintf below cannot carry anything user-controlled.
type MetricRowRepository struct {
	db DB
}

func NewMetricRowRepository(db DB) *MetricRowRepository {
	return &MetricRowRepository{db: db}
}

var _ ports.MetricRowReaderPort = (*MetricRowRepository)(nil)

func (r *MetricRowRepository) FetchDailyRows(ctx context.Context, f ports.DailyRowFilter) ([]domain.DailyMetricRow, error) {
	column, ok := f.Metric.Column()
	if !ok {
		return nil, fmt.Errorf("metric %q has no daily row column", f.Metric)
	}

	query := fmt.Sprintf(`
SELECT post_id, metric_date, COALESCE(%s, 0)
FROM post_daily_metrics
WHERE account_id = $1
  AND metric_date BETWEEN $2 AND $3`, column)
	args := []any{f.AccountID.String(), f.Interval.Start, f.Interval.End}

	if f.PostIDs != nil {
		query += "\n  AND post_id = ANY($4)"
		args = append(args, pqUUIDArray(f.PostIDs))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DailyMetricRow
	for rows.Next() {
		var (
			rawID string
			date  time.Time
			value float64
		)
		if err := rows.Scan(&rawID, &date, &value); err != nil {
			return nil, err
		}

		postID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("malformed post id %q: %w", rawID, err)
		}

		result = append(result, domain.DailyMetricRow{
			PostID: postID,
			Date:   date.UTC(),
			Value:  value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// PostCatalogRepository resolves post ids by owner and content type.
type PostCatalogRepository struct {
	db DB
}

func NewPostCatalogRepository(db DB) *PostCatalogRepository {
	return &PostCatalogRepository{db: db}
}

var _ ports.PostCatalogPort = (*PostCatalogRepository)(nil)

const resolvePostIDsSQL = `
SELECT id
FROM posts
WHERE account_id = $1
  AND content_type = $2`

func (r *PostCatalogRepository) ResolvePostIDs(ctx context.Context, accountID uuid.UUID, contentType domain.ContentType) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, resolvePostIDsSQL, accountID.String(), string(contentType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var rawID string
		if err := rows.Scan(&rawID); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("malformed post id %q: %w", rawID, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func pqUUIDArray(ids []uuid.UUID) any {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return pq.Array(raw)
}
