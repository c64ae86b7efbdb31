package ports

import (
	"context"

	"content-insights-service/internal/insights/core/domain"

	"github.com/google/uuid"
)

// PostCatalogPort resolves which of an account's posts carry a given content
// type. An empty result is meaningful: it lets the caller short-circuit
// instead of issuing an unfiltered metric fetch.
type PostCatalogPort interface {
	ResolvePostIDs(ctx context.Context, accountID uuid.UUID, contentType domain.ContentType) ([]uuid.UUID, error)
}
