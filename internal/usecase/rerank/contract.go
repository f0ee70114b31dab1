package rerank

import (
	"context"

	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
)

// Scorer scores texts against a query. Implementations return exactly one
// result per text; indices refer to positions in texts.
type Scorer interface {
	Rerank(ctx context.Context, query string, texts []string) ([]domrerank.Result, error)
}
