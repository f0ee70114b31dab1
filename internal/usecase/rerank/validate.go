package rerank

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
)

// Validate rejects requests that must never reach the backend.
func Validate(query string, documents []string, maxBatchSize int) error {
	if strings.TrimSpace(query) == "" {
		return domain.NewBadRequest("Query cannot be empty")
	}
	if len(documents) == 0 {
		return domain.NewBadRequest("Documents list cannot be empty")
	}
	if len(documents) > maxBatchSize {
		return domain.NewBadRequest(fmt.Sprintf("Too many documents, max: %d", maxBatchSize))
	}
	return nil
}
