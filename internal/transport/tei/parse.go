package tei

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
)

var (
	errMalformed      = errors.New("malformed rerank response")
	errLengthMismatch = errors.New("rerank response length mismatch")
)

// decodeScores parses a TEI /rerank body and checks that it holds exactly
// expected entries. Indices are not range-checked against the request.
func decodeScores(body []byte, expected int) ([]domrerank.Result, error) {
	var items []scoreItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, malformed(body, err)
	}
	if items == nil {
		return nil, malformed(body, errors.New("null response"))
	}

	results := make([]domrerank.Result, len(items))
	for i, item := range items {
		if item.Index == nil || item.Score == nil {
			return nil, malformed(body, fmt.Errorf("item %d: missing index or score", i))
		}
		if *item.Index < 0 {
			return nil, malformed(body, fmt.Errorf("item %d: negative index %d", i, *item.Index))
		}
		results[i] = domrerank.NewResult(*item.Index, *item.Score)
	}

	if len(results) != expected {
		return nil, domain.NewBackendError(
			"TEI response length doesn't match input documents",
			fmt.Errorf("expected %d, got %d: %w", expected, len(results), errLengthMismatch),
		)
	}

	return results, nil
}

func malformed(body []byte, cause error) error {
	return domain.NewBackendError(
		"Invalid response format from TEI service. Expected array of scores, got: "+string(body),
		fmt.Errorf("%w: %w", errMalformed, cause),
	)
}
