package chi

import (
	"encoding/json"
	"errors"
	"fmt"

	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
)

// rerankRequest is the inbound POST /rerank body (Open WebUI / Cohere style).
type rerankRequest struct {
	Query     *string  `json:"query"`
	Documents []*string `json:"documents"`
	Model     string   `json:"model,omitempty"`
	TopN      *int     `json:"top_n,omitempty"`
}

// rerankResponse is the POST /rerank success body.
type rerankResponse struct {
	Results []rankResult `json:"results"`
}

type rankResult struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// decodeRerankRequest decodes the body with exact, case-sensitive key
// matching. Unknown keys are ignored.
func decodeRerankRequest(body []byte) (rerankRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return rerankRequest{}, err
	}

	var req rerankRequest
	targets := map[string]any{
		"query":     &req.Query,
		"documents": &req.Documents,
		"model":     &req.Model,
		"top_n":     &req.TopN,
	}
	for key, dst := range targets {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return rerankRequest{}, fmt.Errorf("field `%s`: %w", key, err)
		}
	}
	return req, nil
}

// toDomain checks the structural requirements of the body. Content rules
// (empty query, batch size) belong to the rerank use case.
func (r *rerankRequest) toDomain() (domrerank.Request, error) {
	if r.Query == nil {
		return domrerank.Request{}, errors.New("missing field `query`")
	}
	if r.Documents == nil {
		return domrerank.Request{}, errors.New("missing field `documents`")
	}
	if r.TopN != nil && *r.TopN < 0 {
		return domrerank.Request{}, errors.New("top_n must be a non-negative integer")
	}

	documents := make([]string, len(r.Documents))
	for i, doc := range r.Documents {
		if doc == nil {
			return domrerank.Request{}, fmt.Errorf("documents[%d]: expected a string, got null", i)
		}
		documents[i] = *doc
	}
	return domrerank.NewRequest(*r.Query, documents, r.Model, r.TopN), nil
}

func rankedToResponse(results []domrerank.Result) rerankResponse {
	items := make([]rankResult, len(results))
	for i := range results {
		items[i] = rankResult{
			Index:          results[i].Index(),
			RelevanceScore: results[i].Score(),
		}
	}
	return rerankResponse{Results: items}
}
