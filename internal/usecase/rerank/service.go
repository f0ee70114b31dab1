package rerank

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
	logpkg "github.com/kailas-cloud/rerank-proxy/internal/logger"
)

// DefaultMaxBatchSize is the default maximum number of documents per request.
const DefaultMaxBatchSize = 1000

// Service runs the rerank pipeline: validate, score, rank.
type Service struct {
	scorer       Scorer
	maxBatchSize int
}

// New creates a rerank service.
func New(scorer Scorer) *Service {
	return &Service{scorer: scorer, maxBatchSize: DefaultMaxBatchSize}
}

// WithMaxBatchSize configures the maximum number of documents per request.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// MaxBatchSize returns the configured document limit.
func (s *Service) MaxBatchSize() int { return s.maxBatchSize }

// Rerank scores the request's documents and returns them by descending relevance.
// The requested top_n is logged but not applied.
func (s *Service) Rerank(ctx context.Context, req *domrerank.Request) ([]domrerank.Result, error) {
	log := logpkg.FromContext(ctx)

	fields := []zap.Field{
		zap.String("query", req.Query()),
		zap.Int("documents", len(req.Documents())),
	}
	if req.TopN() != nil {
		fields = append(fields, zap.Int("top_n", *req.TopN()))
	}
	if req.Model() != "" {
		fields = append(fields, zap.String("model", req.Model()))
	}
	log.Info("Processing rerank request", fields...)

	if err := Validate(req.Query(), req.Documents(), s.maxBatchSize); err != nil {
		log.Warn("Rejected rerank request", zap.Error(err))
		return nil, err
	}

	scored, err := s.scorer.Rerank(ctx, req.Query(), req.Documents())
	if err != nil {
		return nil, fmt.Errorf("score documents: %w", err)
	}

	ranked := Rank(scored)

	log.Info("Rerank request completed", zap.Int("results", len(ranked)))
	return ranked, nil
}
