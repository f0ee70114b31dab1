package rerankproxy

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
	teitransport "github.com/kailas-cloud/rerank-proxy/internal/transport/tei"
	rerankuc "github.com/kailas-cloud/rerank-proxy/internal/usecase/rerank"
)

// Result is one reranked document.
type Result struct {
	Index          int
	RelevanceScore float64
}

// Client is the rerank-proxy SDK entry point. Safe for concurrent use.
type Client struct {
	svc *rerankuc.Service
	tei *teitransport.Client
}

// New creates a Client. WithEndpoint is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.endpoint == "" {
		return nil, errors.New("rerankproxy: endpoint required (use WithEndpoint)")
	}
	u, err := url.Parse(cfg.endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("rerankproxy: invalid endpoint %q", cfg.endpoint)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tei := teitransport.NewClient(&teitransport.Config{
		Endpoint:   strings.TrimRight(cfg.endpoint, "/"),
		APIKey:     cfg.apiKey,
		Timeout:    cfg.timeout,
		Logger:     logger,
		HTTPClient: cfg.httpClient,
	})

	return &Client{
		svc: rerankuc.New(tei).WithMaxBatchSize(cfg.maxBatchSize),
		tei: tei,
	}, nil
}

// Rerank scores documents against query and returns them by descending relevance.
func (c *Client) Rerank(ctx context.Context, query string, documents []string) ([]Result, error) {
	req := domrerank.NewRequest(query, documents, "", nil)

	ranked, err := c.svc.Rerank(ctx, &req)
	if err != nil {
		return nil, fromDomain(err)
	}

	out := make([]Result, len(ranked))
	for i := range ranked {
		out[i] = Result{Index: ranked[i].Index(), RelevanceScore: ranked[i].Score()}
	}
	return out, nil
}

// Ping checks that the TEI backend answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.tei.HealthCheck(ctx); err != nil {
		return fmt.Errorf("rerankproxy: %w", err)
	}
	return nil
}
