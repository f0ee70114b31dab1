package tei

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
	logpkg "github.com/kailas-cloud/rerank-proxy/internal/logger"
	"github.com/kailas-cloud/rerank-proxy/internal/metrics"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

// Client talks to a Text Embeddings Inference server's rerank API.
// It is safe for concurrent use; the only shared state is the connection pool.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *zap.Logger
}

// Config holds the TEI client settings.
type Config struct {
	Endpoint string // base URL without trailing slash, e.g. http://localhost:4000
	APIKey   string // optional bearer token
	Timeout  time.Duration
	Logger   *zap.Logger

	// HTTPClient overrides the default client. Its Timeout is left untouched.
	HTTPClient *http.Client
}

// NewClient creates a TEI client. No retries are performed.
func NewClient(cfg *Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		http:     httpClient,
		logger:   logger,
	}
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Rerank sends one POST {endpoint}/rerank and returns one result per text.
// Every failure is a *domain.Error: KindInternal when the request cannot be
// built, KindBackend for anything the backend or the network did.
func (c *Client) Rerank(ctx context.Context, query string, texts []string) ([]domrerank.Result, error) {
	log := logpkg.FromContextOr(ctx, c.logger)
	url := c.endpoint + "/rerank"

	metrics.RerankDocuments.Observe(float64(len(texts)))

	payload, err := json.Marshal(newRerankRequest(query, texts))
	if err != nil {
		log.Error("Failed to encode TEI request", zap.Error(err))
		return nil, domain.NewInternal("HTTP client creation failed", err)
	}
	log.Debug("TEI request", zap.String("url", url), zap.String("body", pretty(payload)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Error("Failed to create HTTP request", zap.String("url", url), zap.Error(err))
		return nil, domain.NewInternal("HTTP client creation failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	log.Info("Forwarding request to TEI", zap.String("url", url), zap.Int("texts", len(texts)))

	start := time.Now()
	defer func() { metrics.BackendRequestDuration.Observe(time.Since(start).Seconds()) }()

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordError(metrics.ErrorTypeConnect)
		log.Error("TEI request failed", zap.String("url", url), zap.Error(err))
		return nil, domain.NewBackendError(fmt.Sprintf("Failed to connect to TEI service: %v", err), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := "Unknown error"
		if body, readErr := io.ReadAll(resp.Body); readErr == nil {
			text = string(body)
		}
		c.recordError(metrics.ErrorTypeStatus)
		log.Error("TEI returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("error_type", gjson.Get(text, "error_type").String()),
			zap.String("body", text),
		)
		return nil, domain.NewBackendError(fmt.Sprintf("TEI service error %s: %s", resp.Status, text), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordError(metrics.ErrorTypeRead)
		log.Error("Failed to read TEI response body", zap.Error(err))
		return nil, domain.NewBackendError("Failed to read response from TEI service", err)
	}

	duration := time.Since(start)
	log.Debug("TEI response", zap.Duration("duration", duration), zap.String("body", pretty(body)))

	results, err := decodeScores(body, len(texts))
	if err != nil {
		errType := metrics.ErrorTypeDecode
		if errors.Is(err, errLengthMismatch) {
			errType = metrics.ErrorTypeLengthMismatch
		}
		c.recordError(errType)
		log.Error("Invalid TEI response", zap.Error(err), zap.String("body", string(body)))
		return nil, err
	}

	metrics.BackendRequestsTotal.WithLabelValues("success").Inc()

	log.Info("TEI request successful", zap.Int("scores", len(results)), zap.Duration("duration", duration))
	return results, nil
}

// HealthCheck probes GET {endpoint}/health.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tei health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tei health: unexpected status %s", resp.Status)
	}
	return nil
}

func (c *Client) recordError(errType string) {
	metrics.BackendRequestsTotal.WithLabelValues("error").Inc()
	metrics.BackendErrorsTotal.WithLabelValues(errType).Inc()
}

// pretty formats JSON for debug logs; anything else is returned as-is.
func pretty(data []byte) string {
	if !gjson.ValidBytes(data) {
		return string(data)
	}
	return gjson.GetBytes(data, "@pretty").String()
}
