package rerankproxy

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	endpoint     string
	apiKey       string
	timeout      time.Duration
	maxBatchSize int
	httpClient   *http.Client
	logger       *zap.Logger
}

// WithEndpoint sets the TEI base URL, e.g. http://localhost:4000.
func WithEndpoint(endpoint string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = endpoint
	})
}

// WithAPIKey sends the key as a bearer token to TEI.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithTimeout bounds each backend call. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithMaxBatchSize caps documents per call. Default: 1000.
func WithMaxBatchSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = n
	})
}

// WithHTTPClient replaces the HTTP client used for TEI calls.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLogger sets a zap logger. Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
