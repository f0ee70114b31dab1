package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// Config holds the rerank proxy configuration. It is loaded once at startup.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	TEI     TEIConfig     `yaml:"tei"`
	Rerank  RerankConfig  `yaml:"rerank"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// TEIConfig holds the Text Embeddings Inference backend settings.
type TEIConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// RerankConfig holds request limits.
type RerankConfig struct {
	MaxBatchSize int `yaml:"max_batch_size"`
}

// Defaults.
const (
	DefaultPort         = 8000
	DefaultEndpoint     = "http://localhost:4000"
	DefaultTimeoutSec   = 30
	DefaultMaxBatchSize = 1000
)

// Load reads configuration from config/<env>.yaml, falling back to the
// built-in defaults when the file does not exist.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = defaultConfig
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes a YAML document, substituting ${VAR} and ${VAR:-default}
// from the environment, then applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = DefaultPort
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	// Must outlive the backend call.
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.TEI.Endpoint == "" {
		c.TEI.Endpoint = DefaultEndpoint
	}
	c.TEI.Endpoint = strings.TrimRight(c.TEI.Endpoint, "/")
	if c.TEI.TimeoutSec == 0 {
		c.TEI.TimeoutSec = DefaultTimeoutSec
	}
	if c.Rerank.MaxBatchSize == 0 {
		c.Rerank.MaxBatchSize = DefaultMaxBatchSize
	}
}

// Validate checks the configuration for correctness and reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		result = multierror.Append(result,
			fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if err := validateEndpoint(c.TEI.Endpoint); err != nil {
		result = multierror.Append(result, err)
	}
	if c.TEI.TimeoutSec < 0 {
		result = multierror.Append(result,
			fmt.Errorf("tei.timeout_sec must be positive, got %d", c.TEI.TimeoutSec))
	}
	if c.Rerank.MaxBatchSize < 0 {
		result = multierror.Append(result,
			fmt.Errorf("rerank.max_batch_size must be positive, got %d", c.Rerank.MaxBatchSize))
	}

	return result.ErrorOrNil()
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("tei.endpoint is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("tei.endpoint must use http or https, got %q", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("tei.endpoint must include a host, got %q", endpoint)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
