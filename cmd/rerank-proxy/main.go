package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rerank-proxy/internal/config"
	logpkg "github.com/kailas-cloud/rerank-proxy/internal/logger"
	"github.com/kailas-cloud/rerank-proxy/internal/metrics"
	chiTransport "github.com/kailas-cloud/rerank-proxy/internal/transport/chi"
	teiTransport "github.com/kailas-cloud/rerank-proxy/internal/transport/tei"
	healthuc "github.com/kailas-cloud/rerank-proxy/internal/usecase/health"
	rerankuc "github.com/kailas-cloud/rerank-proxy/internal/usecase/rerank"
	"github.com/kailas-cloud/rerank-proxy/internal/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		env      string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "rerank-proxy",
		Short: "Translate chat-UI rerank requests into TEI /rerank calls",
		Long: "rerank-proxy accepts {query, documents} rerank requests, forwards them to a\n" +
			"Text Embeddings Inference backend and returns the scored documents\n" +
			"ordered by descending relevance.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), env, logLevel)
		},
	}

	cmd.Flags().StringVar(&env, "env", config.GetEnv(), "environment: local, dev, docker, prod (selects config/<env>.yaml)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override log level: debug, info, warn, error")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rerank-proxy %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	})

	return cmd
}

func run(ctx context.Context, env, logLevel string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting rerank proxy server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("tei_endpoint", cfg.TEI.Endpoint),
		zap.Int("max_batch_size", cfg.Rerank.MaxBatchSize),
	)

	// Register backend metrics explicitly (no init())
	metrics.RegisterBackendMetrics()

	teiClient := teiTransport.NewClient(&teiTransport.Config{
		Endpoint: cfg.TEI.Endpoint,
		APIKey:   cfg.TEI.APIKey,
		Timeout:  time.Duration(cfg.TEI.TimeoutSec) * time.Second,
		Logger:   logger,
	})

	rerankSvc := rerankuc.New(teiClient).WithMaxBatchSize(cfg.Rerank.MaxBatchSize)
	healthSvc := healthuc.New(teiClient)

	server := chiTransport.NewServer(rerankSvc, healthSvc, logger)
	router := chiTransport.NewRouter(server, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP server error", zap.Error(err))
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
