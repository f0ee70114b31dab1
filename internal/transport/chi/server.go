package chi

import (
	"io"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
	logpkg "github.com/kailas-cloud/rerank-proxy/internal/logger"
	healthuc "github.com/kailas-cloud/rerank-proxy/internal/usecase/health"
	rerankuc "github.com/kailas-cloud/rerank-proxy/internal/usecase/rerank"
)

// Server implements the HTTP API of the rerank proxy.
type Server struct {
	rerank *rerankuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(rerank *rerankuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{rerank: rerank, health: health, logger: logger}
}

// Register mounts the API routes on r. Unmatched routes and methods answer 404 not_found.
func (s *Server) Register(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/ready", s.ReadinessCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/rerank", s.Rerank)

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.notFound)
}

// Rerank handles POST /rerank.
func (s *Server) Rerank(w http.ResponseWriter, r *http.Request) {
	log := logpkg.FromContextOr(r.Context(), s.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.handleError(w, r, domain.NewInvalidJSON(err))
		return
	}

	req, err := decodeRerankRequest(body)
	if err != nil {
		s.handleError(w, r, domain.NewInvalidJSON(err))
		return
	}

	domReq, err := req.toDomain()
	if err != nil {
		s.handleError(w, r, domain.NewInvalidJSON(err))
		return
	}
	log.Debug("Inbound rerank request", zap.Any("request", req))

	results, err := s.rerank.Rerank(r.Context(), &domReq)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := rankedToResponse(results)
	log.Debug("Rerank response", zap.Any("response", resp))

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health. It never depends on the backend.
func (s *Server) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: logpkg.ServiceName,
	})
}

// ReadinessCheck handles GET /ready.
func (s *Server) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, readyResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.handleError(w, r, domain.NewNotFound())
}
