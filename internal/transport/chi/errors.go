package chi

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
	logpkg "github.com/kailas-cloud/rerank-proxy/internal/logger"
)

// Error codes returned in the "error" field.
const (
	codeBadRequest  = "bad_request"
	codeInvalidJSON = "invalid_json"
	codeNotFound    = "not_found"
	codeTEIError    = "tei_error"
	codeInternal    = "internal_error"
)

// mapError converts any pipeline error into an HTTP status and body.
// Errors without a domain classification become 500 internal_error.
func mapError(err error) (int, errorResponse) {
	de := domain.AsError(err)

	var (
		status int
		code   string
	)
	switch de.Kind {
	case domain.KindBadRequest:
		status, code = http.StatusBadRequest, codeBadRequest
	case domain.KindInvalidJSON:
		status, code = http.StatusBadRequest, codeInvalidJSON
	case domain.KindNotFound:
		status, code = http.StatusNotFound, codeNotFound
	case domain.KindBackend:
		status, code = http.StatusBadGateway, codeTEIError
	case domain.KindInternal:
		status, code = http.StatusInternalServerError, codeInternal
	default:
		status, code = http.StatusInternalServerError, codeInternal
	}

	return status, errorResponse{Error: code, Message: de.Message}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapError(err)

	log := logpkg.FromContextOr(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.String("code", body.Error), zap.Error(err))
	} else {
		log.Warn("request rejected", zap.Int("status", status), zap.String("code", body.Error), zap.Error(err))
	}

	writeJSON(w, status, body)
}

// writeJSON encodes v before touching the response so an unencodable value
// (e.g. a NaN score) yields a clean 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{
			Error:   codeInternal,
			Message: "Internal Server Error",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
