package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/kailas-cloud/rerank-proxy/internal/logger"
)

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := JSONRecoverer(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/rerank", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "internal_error" {
		t.Errorf("expected internal_error, got %q", resp.Error)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("expected panic to be logged")
	}
}

func TestWideEventMiddleware_RequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	var ctxLogger *zap.Logger
	r := NewRouter(NewServer(nil, nil, zap.NewNop()), zap.New(core))
	r.Get("/probe", func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logpkg.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/probe", http.NoBody)
	req.Header.Set("X-Request-Id", "req-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") != "req-123" {
		t.Errorf("expected X-Request-ID to be echoed, got %q", rr.Header().Get("X-Request-ID"))
	}
	if ctxLogger == nil {
		t.Fatal("expected request logger in context")
	}

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 canonical log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-123" {
		t.Errorf("expected request_id field, got %v", fields["request_id"])
	}
	if fields["status"] != int64(http.StatusNoContent) {
		t.Errorf("expected status 204, got %v", fields["status"])
	}
}

func TestCORS_Preflight(t *testing.T) {
	api := newTestAPI(t, replyWith(`[]`), 1000)

	req := httptest.NewRequest("OPTIONS", "/rerank", http.NoBody)
	req.Header.Set("Origin", "http://webui.local:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type, authorization")
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	if rr.Code >= 300 {
		t.Fatalf("expected successful preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected any origin, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "POST" {
		t.Errorf("expected POST to be allowed, got %q", got)
	}
}

func TestCORS_DisallowedMethod(t *testing.T) {
	api := newTestAPI(t, replyWith(`[]`), 1000)

	req := httptest.NewRequest("OPTIONS", "/rerank", http.NoBody)
	req.Header.Set("Origin", "http://webui.local:3000")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS grant for DELETE, got %q", got)
	}
}

func TestCORS_SimpleRequest(t *testing.T) {
	api := newTestAPI(t, replyWith(`[]`), 1000)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	req.Header.Set("Origin", "http://webui.local:3000")
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected any origin, got %q", got)
	}
}
