package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = orig })
	return &buf
}

func TestRequestLoggingAssignsRequestID(t *testing.T) {
	buf := captureLogs(t)

	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/artist/all", nil))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated X-Request-ID header")
	}
	if !strings.Contains(buf.String(), `"status_code":204`) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}

func TestRequestLoggingPropagatesRequestID(t *testing.T) {
	captureLogs(t)

	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestPanicIsRecoveredAndAccessLogged(t *testing.T) {
	buf := captureLogs(t)

	// Same registration order as the server: logging outermost, so a
	// panicking request still produces an access log entry.
	router := mux.NewRouter()
	router.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	router.Use(RequestLogging())
	router.Use(Recovery())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header on the recovered response")
	}
	if !strings.Contains(buf.String(), "Recovered from panic") {
		t.Fatalf("missing panic log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"status_code":500`) {
		t.Fatalf("panicking request was not access-logged: %s", buf.String())
	}
}
