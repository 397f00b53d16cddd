package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/atlas/pkg/middleware"
	"github.com/google/uuid"
)

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	wrapped := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zone/abc", nil))

	out := buf.String()
	for _, want := range []string{"msg=request", "method=GET", "path=/zone/abc", "status=302", "duration=", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestLogger_AssignsRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	wrapped := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(middleware.HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("request id %q is not a UUID: %v", id, err)
	}
}

func TestLogger_ReusesRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	wrapped := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if got := w.Header().Get(middleware.HeaderRequestID); got != "abc-123" {
		t.Errorf("request id = %q, want %q", got, "abc-123")
	}
}

func TestLogger_CallsNextHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	called := false
	wrapped := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte("response"))
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Error("next handler was not called")
	}
	if w.Body.String() != "response" {
		t.Errorf("body = %q, want %q", w.Body.String(), "response")
	}
}
