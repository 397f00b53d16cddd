package handlers_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/atlas/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{"map", http.StatusOK, map[string]string{"path": "/map"}, `{"path":"/map"}`},
		{
			"struct",
			http.StatusCreated,
			struct {
				Route string `json:"route"`
			}{"/zone/:id"},
			`{"route":"/zone/:id"}`,
		},
		{"nil", http.StatusOK, nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondJSON(w, tt.status, tt.data)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"client error", http.StatusNotFound, "level=WARN"},
		{"server error", http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			w := httptest.NewRecorder()
			handlers.RespondError(w, logger, tt.status, errors.New("no route matches"))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if got := strings.TrimSpace(w.Body.String()); got != `{"error":"no route matches"}` {
				t.Errorf("body = %s", got)
			}
			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("log = %q, want %s", buf.String(), tt.wantLevel)
			}
		})
	}
}
