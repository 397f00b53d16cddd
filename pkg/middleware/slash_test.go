package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/atlas/pkg/middleware"
)

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"root passes", "/", http.StatusOK, ""},
		{"no slash passes", "/missions", http.StatusOK, ""},
		{"trailing slash", "/missions/", http.StatusMovedPermanently, "/missions"},
		{"repeated slashes", "/pvp//", http.StatusMovedPermanently, "/pvp"},
		{"keeps query", "/map/?region=north", http.StatusMovedPermanently, "/map?region=north"},
		{"keeps escapes", "/zone/a%2Fb/", http.StatusMovedPermanently, "/zone/a%2Fb"},
		{"file passes", "/dist/app.js/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := middleware.TrimSlash()(okHandler())

			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}
