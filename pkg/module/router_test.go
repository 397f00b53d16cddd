package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/atlas/pkg/module"
)

func text(s string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(s))
	})
}

func TestRouter_Dispatch(t *testing.T) {
	r := module.NewRouter()

	r.HandleNative("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("healthy"))
	})
	r.Mount(module.New("/api", text("api")))
	r.Mount(module.New("/", text("app")))

	tests := []struct {
		path string
		want string
	}{
		{"/healthz", "healthy"},
		{"/api", "api"},
		{"/api/navigation/routes", "api"},
		{"/", "app"},
		{"/zone/abc", "app"},
		{"/apix", "app"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestRouter_UnmatchedWithoutRoot(t *testing.T) {
	r := module.NewRouter()
	r.Mount(module.New("/api", text("api")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRouter_ModulePrefixStripping(t *testing.T) {
	r := module.NewRouter()
	r.Mount(module.New("/api", echoPath()))

	tests := []struct {
		path     string
		wantPath string
	}{
		{"/api", "/"},
		{"/api/users", "/users"},
		{"/api/users/123/posts", "/users/123/posts"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Body.String() != tt.wantPath {
				t.Errorf("stripped path = %q, want %q", w.Body.String(), tt.wantPath)
			}
		})
	}
}
