// Package module mounts self-contained HTTP handlers under single-segment
// path prefixes, each with its own middleware chain.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is an HTTP handler mounted under a prefix. The root module uses
// the prefix "/" and receives every request no other module claims.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module for the given prefix. It panics if the prefix is
// empty, relative, or spans more than one path segment.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. Middleware added first runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and dispatches to
// the wrapped handler.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	if m.prefix == "/" {
		m.Handler().ServeHTTP(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = path
	if r.URL.RawPath != "" {
		rawPath := strings.TrimPrefix(r.URL.RawPath, m.prefix)
		if rawPath == "" {
			rawPath = "/"
		}
		r2.URL.RawPath = rawPath
	}

	m.Handler().ServeHTTP(w, r2)
}

func validatePrefix(prefix string) error {
	if prefix == "/" {
		return nil
	}
	if prefix == "" {
		return fmt.Errorf("module prefix required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must begin with /", prefix)
	}
	if strings.Contains(prefix[1:], "/") {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}
