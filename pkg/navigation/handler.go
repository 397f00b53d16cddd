package navigation

import (
	"errors"
	"net/http"
	"time"
)

// Outcome classifies how a navigation request was answered.
type Outcome string

// Navigation outcomes.
const (
	OutcomeView     Outcome = "view"
	OutcomeRedirect Outcome = "redirect"
	OutcomeNotFound Outcome = "not_found"
	OutcomeRejected Outcome = "rejected"
)

// Observer receives one observation per navigation request. Route is the
// matched route pattern, or empty when nothing matched.
type Observer interface {
	Observe(route string, outcome Outcome, duration time.Duration)
}

// RenderFunc renders the view of a resolved match.
type RenderFunc func(w http.ResponseWriter, r *http.Request, m Match)

// HandlerOption configures the handler returned by Controller.Handler.
type HandlerOption func(*handler)

// WithObserver reports every navigation request to o.
func WithObserver(o Observer) HandlerOption {
	return func(h *handler) {
		h.observer = o
	}
}

type handler struct {
	controller *Controller
	render     RenderFunc
	notFound   http.Handler
	observer   Observer
}

// Handler installs the controller in an HTTP server.
//
// With web history every request path under the base is a navigation
// location: redirect routes answer 302 Found with the effective location,
// view routes are rendered, and unmatched paths are handed to notFound.
// With hash or memory history the server only sees the base path, which
// renders the initial location "/"; every other path is handed to notFound.
func (c *Controller) Handler(render RenderFunc, notFound http.Handler, opts ...HandlerOption) http.Handler {
	h := &handler{
		controller: c,
		render:     render,
		notFound:   notFound,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	route, outcome := h.serve(w, r)
	if h.observer != nil {
		h.observer.Observe(route, outcome, time.Since(start))
	}
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request) (string, Outcome) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return "", OutcomeRejected
	}

	path, ok := h.controller.StripBase(r.URL.EscapedPath())
	if !ok {
		h.notFound.ServeHTTP(w, r)
		return "", OutcomeNotFound
	}

	if h.controller.history != HistoryWeb {
		if path != "/" {
			h.notFound.ServeHTTP(w, r)
			return "", OutcomeNotFound
		}
		return h.resolve(w, r, "/", false)
	}

	location := path
	if r.URL.RawQuery != "" {
		location += "?" + r.URL.RawQuery
	}
	return h.resolve(w, r, location, true)
}

func (h *handler) resolve(w http.ResponseWriter, r *http.Request, location string, redirect bool) (string, Outcome) {
	m, err := h.controller.Resolve(location)
	switch {
	case isNotFound(err):
		h.notFound.ServeHTTP(w, r)
		return "", OutcomeNotFound
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", OutcomeRejected
	}

	if redirect && m.RedirectedFrom != "" {
		target := h.controller.Href(m.Path)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
		return m.RedirectPattern, OutcomeRedirect
	}

	h.render(w, r, m)
	return m.Route.Path, OutcomeView
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
