package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/JaimeStill/atlas/pkg/handlers"
	"github.com/JaimeStill/atlas/pkg/middleware"
	"github.com/JaimeStill/atlas/pkg/module"
	"github.com/JaimeStill/atlas/pkg/navigation"
	"github.com/JaimeStill/atlas/pkg/routes"
)

// RouteInfo describes one entry of the route table.
type RouteInfo struct {
	Path     string   `json:"path"`
	Redirect string   `json:"redirect,omitempty"`
	View     string   `json:"view,omitempty"`
	Title    string   `json:"title,omitempty"`
	Params   []string `json:"params,omitempty"`
}

// Table is the route table together with its history settings.
type Table struct {
	History navigation.History `json:"history"`
	Base    string             `json:"base"`
	Routes  []RouteInfo        `json:"routes"`
}

// Resolution is the result of resolving a location.
type Resolution struct {
	Path           string            `json:"path"`
	Href           string            `json:"href"`
	Route          string            `json:"route"`
	View           string            `json:"view"`
	Params         map[string]string `json:"params"`
	Query          url.Values        `json:"query,omitempty"`
	RedirectedFrom string            `json:"redirected_from,omitempty"`
}

// NewTable describes the controller's route table.
func NewTable(ctrl *navigation.Controller) Table {
	routes := ctrl.Routes()
	t := Table{
		History: ctrl.History(),
		Base:    ctrl.Base(),
		Routes:  make([]RouteInfo, 0, len(routes)),
	}
	for _, r := range routes {
		info := RouteInfo{
			Path:     r.Path,
			Redirect: r.Redirect,
			Params:   r.Params(),
		}
		if r.View != nil {
			info.View = r.View.Template
			info.Title = r.View.Title
		}
		t.Routes = append(t.Routes, info)
	}
	return t
}

// NewResolution describes a resolved match.
func NewResolution(ctrl *navigation.Controller, m navigation.Match) Resolution {
	params := m.Params
	if params == nil {
		params = map[string]string{}
	}
	res := Resolution{
		Path:           m.Path,
		Href:           ctrl.Href(m.Path),
		Route:          m.Route.Path,
		Params:         params,
		Query:          m.Query,
		RedirectedFrom: m.RedirectedFrom,
	}
	if m.Route.View != nil {
		res.View = m.Route.View.Template
	}
	return res
}

type api struct {
	ctrl   *navigation.Controller
	logger *slog.Logger
}

// NewAPIModule creates the /api module exposing the route table and location
// resolution as JSON.
func NewAPIModule(ctrl *navigation.Controller, cors *middleware.CORSConfig, logger *slog.Logger) *module.Module {
	a := &api{ctrl: ctrl, logger: logger.With("module", "api")}

	group := a.group()
	endpoints := routes.Flatten(group)

	mux := http.NewServeMux()
	routes.Register(mux, group)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, listEndpoints(endpoints))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondError(w, a.logger, http.StatusNotFound, fmt.Errorf("no endpoint: %s %s", r.Method, r.URL.Path))
	})

	m := module.New("/api", mux)
	m.Use(middleware.Logger(logger))
	if cors != nil {
		m.Use(middleware.CORS(cors))
	}
	return m
}

// Endpoint describes one API endpoint.
type Endpoint struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
}

func (a *api) group() routes.Group {
	return routes.Group{
		Prefix:      "/navigation",
		Description: "Route table inspection and location resolution",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/routes", Handler: a.listRoutes, Summary: "List the route table"},
			{Method: "GET", Pattern: "/resolve", Handler: a.resolveLocation, Summary: "Resolve the location given by ?path="},
		},
	}
}

func listEndpoints(rs []routes.Route) []Endpoint {
	out := make([]Endpoint, len(rs))
	for i, r := range rs {
		out[i] = Endpoint{Method: r.Method, Path: "/api" + r.Pattern, Summary: r.Summary}
	}
	return out
}

func (a *api) listRoutes(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, NewTable(a.ctrl))
}

func (a *api) resolveLocation(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("path")
	if location == "" {
		handlers.RespondError(w, a.logger, http.StatusBadRequest, errors.New("missing path query parameter"))
		return
	}

	m, err := a.ctrl.Resolve(location)
	switch {
	case errors.Is(err, navigation.ErrNotFound):
		handlers.RespondError(w, a.logger, http.StatusNotFound, err)
		return
	case err != nil:
		handlers.RespondError(w, a.logger, http.StatusBadRequest, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, NewResolution(a.ctrl, m))
}
