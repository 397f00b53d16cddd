// Package app provides the game shell: its route table, the view shells the
// routes render, and the module that serves them.
package app

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/atlas/internal/config"
	"github.com/JaimeStill/atlas/pkg/middleware"
	"github.com/JaimeStill/atlas/pkg/module"
	"github.com/JaimeStill/atlas/pkg/navigation"
	"github.com/JaimeStill/atlas/pkg/web"
)

//go:embed dist/*
var distFS embed.FS

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const layout = "app.html"

var publicFiles = []string{
	"favicon.svg",
	"robots.txt",
	"site.webmanifest",
}

var (
	mapView      = web.ViewDef{Template: "map.html", Title: "Map", Bundle: "app"}
	zoneView     = web.ViewDef{Template: "zone.html", Title: "Zone Lobby", Bundle: "app"}
	missionsView = web.ViewDef{Template: "missions.html", Title: "Missions", Bundle: "app"}
	pvpView      = web.ViewDef{Template: "pvp.html", Title: "PvP", Bundle: "app"}
	notFoundView = web.ViewDef{Template: "404.html", Title: "Not Found", Bundle: "app"}
)

var navItems = []struct {
	label string
	path  string
}{
	{"Map", "/map"},
	{"Missions", "/missions"},
	{"PvP", "/pvp"},
}

// Routes returns the route table in declaration order. Each call returns a
// fresh copy.
func Routes() []navigation.Route {
	return []navigation.Route{
		{Path: "/", Redirect: "/map"},
		{Path: "/map", View: view(mapView)},
		{Path: "/zone/:id", View: view(zoneView)},
		{Path: "/missions", View: view(missionsView)},
		{Path: "/pvp", View: view(pvpView)},
	}
}

// NewController builds the navigation controller for the route table. A nil
// cfg selects browser history served from the root.
func NewController(cfg *config.AppConfig) (*navigation.Controller, error) {
	if cfg == nil {
		cfg = &config.AppConfig{History: navigation.HistoryWeb}
	}

	routes := Routes()
	for _, r := range routes {
		if r.View != nil {
			brand(r.View, cfg)
		}
	}

	return navigation.New(navigation.Options{
		History:   cfg.History,
		Base:      cfg.Base,
		Routes:    routes,
		Sensitive: cfg.Sensitive,
		Strict:    cfg.Strict,
	})
}

// NewModule creates the root module serving the view shells, the bundled
// assets, and the public files. Navigation requests are resolved by ctrl;
// observer may be nil.
func NewModule(ctrl *navigation.Controller, cfg *config.AppConfig, logger *slog.Logger, observer navigation.Observer) (*module.Module, error) {
	views := []web.ViewDef{notFoundView}
	for _, r := range ctrl.Routes() {
		if r.View != nil {
			views = append(views, *r.View)
		}
	}

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		ctrl.Base(),
		views,
	)
	if err != nil {
		return nil, err
	}
	ts.SetNav(NavLinks(ctrl))

	notFound := notFoundView
	brand(&notFound, cfg)

	var opts []navigation.HandlerOption
	if observer != nil {
		opts = append(opts, navigation.WithObserver(observer))
	}

	nav := ctrl.Handler(
		render(ts, logger),
		ts.ErrorHandler(layout, notFound, http.StatusNotFound),
		opts...,
	)
	if cfg == nil || !cfg.Strict {
		nav = middleware.TrimSlash()(nav)
	}

	r := web.NewRouter()
	r.SetFallback(nav.ServeHTTP)

	base := ctrl.Base()
	r.HandleFunc("GET "+base+"/dist/", web.DistServer(distFS, "dist", base+"/dist/"))
	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+base+route.Pattern, route.Handler)
	}

	m := module.New("/", r)
	m.Use(middleware.Logger(logger))
	return m, nil
}

// NavLinks returns the shell navigation with hrefs built for the controller's
// history strategy and base path.
func NavLinks(ctrl *navigation.Controller) []web.NavLink {
	links := make([]web.NavLink, len(navItems))
	for i, item := range navItems {
		links[i] = web.NavLink{
			Label: item.label,
			Path:  item.path,
			Href:  ctrl.Href(item.path),
		}
	}
	return links
}

func render(ts *web.TemplateSet, logger *slog.Logger) navigation.RenderFunc {
	return func(w http.ResponseWriter, r *http.Request, m navigation.Match) {
		logger.Debug(
			"navigation resolved",
			"path", m.Path,
			"route", m.Route.Path,
			"params", m.Params,
		)
		ts.ViewHandler(layout, *m.Route.View, m.Path, m.Params).ServeHTTP(w, r)
	}
}

func view(v web.ViewDef) *web.ViewDef {
	return &v
}

func brand(v *web.ViewDef, cfg *config.AppConfig) {
	if cfg == nil {
		return
	}
	if cfg.Title != "" {
		v.Title += " | " + cfg.Title
	}
	if cfg.Bundle != "" {
		v.Bundle = cfg.Bundle
	}
}
