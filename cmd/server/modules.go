package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/atlas/internal/config"
	"github.com/JaimeStill/atlas/internal/infrastructure"
	"github.com/JaimeStill/atlas/pkg/module"
	"github.com/JaimeStill/atlas/pkg/navigation"
	"github.com/JaimeStill/atlas/web/app"
)

// Modules holds the mounted application modules.
type Modules struct {
	API *module.Module
	App *module.Module
}

// NewModules builds the navigation controller and the modules serving it.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	ctrl, err := app.NewController(&cfg.App)
	if err != nil {
		return nil, err
	}

	var observer navigation.Observer
	if infra.Metrics != nil {
		if err := checkMetricsPath(ctrl, cfg.Metrics.Path); err != nil {
			return nil, err
		}
		infra.Metrics.SetRoutes(len(ctrl.Routes()))
		observer = infra.Metrics
	}

	appModule, err := app.NewModule(ctrl, &cfg.App, infra.Logger, observer)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: app.NewAPIModule(ctrl, &cfg.CORS, infra.Logger),
		App: appModule,
	}, nil
}

// Mount registers every module on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
}

var reservedPaths = []string{"/healthz", "/readyz"}

// checkMetricsPath rejects a metrics path that would shadow a native endpoint,
// the API module, or a navigable location.
func checkMetricsPath(ctrl *navigation.Controller, path string) error {
	for _, reserved := range reservedPaths {
		if path == reserved {
			return fmt.Errorf("metrics path %s is reserved", path)
		}
	}
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return fmt.Errorf("metrics path %s is inside the api module", path)
	}
	if rel, ok := ctrl.StripBase(path); ok {
		if _, err := ctrl.Resolve(rel); err == nil {
			return fmt.Errorf("metrics path %s collides with a navigation route", path)
		}
	}
	return nil
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	if infra.Metrics != nil {
		router.HandleNative("GET "+cfg.Metrics.Path, infra.Metrics.Handler().ServeHTTP)
	}

	return router
}
