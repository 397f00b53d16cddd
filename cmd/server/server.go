package main

import (
	"io"
	"time"

	"github.com/JaimeStill/atlas/internal/config"
	"github.com/JaimeStill/atlas/internal/infrastructure"
	"github.com/JaimeStill/atlas/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    server.System
}

// NewServer wires infrastructure, modules, and the HTTP server from a
// finalized configuration. Logs go to logOut, or stdout when nil.
func NewServer(cfg *config.Config, logOut io.Writer) (*Server, error) {
	infra := infrastructure.New(cfg, logOut)

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"history", cfg.App.History,
		"base", cfg.App.Base,
		"metrics", cfg.Metrics.Enabled,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    server.New(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	s.infra.Start()
	return nil
}

// Addr reports the address the HTTP server is bound to.
func (s *Server) Addr() string {
	return s.http.Addr()
}

// Shutdown stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
