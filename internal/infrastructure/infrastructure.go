// Package infrastructure assembles the shared systems every module depends on:
// lifecycle coordination, logging, and the metrics registry.
package infrastructure

import (
	"io"
	"log/slog"

	"github.com/JaimeStill/atlas/internal/config"
	"github.com/JaimeStill/atlas/pkg/lifecycle"
	"github.com/JaimeStill/atlas/pkg/logging"
	"github.com/JaimeStill/atlas/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Infrastructure holds the core systems required by all modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger

	// Metrics is nil when [metrics] is disabled.
	Metrics *metrics.Navigation
}

// New creates the infrastructure from a finalized configuration. Logs are
// written to w, or stdout when w is nil.
func New(cfg *config.Config, w io.Writer) *Infrastructure {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.New(&cfg.Logging, w).With("version", cfg.Version),
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		infra.Metrics = metrics.New(&cfg.Metrics, registry)
	}

	return infra
}

// Start marks startup complete once every registered startup hook returns.
func (i *Infrastructure) Start() {
	go func() {
		i.Lifecycle.WaitForStartup()
		i.Logger.Info("all subsystems ready")
	}()
}
