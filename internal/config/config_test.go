package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/atlas/internal/config"
	"github.com/JaimeStill/atlas/pkg/logging"
	"github.com/JaimeStill/atlas/pkg/navigation"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvServiceEnv, "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Logging.Level != logging.LevelInfo {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.App.History != navigation.HistoryWeb {
		t.Errorf("App.History = %q, want %q", cfg.App.History, navigation.HistoryWeb)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
	if cfg.Version == "" {
		t.Error("Version should have a default")
	}
}

func TestLoad_WithOverlay(t *testing.T) {
	t.Chdir(t.TempDir())

	writeFile(t, config.BaseConfigFile, `
version = "1.2.0"

[server]
port = 8080
shutdown_timeout = "10s"

[app]
title = "Atlas"
`)
	writeFile(t, "config.test.toml", `
[server]
port = 9090

[app]
base = "/play"
strict = true

[metrics]
enabled = true
`)
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != "10s" {
		t.Errorf("Server.ShutdownTimeout = %q, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", cfg.Version)
	}
	if cfg.App.Title != "Atlas" || cfg.App.Base != "/play" || !cfg.App.Strict {
		t.Errorf("App = %+v", cfg.App)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should come from the overlay")
	}
}

func TestLoadFile_OverlayBesideBaseFile(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "atlas.toml"), `
[server]
port = 8081
`)
	writeFile(t, filepath.Join(dir, "config.prod.toml"), `
[server]
port = 9091

[metrics]
enabled = false
`)
	writeFile(t, "config.prod.toml", `
[server]
port = 7071
`)
	t.Setenv(config.EnvServiceEnv, "prod")

	cfg, err := config.LoadFile(filepath.Join(dir, "atlas.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Port != 9091 {
		t.Errorf("Server.Port = %d, want 9091 from the overlay beside the base file", cfg.Server.Port)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want overlay to disable metrics")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvServiceEnv, "")
	t.Setenv(config.EnvServerPort, "7070")
	t.Setenv("LOGGING_FORMAT", "json")
	t.Setenv(config.EnvAppHistory, "hash")
	t.Setenv("CORS_ENABLED", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Logging.Format != logging.FormatJSON {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.App.History != navigation.HistoryHash {
		t.Errorf("App.History = %q, want hash", cfg.App.History)
	}
	if !cfg.CORS.Enabled {
		t.Error("CORS.Enabled should come from env")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[server\nport = 1"},
		{"bad port", "[server]\nport = 70000"},
		{"bad timeout", "[server]\nread_timeout = \"soon\""},
		{"bad header size", "[server]\nmax_header_size = \"lots\""},
		{"bad log level", "[logging]\nlevel = \"loud\""},
		{"bad history", "[app]\nhistory = \"session\""},
		{"relative base", "[app]\nbase = \"play\""},
		{"bad metrics namespace", "[metrics]\nnamespace = \"a-b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(config.EnvServiceEnv, "")
			writeFile(t, config.BaseConfigFile, tt.content)

			if _, err := config.Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}
