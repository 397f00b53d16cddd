package metrics

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/common/model"
)

// Env names the environment variables that override metrics settings.
type Env struct {
	Enabled   string
	Namespace string
	Path      string
}

// Config is the [metrics] table.
type Config struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
	Path      string `toml:"path"`
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration, including the Enabled flag.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled
	if overlay.Namespace != "" {
		c.Namespace = overlay.Namespace
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *Config) loadDefaults() {
	if c.Namespace == "" {
		c.Namespace = "atlas"
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Enabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := getenv(env.Namespace); v != "" {
		c.Namespace = v
	}
	if v := getenv(env.Path); v != "" {
		c.Path = v
	}
}

func (c *Config) validate() error {
	if !model.IsValidMetricName(model.LabelValue(c.Namespace)) {
		return fmt.Errorf("invalid namespace: %q", c.Namespace)
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path must begin with /: %q", c.Path)
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
