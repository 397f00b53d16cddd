package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JaimeStill/atlas/pkg/navigation"
)

const (
	EnvAppTitle     = "APP_TITLE"
	EnvAppBundle    = "APP_BUNDLE"
	EnvAppBase      = "APP_BASE"
	EnvAppHistory   = "APP_HISTORY"
	EnvAppSensitive = "APP_SENSITIVE"
	EnvAppStrict    = "APP_STRICT"
)

// AppConfig is the [app] table: shell settings and navigation matching options.
type AppConfig struct {
	Title     string             `toml:"title"`
	Bundle    string             `toml:"bundle"`
	Base      string             `toml:"base"`
	History   navigation.History `toml:"history"`
	Sensitive bool               `toml:"sensitive"`
	Strict    bool               `toml:"strict"`
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *AppConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies non-zero values from the overlay. Booleans stay on once either side sets them.
func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Bundle != "" {
		c.Bundle = overlay.Bundle
	}
	if overlay.Base != "" {
		c.Base = overlay.Base
	}
	if overlay.History != "" {
		c.History = overlay.History
	}
	c.Sensitive = overlay.Sensitive
	c.Strict = overlay.Strict
}

func (c *AppConfig) loadDefaults() {
	if c.Title == "" {
		c.Title = "Atlas"
	}
	if c.Bundle == "" {
		c.Bundle = "app"
	}
	if c.History == "" {
		c.History = navigation.HistoryWeb
	}
}

func (c *AppConfig) loadEnv() {
	if v := os.Getenv(EnvAppTitle); v != "" {
		c.Title = v
	}
	if v := os.Getenv(EnvAppBundle); v != "" {
		c.Bundle = v
	}
	if v := os.Getenv(EnvAppBase); v != "" {
		c.Base = v
	}
	if v := os.Getenv(EnvAppHistory); v != "" {
		c.History = navigation.History(v)
	}
	if v := os.Getenv(EnvAppSensitive); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sensitive = b
		}
	}
	if v := os.Getenv(EnvAppStrict); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Strict = b
		}
	}
}

func (c *AppConfig) validate() error {
	if err := c.History.Validate(); err != nil {
		return err
	}
	if c.Base != "" && !strings.HasPrefix(c.Base, "/") {
		return fmt.Errorf("base must begin with /: %q", c.Base)
	}
	return nil
}
