package logging

import (
	"os"
	"strconv"
)

// Env names the environment variables that override logging settings.
type Env struct {
	Level  string
	Format string
	Source string
}

// Config is the [logging] table.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
	Source bool   `toml:"source"`
}

// Finalize fills defaults, applies environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge copies set fields from overlay, including the Source flag.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	c.Source = overlay.Source
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := lookup(env.Format); v != "" {
		c.Format = Format(v)
	}
	if v := lookup(env.Source); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Source = b
		}
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
