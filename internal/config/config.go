// Package config loads resolver settings from an optional config file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kkyr/fig"
)

const envPrefix = "RESOLVER"

// Config holds all resolver settings.
type Config struct {
	LogLevel  string `fig:"log_level" default:"info"`
	LogFormat string `fig:"log_format" default:"text"`

	// MetricsAddr enables the health/metrics endpoint when set (interactive
	// mode only). Empty disables it.
	MetricsAddr string `fig:"metrics_addr"`

	Database struct {
		Path     string `fig:"path" default:"addresses.sqlite3"`
		Disabled bool   `fig:"disabled"`
	} `fig:"database"`

	// DaData is the address normalization capability. It is active only when
	// both credentials are present.
	DaData struct {
		BaseURL string        `fig:"base_url" default:"https://cleaner.dadata.ru/api/v1"`
		Token   string        `fig:"token"`
		Secret  string        `fig:"secret"`
		Timeout time.Duration `fig:"timeout" default:"5s"`
	} `fig:"dadata"`

	Nominatim struct {
		BaseURL string        `fig:"base_url" default:"https://nominatim.openstreetmap.org"`
		Timeout time.Duration `fig:"timeout" default:"10s"`
	} `fig:"nominatim"`
}

// Load reads resolver.yaml from dir (current directory when empty), applies
// RESOLVER_-prefixed environment overrides, and validates. A missing file is
// not an error; defaults and environment still apply.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}

	cfg := new(Config)
	err := fig.Load(cfg,
		fig.File("resolver.yaml"),
		fig.Dirs(dir),
		fig.UseEnv(envPrefix),
		fig.AllowNoFile(),
	)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	if c.Nominatim.BaseURL == "" {
		return errors.New("nominatim.base_url is required")
	}
	if c.Nominatim.Timeout <= 0 {
		return errors.New("invalid nominatim.timeout")
	}
	if c.DaData.Timeout <= 0 {
		return errors.New("invalid dadata.timeout")
	}
	if (c.DaData.Token == "") != (c.DaData.Secret == "") {
		return errors.New("dadata.token and dadata.secret must be set together")
	}
	return nil
}

// NormalizationEnabled reports whether the DaData capability is configured.
// Credentials present means enabled; there is no separate switch.
func (c *Config) NormalizationEnabled() bool {
	return c.DaData.Token != "" && c.DaData.Secret != ""
}
