// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package config holds client and tool configuration: defaults, an optional
YAML file, then environment variable overrides, in that order.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

var (
	errBaseURLNoSlash = errors.New("api baseURL must end in /")
	errBadVersion     = errors.New("api version must look like <major>.<minor>")
	errBadTimeout     = errors.New("request timeout must be positive")
)

// versionPattern matches VK API version strings such as "5.131".
var versionPattern = regexp.MustCompile(`^\d+\.\d+$`)

// Config holds the full configuration for the client and the cmd tools.
type Config struct {
	API struct {
		BaseURL  string `env:"VKAPI_BASE_URL" yaml:"baseURL"`
		OAuthURL string `env:"VKAPI_OAUTH_URL" yaml:"oauthURL"`
		Version  string `env:"VKAPI_VERSION" yaml:"version"`
	} `yaml:"api"`

	Request struct {
		UserAgent string        `env:"VKAPI_USER_AGENT" yaml:"userAgent"`
		Timeout   time.Duration `env:"VKAPI_TIMEOUT" yaml:"timeout"`
	} `yaml:"request"`

	Docs struct {
		// ListingURL is the dev portal page enumerating method namespaces,
		// consumed by cmd/genmethods.
		ListingURL string `env:"VKAPI_DOCS_LISTING_URL" yaml:"listingURL"`
	} `yaml:"docs"`

	Log struct {
		Level string `env:"VKAPI_LOG_LEVEL" yaml:"logLevel"`
	} `yaml:"log"`
}

// SetDefaults fills every field with its default value.
func (cfg *Config) SetDefaults() {
	cfg.API.BaseURL = "https://api.vk.com/method/"
	cfg.API.OAuthURL = "https://oauth.vk.com/token"
	cfg.API.Version = "5.131"

	cfg.Request.UserAgent = GetRandomUserAgent()
	cfg.Request.Timeout = 30 * time.Second

	cfg.Docs.ListingURL = "https://dev.vk.com/en/method"

	cfg.Log.Level = "info"
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty or missing), and environment variables, then validates it.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if err := cfg.readYAML(path); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the invariants the client relies on.
func (cfg *Config) Validate() error {
	if !strings.HasSuffix(cfg.API.BaseURL, "/") {
		return fmt.Errorf("%w: %q", errBaseURLNoSlash, cfg.API.BaseURL)
	}

	if !versionPattern.MatchString(cfg.API.Version) {
		return fmt.Errorf("%w: %q", errBadVersion, cfg.API.Version)
	}

	if cfg.Request.Timeout <= 0 {
		return fmt.Errorf("%w: %s", errBadTimeout, cfg.Request.Timeout)
	}

	return nil
}

func (cfg *Config) readYAML(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Info().
			Str("path", path).
			Msg("No YAML configuration file found, skipping")

		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- Only loading a config file
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	return nil
}
