// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.vk.com/method/", cfg.API.BaseURL)
	assert.Equal(t, "https://oauth.vk.com/token", cfg.API.OAuthURL)
	assert.Equal(t, "5.131", cfg.API.Version)
	assert.NotEmpty(t, cfg.Request.UserAgent)
	assert.Positive(t, cfg.Request.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VKAPI_BASE_URL", "https://example.test/method/")
	t.Setenv("VKAPI_VERSION", "5.199")
	t.Setenv("VKAPI_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/method/", cfg.API.BaseURL)
	assert.Equal(t, "5.199", cfg.API.Version)
	assert.Equal(t, "5s", cfg.Request.Timeout.String())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  version: "5.150"
request:
  userAgent: from-yaml
`), 0o644))

	// Env wins over YAML.
	t.Setenv("VKAPI_VERSION", "5.199")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "5.199", cfg.API.Version)
	assert.Equal(t, "from-yaml", cfg.Request.UserAgent)
}

func TestLoad_MissingYAMLIsSkipped(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5.131", cfg.API.Version)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Defaults", func(*Config) {}, true},
		{"BaseURLWithoutSlash", func(c *Config) { c.API.BaseURL = "https://api.vk.com/method" }, false},
		{"BadVersion", func(c *Config) { c.API.Version = "v5" }, false},
		{"ZeroTimeout", func(c *Config) { c.Request.Timeout = 0 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{}
			cfg.SetDefaults()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetRandomUserAgent(t *testing.T) {
	t.Parallel()

	for range 20 {
		ua := GetRandomUserAgent()
		assert.Contains(t, ua, "Mozilla/5.0")
	}
}
