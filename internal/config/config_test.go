// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gemini-2.5-flash", cfg.Gateway.Model)
	assert.Equal(t, 60, cfg.Gateway.TimeoutSecs)
	assert.Empty(t, cfg.Gateway.APIKey)
	assert.True(t, cfg.UI.ShowSidebar)
	assert.True(t, cfg.UI.AltScreen)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1"

[gateway]
api_key = "test-key"
model = "gemini-2.0-pro"
timeout_secs = 30

[ui]
show_sidebar = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Gateway.APIKey)
	assert.Equal(t, "gemini-2.0-pro", cfg.Gateway.Model)
	assert.Equal(t, 30, cfg.Gateway.TimeoutSecs)
	assert.False(t, cfg.UI.ShowSidebar)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[gateway\nbroken"), 0o600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LIFEOS_MODEL", "gemini-env")

	cfg := Default()
	cfg.Gateway.APIKey = "file-key"
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "env-key", cfg.Gateway.APIKey)
	assert.Equal(t, "gemini-env", cfg.Gateway.Model)
}

func TestEnvOverridesIgnoreEmpty(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "  ")

	cfg := Default()
	cfg.Gateway.APIKey = "file-key"
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "file-key", cfg.Gateway.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Gateway.Model = ""
	cfg.Gateway.TimeoutSecs = -5

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gemini-2.5-flash", cfg.Gateway.Model)
	assert.Equal(t, 60, cfg.Gateway.TimeoutSecs)

	cfg.Gateway.TimeoutSecs = 10000
	assert.Error(t, cfg.Validate())
}

func TestSetGlobal(t *testing.T) {
	cfg := Default()
	cfg.Gateway.Model = "custom"
	SetGlobal(cfg)

	assert.Equal(t, "custom", Global().Gateway.Model)
}
