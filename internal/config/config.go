// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for lifeos.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.lifeos/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete lifeos configuration.
type Config struct {
	Version string `toml:"version"`

	// Gateway configuration
	Gateway GatewayConfig `toml:"gateway"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// GatewayConfig contains the hosted-model connection settings.
type GatewayConfig struct {
	// APIKey is the Gemini API key. Its absence is not fatal at startup;
	// the first send cycle fails in-band instead.
	APIKey string `toml:"api_key"`
	// Model is the generation model identifier.
	Model string `toml:"model"`
	// BaseURL overrides the API base URL (tests, proxies).
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the HTTP timeout for gateway calls.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ShowSidebar toggles the vitals/agent sidebar.
	ShowSidebar bool `toml:"show_sidebar"`
	// ShowTimestamps toggles per-message timestamps.
	ShowTimestamps bool `toml:"show_timestamps"`
	// AltScreen runs the TUI on the terminal's alternate screen.
	AltScreen bool `toml:"alt_screen"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Gateway: GatewayConfig{
			Model:       "gemini-2.5-flash",
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			ShowSidebar:    true,
			ShowTimestamps: true,
			AltScreen:      true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the lifeos configuration directory (~/.lifeos).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".lifeos"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the diagnostic log file path.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lifeos.log"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Load reads the configuration: file if present, defaults otherwise, with
// environment overrides applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// LoadFromPath reads a config file from an explicit path. A missing file
// is not an error; defaults are returned.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the default path with owner-only
// permissions, since it may carry the API key.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// =============================================================================
// OVERRIDES AND VALIDATION
// =============================================================================

// ApplyEnvOverrides applies environment variables over file values.
// GEMINI_API_KEY and LIFEOS_MODEL win over the config file.
func (c *Config) ApplyEnvOverrides() {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		c.Gateway.APIKey = key
	}
	if m := strings.TrimSpace(os.Getenv("LIFEOS_MODEL")); m != "" {
		c.Gateway.Model = m
	}
}

// Validate checks field ranges, filling safe defaults where possible.
func (c *Config) Validate() error {
	if c.Gateway.Model == "" {
		c.Gateway.Model = Default().Gateway.Model
	}
	if c.Gateway.TimeoutSecs <= 0 {
		c.Gateway.TimeoutSecs = Default().Gateway.TimeoutSecs
	}
	if c.Gateway.TimeoutSecs > 600 {
		return fmt.Errorf("gateway.timeout_secs %d exceeds the 600s ceiling", c.Gateway.TimeoutSecs)
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
	globalOnce   sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
			cfg.ApplyEnvOverrides()
		}
		globalMu.Lock()
		globalConfig = cfg
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration (hot reload, tests).
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}
