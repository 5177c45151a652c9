// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for shiftciph.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.shiftciph/config.toml
//   - ~/.shiftciph/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/shiftciph/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete shiftciph configuration.
type Config struct {
	// Version is the configuration schema version.
	Version string `toml:"version" json:"version"`

	// Cipher holds the default cipher options applied when flags are absent.
	Cipher CipherConfig `toml:"cipher" json:"cipher"`

	// Output controls output file naming.
	Output OutputConfig `toml:"output" json:"output"`

	// History controls the run history store.
	History HistoryConfig `toml:"history" json:"history"`

	// UI controls terminal output behavior.
	UI UIConfig `toml:"ui" json:"ui"`
}

// CipherConfig contains the default cipher options.
type CipherConfig struct {
	// ShiftAmount is the default shift when -s is not given.
	// May be negative; reduction happens per alphabet at build time.
	ShiftAmount int `toml:"shift_amount" json:"shift_amount"`
	// ShiftDigits includes the digit alphabet by default.
	ShiftDigits bool `toml:"shift_digits" json:"shift_digits"`
	// ShiftPuncts includes the punctuation alphabet by default.
	ShiftPuncts bool `toml:"shift_puncts" json:"shift_puncts"`
}

// OutputConfig contains output naming configuration.
type OutputConfig struct {
	// EncipherSuffix is appended to the input path when enciphering
	// without an explicit output path.
	EncipherSuffix string `toml:"encipher_suffix" json:"encipher_suffix"`
	// DecipherSuffix is appended to the input path when deciphering
	// without an explicit output path.
	DecipherSuffix string `toml:"decipher_suffix" json:"decipher_suffix"`
}

// HistoryConfig contains run history configuration.
type HistoryConfig struct {
	// Enabled controls whether transform runs are recorded.
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the SQLite database path (empty = ~/.shiftciph/history.db).
	Path string `toml:"path" json:"path"`
	// MaxEntries is the number of runs retained; older runs are pruned.
	MaxEntries int `toml:"max_entries" json:"max_entries"`
}

// UIConfig contains terminal output configuration.
type UIConfig struct {
	// Color enables styled output on TTYs. NO_COLOR always wins.
	Color bool `toml:"color" json:"color"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Cipher: CipherConfig{
			ShiftAmount: 5,
			ShiftDigits: false,
			ShiftPuncts: false,
		},

		Output: OutputConfig{
			EncipherSuffix: ".ciph",
			DecipherSuffix: ".dec",
		},

		History: HistoryConfig{
			Enabled:    true,
			Path:       "",
			MaxEntries: 500,
		},

		UI: UIConfig{
			Color: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// baseDirOverride redirects ConfigDir during tests.
var (
	baseDirOverride string
	baseDirMu       sync.RWMutex
)

// ConfigDir returns the shiftciph configuration directory path.
func ConfigDir() (string, error) {
	baseDirMu.RLock()
	override := baseDirOverride
	baseDirMu.RUnlock()
	if override != "" {
		return override, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".shiftciph"), nil
}

// SetDirForTesting overrides the config directory. Tests only.
func SetDirForTesting(dir string) {
	baseDirMu.Lock()
	baseDirOverride = dir
	baseDirMu.Unlock()
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryPath resolves the run history database path.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode TOML config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			data, err := os.ReadFile(jsonPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read JSON config: %w", err)
			}
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode JSON config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	return finishLoad(cfg)
}

func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the TOML config file atomically.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// ENV OVERRIDES / DEFAULTS / VALIDATION
// =============================================================================

// ApplyEnvOverrides applies SHIFTCIPH_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SHIFTCIPH_SHIFT_AMOUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cipher.ShiftAmount = n
		}
	}
	if v := os.Getenv("SHIFTCIPH_SHIFT_DIGITS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cipher.ShiftDigits = b
		}
	}
	if v := os.Getenv("SHIFTCIPH_SHIFT_PUNCTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cipher.ShiftPuncts = b
		}
	}
	if v := os.Getenv("SHIFTCIPH_HISTORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.History.Enabled = b
		}
	}
	if v := os.Getenv("SHIFTCIPH_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	// NO_COLOR is handled by the CLI layer; this only covers the config knob.
	if v := os.Getenv("SHIFTCIPH_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.Color = b
		}
	}
}

// SetDefaults fills zero values that a hand-edited config file may have
// left out.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	if c.Output.EncipherSuffix == "" {
		c.Output.EncipherSuffix = ".ciph"
	}
	if c.Output.DecipherSuffix == "" {
		c.Output.DecipherSuffix = ".dec"
	}
	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = 500
	}
}

// Validate checks the configuration for values that would misbehave at run
// time.
func (c *Config) Validate() error {
	if c.Output.EncipherSuffix == c.Output.DecipherSuffix {
		return fmt.Errorf("encipher_suffix and decipher_suffix must differ (both %q)", c.Output.EncipherSuffix)
	}
	for _, s := range []string{c.Output.EncipherSuffix, c.Output.DecipherSuffix} {
		if s == "" || s[0] != '.' {
			return fmt.Errorf("output suffix %q must start with a dot", s)
		}
	}
	if c.History.MaxEntries < 1 {
		return fmt.Errorf("history max_entries must be at least 1, got %d", c.History.MaxEntries)
	}
	return nil
}

// =============================================================================
// GLOBAL CONFIG ACCESS
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first access.
// If loading fails the defaults are used.
func Global() *Config {
	globalMu.RLock()
	cfg := globalConfig
	globalMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		loaded, err := Load()
		if err != nil {
			loaded = Default()
		}
		globalConfig = loaded
	}
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}

// ReloadGlobal re-reads the configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// ResetGlobalForTesting clears the cached global config. Tests only.
func ResetGlobalForTesting() {
	globalMu.Lock()
	globalConfig = nil
	globalMu.Unlock()
}
