// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.BaseURL != DefaultBaseURL {
		t.Errorf("default base URL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != DefaultTimeoutSecs {
		t.Errorf("default timeout = %d", cfg.Server.TimeoutSecs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoadFromPathTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
base_url = "http://localhost:5000/"
timeout_secs = 15

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	// Trailing slash is stripped so path joining stays predictable.
	if cfg.Server.BaseURL != "http://localhost:5000" {
		t.Errorf("base URL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 15 {
		t.Errorf("timeout = %d", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	// Unset sections keep defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadFromPathJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"server": {"base_url": "https://example.test"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Server.BaseURL != "https://example.test" {
		t.Errorf("base URL = %q", cfg.Server.BaseURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KNOX_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("KNOX_THEME", "light")

	cfg := Default()
	if err := cfg.ApplyEnvOverrides(); err != nil {
		t.Fatalf("ApplyEnvOverrides: %v", err)
	}

	if cfg.Server.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("base URL = %q", cfg.Server.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"relative base url", func(c *Config) { c.Server.BaseURL = "/api" }, true},
		{"bad scheme", func(c *Config) { c.Server.BaseURL = "ftp://x.test" }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tc := range tests {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

// =============================================================================
// SAVE / RELOAD ROUND TRIP
// =============================================================================

func TestSaveTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Server.BaseURL = "http://localhost:8080"
	cfg.UI.CompactMode = true

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Server.BaseURL != cfg.Server.BaseURL {
		t.Errorf("base URL = %q", loaded.Server.BaseURL)
	}
	if !loaded.UI.CompactMode {
		t.Error("compact mode lost in round trip")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}
}
