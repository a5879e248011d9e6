package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Bridge.AppName != "OmniFocus" {
		t.Errorf("Unexpected app name: %s", cfg.Bridge.AppName)
	}
	if cfg.Bridge.TimeoutSeconds != 60 {
		t.Errorf("Unexpected timeout: %d", cfg.Bridge.TimeoutSeconds)
	}
	if cfg.Output.Format != "pretty" {
		t.Errorf("Unexpected format: %s", cfg.Output.Format)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: "1"
bridge:
  app_name: "OmniFocus 4"
  timeout_seconds: 30
output:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := loadFile(path, cfg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Bridge.AppName != "OmniFocus 4" {
		t.Errorf("Expected override, got %s", cfg.Bridge.AppName)
	}
	if cfg.Bridge.TimeoutSeconds != 30 {
		t.Errorf("Expected override, got %d", cfg.Bridge.TimeoutSeconds)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected override, got %s", cfg.Output.Format)
	}
	// Untouched fields keep defaults.
	if cfg.Bridge.Osascript != "osascript" {
		t.Errorf("Expected default interpreter, got %s", cfg.Bridge.Osascript)
	}
	if cfg.Defaults.TaskLimit != 100 {
		t.Errorf("Expected default task limit, got %d", cfg.Defaults.TaskLimit)
	}
}

func TestLoadSurfacesMalformedConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".of")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "bridge: [not, a, mapping"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for malformed config")
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg := DefaultConfig()
	if err := loadFile(path, cfg); err != nil {
		t.Fatalf("Written default must parse: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Written defaults differ from DefaultConfig: %+v", cfg)
	}
}

func TestNewRunnerAppliesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bridge.TimeoutSeconds = 10
	cfg.Bridge.AppName = "OmniFocus 4"

	r := cfg.NewRunner()
	if r.Timeout != 10*time.Second {
		t.Errorf("Unexpected timeout: %v", r.Timeout)
	}
	if r.AppName != "OmniFocus 4" {
		t.Errorf("Unexpected app name: %s", r.AppName)
	}
	if r.ProbeTimeout != 5*time.Second {
		t.Errorf("Unexpected probe timeout: %v", r.ProbeTimeout)
	}
}

func TestNewRunnerFallsBackOnZeroValues(t *testing.T) {
	cfg := &Config{}
	r := cfg.NewRunner()
	if r.Osascript != "osascript" || r.AppName != "OmniFocus" {
		t.Errorf("Expected defaults, got %s / %s", r.Osascript, r.AppName)
	}
	if r.MaxOutput != 10*1024*1024 {
		t.Errorf("Expected default output cap, got %d", r.MaxOutput)
	}
}
