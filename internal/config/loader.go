package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/bridge"
)

// Load loads configuration from the user config file over defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Return defaults if no home dir
	}

	path := filepath.Join(home, ".of", "config.yaml")
	if err := loadFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// ConfigPath returns the path to the user config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".of", "config.yaml")
}

// ConfigDir returns the path to the user config directory
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".of")
}

// NewRunner builds a bridge runner from the bridge section, falling back
// per field so a sparse config stays usable.
func (c *Config) NewRunner() *bridge.Runner {
	r := bridge.NewRunner()
	if c.Bridge.Osascript != "" {
		r.Osascript = c.Bridge.Osascript
	}
	if c.Bridge.AppName != "" {
		r.AppName = c.Bridge.AppName
	}
	if c.Bridge.TimeoutSeconds > 0 {
		r.Timeout = time.Duration(c.Bridge.TimeoutSeconds) * time.Second
	}
	if c.Bridge.ProbeTimeoutSeconds > 0 {
		r.ProbeTimeout = time.Duration(c.Bridge.ProbeTimeoutSeconds) * time.Second
	}
	if c.Bridge.MaxOutputBytes > 0 {
		r.MaxOutput = c.Bridge.MaxOutputBytes
	}
	return r
}
