package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Bridge: BridgeConfig{
			Osascript:           "osascript",
			AppName:             "OmniFocus",
			TimeoutSeconds:      60,
			ProbeTimeoutSeconds: 5,
			MaxOutputBytes:      10 * 1024 * 1024,
		},
		Output: OutputConfig{
			Format: "pretty",
			Color:  true,
		},
		Defaults: DefaultsConfig{
			TaskLimit:    100,
			ForecastDays: 7,
		},
	}
}

// WriteDefault writes the default configuration to a file
func WriteDefault(path string) error {
	content := `# of Configuration
version: "1"

# Scripting bridge
bridge:
  osascript: osascript
  app_name: OmniFocus
  timeout_seconds: 60
  probe_timeout_seconds: 5
  max_output_bytes: 10485760

# Output rendering
output:
  format: pretty  # pretty, json, or quiet
  color: true

# List operation fallbacks
defaults:
  task_limit: 100
  forecast_days: 7
`
	return os.WriteFile(path, []byte(content), 0644)
}
