package config

// Config represents the full configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Bridge configures the scripting bridge
	Bridge BridgeConfig `yaml:"bridge" mapstructure:"bridge"`

	// Output configures CLI rendering
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Defaults for list operations
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
}

// BridgeConfig configures the osascript child process layer
type BridgeConfig struct {
	// Osascript is the interpreter binary, found on PATH when bare.
	Osascript string `yaml:"osascript" mapstructure:"osascript"`

	// AppName is the scripting target application.
	AppName string `yaml:"app_name" mapstructure:"app_name"`

	// TimeoutSeconds bounds one application-state operation.
	TimeoutSeconds int `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`

	// ProbeTimeoutSeconds bounds the liveness probe.
	ProbeTimeoutSeconds int `yaml:"probe_timeout_seconds" mapstructure:"probe_timeout_seconds"`

	// MaxOutputBytes caps captured script output.
	MaxOutputBytes int64 `yaml:"max_output_bytes" mapstructure:"max_output_bytes"`
}

// OutputConfig configures CLI rendering
type OutputConfig struct {
	// Format: pretty, json, or quiet
	Format string `yaml:"format" mapstructure:"format"`

	// Color enables styled terminal output
	Color bool `yaml:"color" mapstructure:"color"`
}

// DefaultsConfig holds fallback values for list operations
type DefaultsConfig struct {
	TaskLimit    int `yaml:"task_limit" mapstructure:"task_limit"`
	ForecastDays int `yaml:"forecast_days" mapstructure:"forecast_days"`
}
