// Package config provides configuration loading and management.
package config

import (
	"time"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// ViewerConfig contains lesson resolution settings.
type ViewerConfig struct {
	// Match selects how navigation targets are matched against lesson keys.
	// Valid values: "exact" (default), "suffix".
	// Env: HOOKPAD_VIEWER_MATCH
	Match string `mapstructure:"match" yaml:"match,omitempty"`

	// LoadDelay simulates latency for every lazy lesson load.
	// Env: HOOKPAD_VIEWER_LOADDELAY
	LoadDelay time.Duration `mapstructure:"loadDelay" yaml:"loadDelay,omitempty"`
}

// ServerConfig contains settings for `hookpad serve`.
type ServerConfig struct {
	// Addr is the listen address.
	// Env: HOOKPAD_SERVER_ADDR, Default: 127.0.0.1:8080
	Addr string `mapstructure:"addr" yaml:"addr,omitempty"`

	// LoadTimeout bounds how long a request waits for a lesson.
	// Env: HOOKPAD_SERVER_LOADTIMEOUT, Default: 10s
	LoadTimeout time.Duration `mapstructure:"loadTimeout" yaml:"loadTimeout,omitempty"`
}

// RenderConfig contains terminal rendering settings.
type RenderConfig struct {
	// Width is the word wrap width. 0 uses the terminal width.
	Width int `mapstructure:"width" yaml:"width,omitempty"`

	// Style is a glamour style name or "auto".
	Style string `mapstructure:"style" yaml:"style,omitempty"`
}

// Config represents the hookpad configuration.
// Loaded from ~/.hookpad/config.yaml.
type Config struct {
	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`

	// Viewer contains lesson resolution settings.
	Viewer ViewerConfig `mapstructure:"viewer" yaml:"viewer,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server" yaml:"server,omitempty"`

	// Output is the default output format for listing commands.
	// Valid values: "table" (default), "json", "yaml".
	Output string `mapstructure:"output" yaml:"output,omitempty"`

	// Render contains terminal rendering settings.
	Render RenderConfig `mapstructure:"render" yaml:"render,omitempty"`
}

// Default values.
const (
	DefaultMatch       = "exact"
	DefaultAddr        = "127.0.0.1:8080"
	DefaultLoadTimeout = 10 * time.Second
	DefaultOutput      = "table"
	DefaultStyle       = "auto"
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Match: DefaultMatch,
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			LoadTimeout: DefaultLoadTimeout,
		},
		Output: DefaultOutput,
		Render: RenderConfig{
			Style: DefaultStyle,
		},
	}
}

// TimestampsEnabled reports whether log timestamps are on.
func (c *Config) TimestampsEnabled() bool {
	if c.Log.Timestamps == nil {
		return true
	}
	return *c.Log.Timestamps
}

// DefaultConfigTemplate is written by `hookpad config init`.
const DefaultConfigTemplate = `# hookpad configuration
# Precedence: flag > HOOKPAD_* environment > this file > built-in default.

log:
  # Show timestamps in log output.
  timestamps: true

viewer:
  # How navigation targets match lesson keys: exact | suffix
  match: exact
  # Simulated latency for lazy lesson loads, e.g. 300ms.
  loadDelay: 0s

server:
  addr: 127.0.0.1:8080
  loadTimeout: 10s

# Default output format for listings: table | json | yaml
output: table

render:
  # Word wrap width, 0 uses the terminal width.
  width: 0
  # auto | dark | light | notty | ascii | dracula | pink | tokyo-night
  style: auto
`
