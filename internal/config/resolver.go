package config

import (
	"os"
	"strings"

	"github.com/hookpad/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// envPrefix is the prefix of every hookpad environment variable.
const envPrefix = "HOOKPAD"

// EnvVar returns the environment variable for a config key,
// e.g. "viewer.loadDelay" -> "HOOKPAD_VIEWER_LOADDELAY".
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ResolvedValue records the winning value of a key and what it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveOptions carries the candidate values of one key. Set flags mark
// which layers actually provide a value.
type ResolveOptions struct {
	Key         string
	FlagValue   string
	FlagSet     bool
	ConfigValue string
	ConfigSet   bool
	Default     string
}

// Resolve resolves a key using precedence:
// (1) flag, (2) HOOKPAD_* env, (3) config file, (4) default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvVar(opts.Key))
	envSet := envValue != ""

	type layer struct {
		source ConfigSource
		value  string
		set    bool
	}
	layers := []layer{
		{SourceFlag, opts.FlagValue, opts.FlagSet},
		{SourceEnv, envValue, envSet},
		{SourceConfig, opts.ConfigValue, opts.ConfigSet},
		{SourceDefault, opts.Default, true},
	}

	for _, l := range layers {
		if !l.set {
			continue
		}
		if result.Source == "" {
			result.Value = l.value
			result.Source = l.source
			continue
		}
		result.Shadowed[l.source] = l.value
	}

	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) HOOKPAD_CONFIG env, (3) ~/.hookpad/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvVar("config"))

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
