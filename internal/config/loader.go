package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	"log.timestamps",
	"viewer.match",
	"viewer.loadDelay",
	"server.addr",
	"server.loadTimeout",
	"output",
	"render.width",
	"render.style",
}

// defaultValues returns the built-in default of every key.
func defaultValues() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"log.timestamps":     true,
		"viewer.match":       d.Viewer.Match,
		"viewer.loadDelay":   d.Viewer.LoadDelay,
		"server.addr":        d.Server.Addr,
		"server.loadTimeout": d.Server.LoadTimeout,
		"output":             d.Output,
		"render.width":       d.Render.Width,
		"render.style":       d.Render.Style,
	}
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper

	// file holds the config file alone, for source reporting.
	file  *viper.Viper
	path  string
	found bool
	flags map[string]*pflag.Flag
}

// NewLoader creates a new configuration loader with defaults and
// HOOKPAD_* environment bindings.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaultValues() {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}

	return &Loader{v: v, flags: make(map[string]*pflag.Flag)}
}

// BindFlag lets flag override key when it is set on the command line.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: nil flag", key)
	}
	l.flags[key] = flag
	return l.v.BindPFlag(key, flag)
}

// Load loads configuration from the given file path. A missing file is not
// an error; defaults and environment still apply.
func (l *Loader) Load(configFile string) (*Config, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expandedPath

	if expandedPath != "" {
		l.v.SetConfigFile(expandedPath)
		l.v.SetConfigType("yaml")

		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else {
			l.found = true
			l.file = viper.New()
			l.file.SetConfigFile(expandedPath)
			l.file.SetConfigType("yaml")
			if err := l.file.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ConfigFileUsed returns the expanded path passed to Load.
func (l *Loader) ConfigFileUsed() string {
	return l.path
}

// Found reports whether Load read a config file.
func (l *Loader) Found() bool {
	return l.found
}

// Resolved reports the winning source of every key.
func (l *Loader) Resolved() []ResolvedValue {
	defaults := defaultValues()
	out := make([]ResolvedValue, 0, len(Keys))
	for _, key := range Keys {
		opts := ResolveOptions{
			Key:     key,
			Default: fmt.Sprint(defaults[key]),
		}
		if f, ok := l.flags[key]; ok && f.Changed {
			opts.FlagValue = f.Value.String()
			opts.FlagSet = true
		}
		if l.file != nil && l.file.IsSet(key) {
			opts.ConfigValue = l.file.GetString(key)
			opts.ConfigSet = true
		}
		out = append(out, Resolve(opts))
	}
	return out
}
