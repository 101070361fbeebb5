package config

import (
	"fmt"
	"net"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
)

// ValidStyles lists the accepted render.style values.
var ValidStyles = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks every field of cfg.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if _, err := modspace.ParseMatchMode(cfg.Viewer.Match); err != nil {
		errs = append(errs, ValidationError{
			Field:   "viewer.match",
			Message: fmt.Sprintf("unknown match mode %q (valid: exact, suffix)", cfg.Viewer.Match),
		})
	}

	if cfg.Viewer.LoadDelay < 0 {
		errs = append(errs, ValidationError{
			Field:   "viewer.loadDelay",
			Message: "must not be negative",
		})
	}

	if cfg.Server.LoadTimeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.loadTimeout",
			Message: "must not be negative",
		})
	}

	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		errs = append(errs, ValidationError{
			Field:   "server.addr",
			Message: fmt.Sprintf("must be host:port (%v)", err),
		})
	}

	if _, ok := output.ParseOutputFormat(cfg.Output); !ok {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("unknown format %q (valid: %s)", cfg.Output, strings.Join(output.ValidFormats(), ", ")),
		})
	}

	if cfg.Render.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "render.width",
			Message: "must not be negative",
		})
	}

	if !slices.Contains(ValidStyles, cfg.Render.Style) {
		errs = append(errs, ValidationError{
			Field:   "render.style",
			Message: fmt.Sprintf("unknown style %q (valid: %s)", cfg.Render.Style, strings.Join(ValidStyles, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile loads the configuration file at path and validates it,
// including a check for keys hookpad does not know.
func ValidateFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	var errs ValidationErrors
	for _, key := range unknownKeys(raw) {
		errs = append(errs, ValidationError{Field: key, Message: "unknown key"})
	}

	cfg, err := NewLoader().Load(path)
	if err != nil {
		return nil, err
	}

	if verr := Validate(cfg); verr != nil {
		if list, ok := verr.(ValidationErrors); ok {
			errs = append(errs, list...)
		}
	}

	if len(errs) > 0 {
		return cfg, errs
	}
	return cfg, nil
}

// unknownKeys flattens raw into dotted keys and returns those not in Keys.
func unknownKeys(raw map[string]any) []string {
	known := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		known[strings.ToLower(k)] = true
	}

	var unknown []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if nested, ok := v.(map[string]any); ok && !known[strings.ToLower(key)] {
				walk(key, nested)
				continue
			}
			if !known[strings.ToLower(key)] {
				unknown = append(unknown, key)
			}
		}
	}
	walk("", raw)

	sort.Strings(unknown)
	return unknown
}
