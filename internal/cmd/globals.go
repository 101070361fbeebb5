package cmd

import (
	"github.com/hookpad/cli/internal/catalog"
	"github.com/hookpad/cli/internal/config"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/render"
)

// GlobalConfig holds everything initializeGlobals resolves before a
// subcommand runs. Commands receive it at construction time and read it
// from RunE, after PersistentPreRunE has filled it in.
type GlobalConfig struct {
	// Config is the validated configuration.
	Config *config.Config

	// ConfigPath is the resolved config file path.
	ConfigPath string

	// Verbose mirrors --verbose.
	Verbose bool

	// Loader keeps source information for `config show`.
	Loader *config.Loader

	// Registry is the curated lesson catalog.
	Registry *catalog.Registry

	// Space holds one lazy loader per lesson.
	Space *modspace.Space

	// Drift compares Registry and Space.
	Drift catalog.Drift
}

// MatchMode returns the configured match mode. Config is validated, so an
// unknown value cannot reach here.
func (g *GlobalConfig) MatchMode() modspace.MatchMode {
	mode, err := modspace.ParseMatchMode(g.config().Viewer.Match)
	if err != nil {
		return modspace.MatchExact
	}
	return mode
}

// OutputFormat returns the configured output format.
func (g *GlobalConfig) OutputFormat() output.OutputFormat {
	format, ok := output.ParseOutputFormat(g.config().Output)
	if !ok {
		return output.FormatTable
	}
	return format
}

// Renderer returns the terminal renderer for the configured width and style.
func (g *GlobalConfig) Renderer() render.Terminal {
	cfg := g.config()
	width := cfg.Render.Width
	if width == 0 {
		width = output.TerminalWidth(80)
	}
	return render.Terminal{Width: width, Style: cfg.Render.Style}
}

func (g *GlobalConfig) config() *config.Config {
	if g.Config == nil {
		return config.DefaultConfig()
	}
	return g.Config
}
