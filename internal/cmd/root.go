// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/catalog"
	"github.com/hookpad/cli/internal/config"
	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/lessons"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
)

// annotationSkipConfig marks commands that must run even when the config
// file is broken, such as `config init`, `config vet` and `version`.
const annotationSkipConfig = "hookpad/skip-config"

// flagKeys maps flag names to the config keys they override. Flags are
// looked up on the executing command, so local flags like --addr bind only
// where they exist.
var flagKeys = map[string]string{
	"timestamps":   "log.timestamps",
	"match":        "viewer.match",
	"load-delay":   "viewer.loadDelay",
	"addr":         "server.addr",
	"load-timeout": "server.loadTimeout",
	"output":       "output",
	"width":        "render.width",
	"style":        "render.style",
}

type rootFlags struct {
	config  string
	verbose bool
}

// NewRootCmd creates the root command for the hookpad CLI.
func NewRootCmd() *cobra.Command {
	g := &GlobalConfig{}
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "hookpad",
		Short: "Practice playground for UI state-management lessons",
		Long: `hookpad ships a catalog of self-contained lessons grouped by topic and a
viewer that resolves a (group, file) target to a lazily loaded lesson.

Lessons can be viewed on the command line, browsed interactively, or served
over HTTP at /topic/<group>/<file>.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, g, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Path to config file (env: HOOKPAD_CONFIG)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.Bool("timestamps", true, "Show timestamps in log output (env: HOOKPAD_LOG_TIMESTAMPS)")
	pf.StringP("output", "o", config.DefaultOutput, "Output format: table, json, yaml (env: HOOKPAD_OUTPUT)")
	pf.String("match", config.DefaultMatch, "Lesson match mode: exact, suffix (env: HOOKPAD_VIEWER_MATCH)")
	pf.Duration("load-delay", 0, "Simulated latency for lesson loads (env: HOOKPAD_VIEWER_LOADDELAY)")

	rootCmd.AddCommand(NewListCmd(g))
	rootCmd.AddCommand(NewViewCmd(g))
	rootCmd.AddCommand(NewBrowseCmd(g))
	rootCmd.AddCommand(NewServeCmd(g))
	rootCmd.AddCommand(NewCheckCmd(g))
	rootCmd.AddCommand(NewConfigCmd(g))
	rootCmd.AddCommand(NewVersionCmd(g))

	return rootCmd
}

// initializeGlobals loads configuration, sets up logging and builds the
// lesson catalog and module space.
func initializeGlobals(cmd *cobra.Command, g *GlobalConfig, flags rootFlags) error {
	g.Verbose = flags.verbose
	output.SetupLogging(output.LogConfig{Verbose: flags.verbose})

	skipConfig := cmd.Annotations[annotationSkipConfig] == "true"

	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: flags.config})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	g.ConfigPath = pathResult.ConfigPath

	loader := config.NewLoader()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := loader.BindFlag(key, f); err != nil {
				return err
			}
		}
	}
	g.Loader = loader

	cfg, err := loader.Load(g.ConfigPath)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		if !skipConfig {
			return &oerrors.ExitError{
				Code: ExitValidationError,
				Err: &oerrors.DetailError{
					Type:     "validation failed",
					Message:  err.Error(),
					Location: g.ConfigPath,
					Hint:     "Run 'hookpad config vet' for details.",
					Cause:    oerrors.ErrValidation,
				},
			}
		}
		output.Debug("config load error", "error", err)
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
	}
	g.Config = cfg

	output.SetupLogging(output.LogConfig{
		Verbose:    flags.verbose,
		Timestamps: output.BoolPtr(cfg.TimestampsEnabled()),
	})

	if flags.verbose {
		output.Debug("initializing CLI",
			"config", g.ConfigPath,
			"config_source", pathResult.Source,
			"config_found", loader.Found(),
		)
		config.LogResolvedValues(loader.Resolved())
	}

	g.Space = modspace.New()
	if err := lessons.Register(g.Space, lessons.Options{Delay: cfg.Viewer.LoadDelay}); err != nil {
		return err
	}

	g.Registry, err = lessons.Catalog()
	if err != nil {
		return err
	}

	g.Drift = catalog.Reconcile(g.Registry, g.Space)
	logDrift(g.Drift)

	return nil
}

// logDrift warns about listed lessons nothing can load. Lessons that load
// but are not listed are only visible with --verbose.
func logDrift(d catalog.Drift) {
	for _, desc := range d.Unloadable {
		output.Warn("listed lesson has no module", "path", desc.Path)
	}
	for _, key := range d.Unlisted {
		output.Debug("lesson module not listed in catalog", "key", key.String())
	}
}
