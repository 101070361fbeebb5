package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/config"
	oerrors "github.com/hookpad/cli/internal/errors"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(g *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the hookpad CLI.`,
	}

	cmd.AddCommand(NewConfigInitCmd(g))
	cmd.AddCommand(NewConfigVetCmd(g))
	cmd.AddCommand(NewConfigShowCmd(g))

	return cmd
}

// configPath returns the config file the command should act on: the path
// resolved by the root command, or the default location when run alone.
func configPath(g *GlobalConfig) (string, error) {
	if g != nil && g.ConfigPath != "" {
		return config.ExpandPath(g.ConfigPath)
	}
	paths, err := config.DefaultPaths()
	if err != nil {
		return "", oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	return paths.ConfigFile, nil
}
