package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/config"
	oerrors "github.com/hookpad/cli/internal/errors"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(g *GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the hookpad configuration.

Creates ~/.hookpad/config.yaml (or the file named by --config) with every
key at its default value.

Examples:
  # Initialize configuration
  hookpad config init

  # Overwrite existing configuration
  hookpad config init --force`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, g, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, g *GlobalConfig, force bool) error {
	path, err := configPath(g)
	if err != nil {
		return err
	}

	exists, err := config.FileExists(path)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not stat "+path)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := config.EnsureDir(path); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create config directory")
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration initialized at "+path)
	fmt.Fprintln(out, "Validate with: hookpad config vet")

	return nil
}
