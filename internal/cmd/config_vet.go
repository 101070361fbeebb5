package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/config"
	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(g *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the hookpad configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Every key is known and every value is valid

The config path is resolved using precedence:
  --config flag > HOOKPAD_CONFIG env > ~/.hookpad/config.yaml

Examples:
  # Validate default configuration
  hookpad config vet

  # Validate custom config path
  hookpad config vet --config /path/to/config.yaml`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigVet(cmd, g)
		},
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, g *GlobalConfig) error {
	path, err := configPath(g)
	if err != nil {
		return err
	}

	output.Debug("validating config", "path", path)

	exists, err := config.FileExists(path)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not stat "+path)
	}
	if !exists {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'hookpad config init' to create default configuration.",
			Cause:    oerrors.ErrNotFound,
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatVetCheck("Config file found", path))

	_, err = config.ValidateFile(path)
	var verrs config.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		fmt.Fprintln(out, output.FormatVetCheck("YAML syntax valid", ""))
		for _, e := range verrs {
			fmt.Fprintln(out, output.FormatDriftLine(e.Field, e.Message))
		}
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("%d invalid value(s): %s", len(verrs), fields(verrs)),
			Location: path,
			Hint:     "Fix the listed keys or regenerate with 'hookpad config init --force'.",
			Cause:    oerrors.ErrValidation,
		}
	default:
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: path,
			Cause:    oerrors.ErrValidation,
		}
	}

	fmt.Fprintln(out, output.FormatVetCheck("YAML syntax valid", ""))
	fmt.Fprintln(out, output.FormatVetCheck("Values valid", ""))
	return nil
}

func fields(errs config.ValidationErrors) string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return strings.Join(names, ", ")
}
