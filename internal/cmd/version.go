package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/cmdutil"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show hookpad version information.

Displays the version, commit, build date, Go version and platform.
Use -o json or -o yaml for machine-readable output.`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, g)
		},
	}
}

func runVersion(cmd *cobra.Command, g *GlobalConfig) error {
	info := version.Get()
	out := cmd.OutOrStdout()

	if format := g.OutputFormat(); format != output.FormatTable {
		return cmdutil.WriteData(out, format, info)
	}

	fmt.Fprintln(out, info.String())
	return nil
}
