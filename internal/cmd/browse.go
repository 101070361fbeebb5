package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/cmdutil"
	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/tui"
	"github.com/hookpad/cli/internal/viewer"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd(g *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [group file]",
		Short: "Browse lessons interactively",
		Long: `Open a two-pane terminal browser: the lesson list on the left and the
selected lesson on the right.

Keys:
  enter   open the selected lesson
  tab     switch between list and content
  r       reload the current lesson
  q       quit

Examples:
  # Start with nothing selected
  hookpad browse

  # Open a lesson right away
  hookpad browse useState 01_useState`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args, g)
		},
	}

	cmdutil.AddRenderFlags(cmd)

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string, g *GlobalConfig) error {
	opts := tui.Options{Renderer: g.Renderer()}

	if len(args) > 0 {
		target, err := cmdutil.ParseTarget(args)
		if err != nil {
			return err
		}
		opts.Initial = &target
	}

	if !output.IsTTY() {
		return oerrors.NewValidationError(
			"browse needs an interactive terminal",
			"",
			"",
			"Use 'hookpad view <group> <file>' in scripts.",
		)
	}

	log := output.ViewerLogger("browse")
	v := viewer.New(g.Space,
		viewer.WithMatchMode(g.MatchMode()),
		viewer.WithOnChange(func(s viewer.State) {
			log.Debug("state changed", "target", s.Target.String(), "phase", s.Phase, "generation", s.Generation)
		}),
	)
	defer v.Close()

	return tui.Run(cmd.Context(), g.Registry, v, opts)
}
