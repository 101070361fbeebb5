package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/cmdutil"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/viewer"
)

type viewFlags struct {
	raw bool
}

// ViewResult is the structured form of `hookpad view -o json|yaml`.
type ViewResult struct {
	Target  string `json:"target" yaml:"target"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Phase   string `json:"phase" yaml:"phase"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Heading string `json:"heading,omitempty" yaml:"heading,omitempty"`
	Body    string `json:"body,omitempty" yaml:"body,omitempty"`
}

// NewViewCmd creates the view command.
func NewViewCmd(g *GlobalConfig) *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "view <group> <file> | view <group>/<file>",
		Short: "Load and render one lesson",
		Long: `Resolve a lesson by group and file, load it and render it to the terminal.

Exit codes:
  3  the lesson failed to load
  5  no lesson matches the target
  6  the lesson has no default view

Examples:
  # Render the first useState lesson
  hookpad view useState 01_useState

  # Same target as a path
  hookpad view useState/01_useState

  # Print the lesson markdown without styling
  hookpad view useState 01_useState --raw`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, g, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print lesson markdown without rendering")
	cmdutil.AddRenderFlags(cmd)

	return cmd
}

func runView(cmd *cobra.Command, args []string, g *GlobalConfig, flags viewFlags) error {
	target, err := cmdutil.ParseTarget(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := output.ViewerLogger(target.String())

	v := viewer.New(g.Space,
		viewer.WithMatchMode(g.MatchMode()),
		viewer.WithOnChange(func(s viewer.State) {
			log.Debug("state changed", "phase", s.Phase, "generation", s.Generation)
		}),
	)
	defer v.Close()

	v.Navigate(ctx, target.Group, target.File)

	var state viewer.State
	err = output.RunWithSpinner(ctx, func() error {
		var err error
		state, err = v.Await(ctx)
		return err
	}, output.WithTitle("Loading "+target.String()))
	if err != nil {
		return err
	}

	if err := writeView(cmd, g, flags, state); err != nil {
		return err
	}

	if state.Phase == viewer.PhaseReady {
		return nil
	}
	return NewExitError(state.Err, true)
}

func writeView(cmd *cobra.Command, g *GlobalConfig, flags viewFlags, state viewer.State) error {
	out := cmd.OutOrStdout()

	if format := g.OutputFormat(); format != output.FormatTable {
		return cmdutil.WriteData(out, format, newViewResult(state))
	}

	if state.Phase != viewer.PhaseReady {
		out = cmd.ErrOrStderr()
	}

	if flags.raw {
		if state.Phase == viewer.PhaseReady {
			fmt.Fprint(out, state.Unit().Body)
			return nil
		}
		fmt.Fprintln(out, state.Message)
		return nil
	}

	text, err := viewer.Render(state, g.Renderer())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}

func newViewResult(s viewer.State) ViewResult {
	r := ViewResult{
		Target:  s.Target.String(),
		Phase:   s.Phase.String(),
		Message: s.Message,
	}
	if s.Phase != viewer.PhaseNotFound {
		r.Key = s.Key.String()
	}
	if s.Phase == viewer.PhaseReady {
		page := s.Unit()
		r.Title = page.Title
		r.Heading = page.Heading
		r.Body = page.Body
	}
	return r
}
