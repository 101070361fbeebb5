package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/catalog"
	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/cmdutil"
	"github.com/hookpad/cli/internal/output"
)

type listFlags struct {
	reverse bool
	group   string
}

// NewListCmd creates the list command.
func NewListCmd(g *GlobalConfig) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available lessons",
		Long: `List the curated lessons grouped by topic.

Examples:
  # List all lessons
  hookpad list

  # Newest groups first, as on the server home page
  hookpad list --reverse

  # Only the useState lessons, as JSON
  hookpad list --group useState -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, g, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.reverse, "reverse", false, "List groups in reverse order")
	cmd.Flags().StringVar(&flags.group, "group", "", "Only list lessons in this group")

	return cmd
}

func runList(cmd *cobra.Command, g *GlobalConfig, flags listFlags) error {
	groups := g.Registry.ListGroups()
	if flags.reverse {
		groups = g.Registry.Reversed()
	}

	if flags.group != "" {
		groups = filterGroup(groups, flags.group)
		if len(groups) == 0 {
			return oerrors.NewNotFoundError(
				"group not found: "+flags.group,
				flags.group,
				"Run 'hookpad list' to see available groups.",
			)
		}
	}

	var rows []output.LessonRow
	for _, grp := range groups {
		for _, d := range grp.Units {
			rows = append(rows, output.LessonRow{Group: grp.Name, Name: d.Name, Link: catalog.Link(d)})
		}
	}

	out := cmd.OutOrStdout()
	format := g.OutputFormat()
	if format != output.FormatTable {
		return cmdutil.WriteData(out, format, rows)
	}

	fmt.Fprintln(out, output.RenderLessonTable(rows))
	fmt.Fprintln(out, output.StyleSummary.Render(fmt.Sprintf("%d lessons in %d groups", len(rows), len(groups))))
	return nil
}

func filterGroup(groups []catalog.Group, name string) []catalog.Group {
	for _, grp := range groups {
		if grp.Name == name {
			return []catalog.Group{grp}
		}
	}
	return nil
}
