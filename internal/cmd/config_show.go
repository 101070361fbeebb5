package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/cmdutil"
	"github.com/hookpad/cli/internal/output"
)

// configRow is one resolved key of `config show`.
type configRow struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration",
		Long: `Show every configuration key with its effective value and where it came
from: flag, env, config or default.

Examples:
  hookpad config show
  HOOKPAD_VIEWER_MATCH=suffix hookpad config show -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, g)
		},
	}
}

func runConfigShow(cmd *cobra.Command, g *GlobalConfig) error {
	var rows []configRow
	for _, v := range g.Loader.Resolved() {
		rows = append(rows, configRow{Key: v.Key, Value: v.Value, Source: string(v.Source)})
	}

	out := cmd.OutOrStdout()
	if format := g.OutputFormat(); format != output.FormatTable {
		return cmdutil.WriteData(out, format, rows)
	}

	tbl := output.NewTable("KEY", "VALUE", "SOURCE")
	for _, r := range rows {
		tbl.Row(r.Key, r.Value, r.Source)
	}
	fmt.Fprintln(out, output.StyleDim.Render("config: "+g.ConfigPath))
	fmt.Fprintln(out, tbl.String())
	return nil
}
