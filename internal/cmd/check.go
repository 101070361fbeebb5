package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/viewer"
)

// checkConcurrency limits parallel lesson loads during check.
const checkConcurrency = 8

type checkFlags struct {
	strict bool
}

// loadFailure is a module that did not reach Ready.
type loadFailure struct {
	key     modspace.Key
	message string
}

// NewCheckCmd creates the check command.
func NewCheckCmd(g *GlobalConfig) *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the catalog against the lesson modules",
		Long: `Compare the curated catalog with the lesson modules and load every module.

Fails when a listed lesson has no module or a module does not load. Modules
that are not listed are reported; with --strict they fail the check too.

Examples:
  hookpad check
  hookpad check --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, g, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail on modules missing from the catalog")

	return cmd
}

func runCheck(cmd *cobra.Command, g *GlobalConfig, flags checkFlags) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, output.FormatVetCheck("Lesson modules", strconv.Itoa(g.Space.Len())))
	fmt.Fprintln(out, output.FormatVetCheck("Catalog entries", strconv.Itoa(g.Registry.Len())))

	failures, err := loadAll(cmd, g)
	if err != nil {
		return err
	}

	for _, d := range g.Drift.Unloadable {
		fmt.Fprintln(out, output.FormatDriftLine(d.Path, "listed but has no module"))
	}
	for _, k := range g.Drift.Unlisted {
		fmt.Fprintln(out, output.FormatDriftLine(k.String(), "module not listed"))
	}
	for _, f := range failures {
		fmt.Fprintln(out, output.FormatDriftLine(f.key.String(), f.message))
	}

	problems := len(g.Drift.Unloadable) + len(failures)
	if flags.strict {
		problems += len(g.Drift.Unlisted)
	}
	if problems > 0 {
		fmt.Fprintln(out, output.FormatCross(fmt.Sprintf("%d problem(s) found", problems)))
		return &oerrors.ExitError{
			Code:    ExitValidationError,
			Err:     oerrors.Wrap(oerrors.ErrValidation, "catalog check failed"),
			Printed: true,
		}
	}

	fmt.Fprintln(out, output.FormatCheckmark("Catalog and modules in sync"))
	return nil
}

// loadAll loads every module through its own viewer and collects the ones
// that end in a phase other than Ready.
func loadAll(cmd *cobra.Command, g *GlobalConfig) ([]loadFailure, error) {
	keys := g.Space.Keys()
	results := make([]*loadFailure, len(keys))

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(checkConcurrency)

	for i, key := range keys {
		eg.Go(func() error {
			v := viewer.New(g.Space)
			defer v.Close()

			v.Navigate(ctx, key.Group, key.File)
			state, err := v.Await(ctx)
			if err != nil {
				return err
			}

			output.Debug("checked lesson", "key", key.String(), "phase", state.Phase)
			if state.Phase != viewer.PhaseReady {
				results[i] = &loadFailure{key: key, message: state.Message}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var failures []loadFailure
	for _, r := range results {
		if r != nil {
			failures = append(failures, *r)
		}
	}
	return failures, nil
}
