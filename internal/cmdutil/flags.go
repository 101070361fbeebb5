// Package cmdutil provides shared command utilities: flag groups, target
// parsing and structured output.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/hookpad/cli/internal/config"
	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/viewer"
)

// AddRenderFlags registers the flags of commands that render lessons
// (view, browse). Values reach the command through the render.* config keys,
// so flag, env and config file share one precedence chain.
func AddRenderFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0,
		"Word wrap width, 0 for terminal width (env: HOOKPAD_RENDER_WIDTH)")
	cmd.Flags().String("style", config.DefaultStyle,
		"Markdown style: auto, dark, light, notty, ascii (env: HOOKPAD_RENDER_STYLE)")
}

// AddServeFlags registers the HTTP server flags, bound to the server.*
// config keys.
func AddServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", config.DefaultAddr,
		"Listen address (env: HOOKPAD_SERVER_ADDR)")
	cmd.Flags().Duration("load-timeout", config.DefaultLoadTimeout,
		"Maximum wait for a lesson load per request, 0 for none (env: HOOKPAD_SERVER_LOADTIMEOUT)")
}

// ParseTarget returns the navigation target from command args, given either
// as "<group> <file>" or as "<group>/<file>".
func ParseTarget(args []string) (viewer.Target, error) {
	switch len(args) {
	case 2:
		return viewer.Target{Group: args[0], File: args[1]}, nil
	case 1:
		key, err := modspace.ParseKey(args[0])
		if err != nil {
			return viewer.Target{}, oerrors.NewValidationError(err.Error(), args[0], "target",
				"Use <group> <file> or <group>/<file>.")
		}
		return viewer.Target{Group: key.Group, File: key.File}, nil
	default:
		return viewer.Target{}, oerrors.NewValidationError("expected a lesson target", "", "target",
			"Use <group> <file> or <group>/<file>.")
	}
}
