package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hookpad/cli/internal/cmdutil"
	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/server"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// server is told to stop.
const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd(g *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lessons over HTTP",
		Long: `Serve the lesson catalog and viewer over HTTP.

Routes:
  GET /                        lesson listing
  GET /topic/<group>/<file>    one lesson
  GET /health                  health check

Examples:
  # Serve on the configured address
  hookpad serve

  # Serve on all interfaces, waiting at most 2s for a lesson to load
  hookpad serve --addr :8080 --load-timeout 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, g)
		},
	}

	cmdutil.AddServeFlags(cmd)

	return cmd
}

func runServe(cmd *cobra.Command, g *GlobalConfig) error {
	cfg := g.Config.Server

	handler := server.New(g.Registry, g.Space, server.Options{
		Match:       g.MatchMode(),
		LoadTimeout: cfg.LoadTimeout,
	})

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return oerrors.NewValidationError(err.Error(), cfg.Addr, "server.addr", "Choose a free address with --addr.")
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	output.Info("serving lessons", "addr", ln.Addr().String(), "lessons", g.Space.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d lessons on http://%s\n", g.Space.Len(), ln.Addr())

	eg, ctx := errgroup.WithContext(cmd.Context())

	eg.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		output.Debug("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
