// Package main is the entry point for the hookpad CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hookpad/cli/internal/cmd"
	oerrors "github.com/hookpad/cli/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	rootCmd := cmd.NewRootCmd()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cmd.ExitSuccess
	}

	// Only print if the command layer hasn't already printed it
	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(os.Stderr, err)
	}
	return cmd.ExitCodeFromError(err)
}
