// Package cmd provides CLI command implementations.
package cmd

import (
	"errors"

	oerrors "github.com/hookpad/cli/internal/errors"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid configuration, arguments or catalog drift.
	ExitValidationError = 2

	// ExitLoadError indicates a lesson loader failed.
	ExitLoadError = 3

	// ExitPermissionDenied indicates insufficient filesystem permissions.
	ExitPermissionDenied = 4

	// ExitNotFound indicates no lesson matches the navigation target.
	ExitNotFound = 5

	// ExitInvalidModule indicates a lesson loaded without a default view.
	ExitInvalidModule = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitLoadError:
		return "Load Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitInvalidModule:
		return "Invalid Module"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrLoad):
		return ExitLoadError
	case errors.Is(err, oerrors.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, oerrors.ErrInvalidModule):
		return ExitInvalidModule
	default:
		return ExitGeneralError
	}
}

// NewExitError wraps err with the exit code derived from it.
func NewExitError(err error, printed bool) *oerrors.ExitError {
	return &oerrors.ExitError{Err: err, Code: ExitCodeFromError(err), Printed: printed}
}
