package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a configuration or catalog validation failure.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates no loadable module matches a navigation target.
	ErrNotFound = errors.New("not found")

	// ErrLoad indicates a lazy loader failed while producing its module.
	ErrLoad = errors.New("load failed")

	// ErrInvalidModule indicates a module loaded but has no default view.
	ErrInvalidModule = errors.New("invalid module")
)
