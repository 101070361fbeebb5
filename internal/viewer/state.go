// Package viewer resolves navigation targets to lazily loaded lessons.
//
// A Viewer owns exactly one State slot. Every Navigate starts a fresh
// resolution lifecycle; loads that complete after their target has been
// superseded, or after the viewer was closed, are discarded.
package viewer

import (
	"github.com/hookpad/cli/internal/modspace"
)

// Phase is the resolution phase of the current target.
type Phase int

const (
	// PhaseIdle means no target has been navigated to yet.
	PhaseIdle Phase = iota

	// PhaseNotFound means no module matches the target. No load was attempted.
	PhaseNotFound

	// PhaseLoading means the module's loader is running.
	PhaseLoading

	// PhaseError means the load failed or the module has no default view.
	PhaseError

	// PhaseReady means the module loaded and its default view can be rendered.
	PhaseReady
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseNotFound:
		return "not-found"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a resolution lifecycle.
func (p Phase) Terminal() bool {
	return p == PhaseNotFound || p == PhaseError || p == PhaseReady
}

// Target is a navigation target.
type Target struct {
	Group string
	File  string
}

// String returns "<group>/<file>".
func (t Target) String() string {
	return t.Group + "/" + t.File
}

// State is a snapshot of the viewer.
type State struct {
	// Target is the navigation target this state belongs to.
	Target Target

	// Phase is the resolution phase.
	Phase Phase

	// Message is the user-facing diagnostic for NotFound and Error.
	Message string

	// Err is the classified error for NotFound and Error. It matches
	// errors.ErrNotFound, errors.ErrLoad or errors.ErrInvalidModule.
	Err error

	// Key is the matched module key, set from Loading onwards.
	Key modspace.Key

	// Unit is the resolved default view, set only in PhaseReady.
	Unit modspace.View

	// Generation identifies the resolution lifecycle that produced the state.
	Generation uint64
}
