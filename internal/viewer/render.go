package viewer

import (
	"github.com/hookpad/cli/internal/modspace"
)

// Renderer turns each phase into displayable output.
type Renderer interface {
	// Placeholder renders the neutral view shown while nothing is resolved yet.
	Placeholder(t Target) (string, error)

	// Diagnostic renders a not-found or error message for t.
	Diagnostic(t Target, phase Phase, message string) (string, error)

	// Page renders a resolved unit's output.
	Page(p modspace.Page) (string, error)
}

// Render selects the view for s. The unit is only invoked in PhaseReady.
func Render(s State, r Renderer) (string, error) {
	switch s.Phase {
	case PhaseNotFound, PhaseError:
		return r.Diagnostic(s.Target, s.Phase, s.Message)
	case PhaseReady:
		return r.Page(s.Unit())
	default:
		return r.Placeholder(s.Target)
	}
}

// Render renders the viewer's current state.
func (v *Viewer) Render(r Renderer) (string, error) {
	return Render(v.State(), r)
}
