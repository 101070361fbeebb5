// Package render turns viewer states into terminal or HTML output.
package render

import (
	"fmt"

	"github.com/hookpad/cli/internal/viewer"
)

// headline returns the diagnostic title for a terminal phase.
func headline(phase viewer.Phase) string {
	switch phase {
	case viewer.PhaseNotFound:
		return "Lesson not found"
	case viewer.PhaseError:
		return "Lesson failed to load"
	default:
		return fmt.Sprintf("Lesson %s", phase)
	}
}

// hint returns a follow-up suggestion for a diagnostic, if any.
func hint(phase viewer.Phase) string {
	if phase == viewer.PhaseNotFound {
		return "Run 'hookpad list' to see available lessons."
	}
	return ""
}
