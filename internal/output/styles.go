package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI;
// never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: groups, lesson paths, keys.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "ready" phase and passed checks.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "loading" phase and drift warnings.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "not-found" phase.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "error" phase (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (groups, lesson paths, keys).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (loading, serving).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators, hints).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleTitle styles page and pane titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
)

// Phase names as rendered by viewer.Phase.String.
const (
	PhaseIdle     = "idle"
	PhaseLoading  = "loading"
	PhaseReady    = "ready"
	PhaseNotFound = "not-found"
	PhaseError    = "error"
)

// Check statuses for vet-style output.
const (
	StatusValid   = "valid"
	StatusDrift   = "drift"
	statusFailed  = "failed"
	StatusUnknown = "unknown"
)

// statusStyle returns the lipgloss style for a phase or check status.
// Unknown values return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case PhaseReady, StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case PhaseLoading, StatusDrift:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case PhaseIdle:
		return lipgloss.NewStyle().Faint(true)
	case PhaseNotFound:
		return lipgloss.NewStyle().Foreground(colorRed)
	case PhaseError, statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minTargetColumnWidth is the minimum width of the target column so phase
// words line up.
const minTargetColumnWidth = 40

// FormatPhaseLine renders a navigation target with a right-aligned,
// color-coded phase suffix.
//
// Format: t:<group/file>  <phase>
func FormatPhaseLine(target, phase string) string {
	padding := minTargetColumnWidth - len(target)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("t:")
	styledTarget := StyleNoun.Render(target)
	styledPhase := statusStyle(phase).Render(phase)

	return prefix + styledTarget + strings.Repeat(" ", padding) + styledPhase
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message for stdout output.
func FormatCross(msg string) string {
	cross := statusStyle(statusFailed).Render("✘")
	return cross + " " + msg
}

// vetLabelWidth aligns the detail column of vet checks.
const vetLabelWidth = 34

// FormatVetCheck renders a passed check line with an optional dim detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}
	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}

// FormatDriftLine renders one registry/module-space mismatch.
func FormatDriftLine(path, reason string) string {
	mark := statusStyle(StatusDrift).Render("!")
	return mark + " " + StyleNoun.Render(path) + "  " + StyleDim.Render(reason)
}
