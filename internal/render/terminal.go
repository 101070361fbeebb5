package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/viewer"
)

// StyleAuto picks a glamour style from the terminal background.
const StyleAuto = "auto"

// Terminal renders states for a terminal using glamour.
type Terminal struct {
	// Width is the word wrap width (0 for no wrap).
	Width int

	// Style is a glamour standard style name, or "auto".
	Style string
}

var _ viewer.Renderer = Terminal{}

// Placeholder implements viewer.Renderer.
func (t Terminal) Placeholder(target viewer.Target) (string, error) {
	if target == (viewer.Target{}) {
		return output.StyleDim.Render("Nothing selected."), nil
	}
	return output.StyleDim.Render("Loading ") + output.StyleNoun.Render(target.String()) + output.StyleDim.Render("..."), nil
}

// Diagnostic implements viewer.Renderer.
func (t Terminal) Diagnostic(target viewer.Target, phase viewer.Phase, message string) (string, error) {
	title := lipgloss.NewStyle().Bold(true).Foreground(output.ColorYellow).Render(headline(phase))

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(output.StyleDim.Render("target: "))
	b.WriteString(output.StyleNoun.Render(target.String()))
	b.WriteString("\n\n  ")
	b.WriteString(message)
	b.WriteString("\n")
	if h := hint(phase); h != "" {
		b.WriteString("\n")
		b.WriteString(output.StyleDim.Render("Hint: " + h))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Page implements viewer.Renderer.
func (t Terminal) Page(p modspace.Page) (string, error) {
	var b strings.Builder
	if p.Heading != "" && p.Heading != p.Title {
		b.WriteString(output.StyleTitle.Render(p.Heading))
		b.WriteString("\n")
	}
	md, err := t.Markdown(p.Body)
	if err != nil {
		return "", err
	}
	b.WriteString(md)
	return b.String(), nil
}

// Markdown renders Markdown content using glamour.
func (t Terminal) Markdown(content string) (string, error) {
	var opts []glamour.TermRendererOption
	if t.Style == "" || t.Style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(t.Style))
	}
	if t.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(t.Width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
