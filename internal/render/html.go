package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/viewer"
)

// HTML renders states as HTML fragments for the web server.
type HTML struct {
	md goldmark.Markdown
}

var _ viewer.Renderer = (*HTML)(nil)

// NewHTML creates an HTML renderer with GitHub flavoured Markdown.
func NewHTML() *HTML {
	return &HTML{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

var fragments = template.Must(template.New("fragments").Parse(`
{{define "placeholder"}}<div class="placeholder" aria-busy="true">Loading{{if .}} <code>{{.}}</code>{{end}}...</div>{{end}}
{{define "diagnostic"}}<div class="diagnostic {{.Class}}" role="alert">
<h2>{{.Headline}}</h2>
<p class="muted">target: <code>{{.Target}}</code></p>
<p class="message">{{.Message}}</p>
{{if .Hint}}<p class="muted">{{.Hint}}</p>{{end}}
</div>{{end}}
{{define "page"}}<article class="lesson">
{{if .Heading}}<p class="heading">{{.Heading}}</p>{{end}}
{{.Body}}
</article>{{end}}
`))

// Placeholder implements viewer.Renderer.
func (h *HTML) Placeholder(target viewer.Target) (string, error) {
	name := ""
	if target != (viewer.Target{}) {
		name = target.String()
	}
	return h.execute("placeholder", name)
}

// Diagnostic implements viewer.Renderer.
func (h *HTML) Diagnostic(target viewer.Target, phase viewer.Phase, message string) (string, error) {
	return h.execute("diagnostic", struct {
		Class, Headline, Target, Message, Hint string
	}{
		Class:    phase.String(),
		Headline: headline(phase),
		Target:   target.String(),
		Message:  message,
		Hint:     hint(phase),
	})
}

// Page implements viewer.Renderer.
func (h *HTML) Page(p modspace.Page) (string, error) {
	body, err := h.Markdown(p.Body)
	if err != nil {
		return "", err
	}
	heading := p.Heading
	if heading == p.Title {
		heading = ""
	}
	return h.execute("page", struct {
		Heading string
		Body    template.HTML
	}{
		Heading: heading,
		Body:    body,
	})
}

// Markdown converts Markdown to HTML. Raw HTML in the source is escaped.
func (h *HTML) Markdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML unless WithUnsafe is set
}

func (h *HTML) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
