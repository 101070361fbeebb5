// Package server serves the lesson catalog and viewer over HTTP.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/hookpad/cli/internal/catalog"
	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/render"
	"github.com/hookpad/cli/internal/viewer"
)

// Options configures the HTTP handler.
type Options struct {
	// Match selects how topic paths are matched against module keys.
	Match modspace.MatchMode

	// LoadTimeout bounds how long a request waits for a lesson to load.
	// Zero waits until the client goes away.
	LoadTimeout time.Duration
}

type server struct {
	reg   *catalog.Registry
	space *modspace.Space
	opts  Options
	tpl   *template.Template
	html  *render.HTML
}

// New creates the HTTP handler for the catalog and module space.
func New(reg *catalog.Registry, space *modspace.Space, opts Options) http.Handler {
	s := &server{
		reg:   reg,
		space: space,
		opts:  opts,
		tpl:   template.Must(template.New("layout").Funcs(template.FuncMap{"link": catalog.Link}).Parse(layoutTpl)),
		html:  render.NewHTML(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /topic/{group}/{file}", s.handleTopic)
	mux.Handle("GET /health", HealthHandler(space))
	return accessLog(mux)
}

type homeData struct {
	Title  string
	Groups []catalog.Group
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.execute(w, http.StatusOK, "home", homeData{
		Title:  "hookpad",
		Groups: s.reg.Reversed(),
	})
}

type topicData struct {
	Title   string
	Target  string
	Phase   string
	Content template.HTML
}

func (s *server) handleTopic(w http.ResponseWriter, r *http.Request) {
	group, file := r.PathValue("group"), r.PathValue("file")
	log := output.ViewerLogger(group + "/" + file)

	v := viewer.New(s.space, viewer.WithMatchMode(s.opts.Match))
	defer v.Close()

	v.Navigate(r.Context(), group, file)

	ctx := r.Context()
	if s.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LoadTimeout)
		defer cancel()
	}

	state, err := v.Await(ctx)
	if r.Context().Err() != nil {
		log.Debug("client went away before the lesson settled", "phase", state.Phase.String())
		return
	}

	code := statusFor(state)
	if err != nil {
		log.Warn("lesson load timed out", "timeout", s.opts.LoadTimeout)
		code = http.StatusGatewayTimeout
	}

	content, rerr := viewer.Render(state, s.html)
	if rerr != nil {
		log.Error("rendering lesson", "error", rerr)
		httpError(w, http.StatusInternalServerError, "unable to render lesson")
		return
	}

	title := state.Target.String()
	if state.Phase == viewer.PhaseReady {
		if p := state.Unit(); p.Title != "" {
			title = p.Title
		}
	}

	s.execute(w, code, "topic", topicData{
		Title:   title,
		Target:  state.Target.String(),
		Phase:   state.Phase.String(),
		Content: template.HTML(content), //nolint:gosec // produced by html/template and goldmark
	})
}

// statusFor maps a settled state to an HTTP status code.
func statusFor(s viewer.State) int {
	switch {
	case s.Phase == viewer.PhaseReady:
		return http.StatusOK
	case errors.Is(s.Err, oerrors.ErrNotFound):
		return http.StatusNotFound
	case s.Phase == viewer.PhaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusAccepted
	}
}

func (s *server) execute(w http.ResponseWriter, code int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.tpl.ExecuteTemplate(w, name, data); err != nil {
		output.HTTPLogger().Error("executing template", "template", name, "error", err)
	}
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
