package viewer

import (
	"context"
	"fmt"
	"sync"

	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
)

// MessageNoDefaultExport is shown when a module loads without a default view.
const MessageNoDefaultExport = "module has no default export"

// ErrNoDefaultExport is the classified error for a module without a default view.
var ErrNoDefaultExport = oerrors.Wrap(oerrors.ErrInvalidModule, MessageNoDefaultExport)

// LoadError is the classified error for a failing loader. Its message is the
// loader's own message.
type LoadError struct {
	Key modspace.Key
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msg := e.Err.Error()
	if msg == "" {
		return oerrors.ErrLoad.Error()
	}
	return msg
}

// Unwrap exposes both errors.ErrLoad and the loader's error.
func (e *LoadError) Unwrap() []error {
	return []error{oerrors.ErrLoad, e.Err}
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithMatchMode sets how targets are matched against module keys.
func WithMatchMode(mode modspace.MatchMode) Option {
	return func(v *Viewer) {
		v.mode = mode
	}
}

// WithOnChange registers a callback that receives the latest state after
// every applied transition. Callbacks are serialized and always see the
// current state, never a superseded one.
func WithOnChange(fn func(State)) Option {
	return func(v *Viewer) {
		v.onChange = fn
	}
}

// Viewer resolves one navigation target at a time.
type Viewer struct {
	space    *modspace.Space
	mode     modspace.MatchMode
	onChange func(State)

	mu      sync.Mutex
	gen     uint64
	state   State
	cancel  context.CancelFunc
	changed chan struct{}
	closed  bool

	notifyMu sync.Mutex
}

// New creates a viewer over space. The viewer starts idle.
func New(space *modspace.Space, opts ...Option) *Viewer {
	v := &Viewer{
		space:   space,
		mode:    modspace.MatchExact,
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Navigate starts resolving (group, file) and returns the state it entered:
// NotFound when nothing matches, Loading otherwise. The load itself runs in
// the background; its result only applies if no newer Navigate or Close
// happened in the meantime.
func (v *Viewer) Navigate(ctx context.Context, group, file string) State {
	target := Target{Group: group, File: file}

	v.mu.Lock()
	if v.closed {
		s := v.state
		v.mu.Unlock()
		return s
	}
	v.gen++
	gen := v.gen
	v.cancelLocked()

	key, loader, ok := v.space.Find(v.mode, group, file)
	if !ok {
		msg := "module not found: " + target.String()
		v.setLocked(State{
			Target:     target,
			Phase:      PhaseNotFound,
			Message:    msg,
			Err:        oerrors.NewNotFoundError(msg, target.String(), "Run 'hookpad list' to see available lessons."),
			Generation: gen,
		})
		s := v.state
		v.mu.Unlock()
		output.Debug("navigation target not found", "target", target.String(), "generation", gen)
		v.notify()
		return s
	}

	loadCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.setLocked(State{
		Target:     target,
		Phase:      PhaseLoading,
		Key:        key,
		Generation: gen,
	})
	s := v.state
	v.mu.Unlock()

	output.Debug("loading module", "target", target.String(), "key", key.String(), "generation", gen)
	v.notify()

	go v.load(loadCtx, cancel, gen, target, key, loader)
	return s
}

func (v *Viewer) load(ctx context.Context, cancel context.CancelFunc, gen uint64, target Target, key modspace.Key, loader modspace.Loader) {
	defer cancel()

	next := State{Target: target, Key: key, Generation: gen}
	mod, err := runLoader(ctx, loader)
	switch {
	case err != nil:
		loadErr := &LoadError{Key: key, Err: err}
		next.Phase = PhaseError
		next.Message = loadErr.Error()
		next.Err = loadErr
	case mod == nil || mod.Default == nil:
		next.Phase = PhaseError
		next.Message = MessageNoDefaultExport
		next.Err = ErrNoDefaultExport
	default:
		next.Phase = PhaseReady
		next.Unit = mod.Default
	}

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		output.Debug("discarding stale load result",
			"target", target.String(),
			"phase", next.Phase.String(),
			"generation", gen,
		)
		return
	}
	v.cancel = nil
	v.setLocked(next)
	v.mu.Unlock()

	if next.Phase == PhaseError {
		output.Debug("module load failed", "target", target.String(), "error", next.Message)
	}
	v.notify()
}

// runLoader invokes loader, converting a panic into an error.
func runLoader(ctx context.Context, loader modspace.Loader) (mod *modspace.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader panicked: %v", r)
		}
	}()
	return loader(ctx)
}

// State returns the current state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Changed returns a channel that is closed on the next applied transition.
func (v *Viewer) Changed() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.changed
}

// Watch returns the current state together with the channel that is closed
// on the transition after it.
func (v *Viewer) Watch() (State, <-chan struct{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.changed
}

// Await blocks until the current target reaches a terminal phase, the
// viewer is closed, or ctx is done. An idle viewer returns immediately.
func (v *Viewer) Await(ctx context.Context) (State, error) {
	for {
		v.mu.Lock()
		s, ch, closed := v.state, v.changed, v.closed
		v.mu.Unlock()

		if closed || s.Phase == PhaseIdle || s.Phase.Terminal() {
			return s, nil
		}

		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case <-ch:
		}
	}
}

// Close tears the viewer down. Pending loads are cancelled and their results
// discarded. Navigate is a no-op afterwards.
func (v *Viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.gen++
	v.cancelLocked()
	v.setLocked(State{Phase: PhaseIdle, Generation: v.gen})
	v.mu.Unlock()
}

// Closed reports whether Close has been called.
func (v *Viewer) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *Viewer) cancelLocked() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// setLocked replaces the state and wakes everyone waiting on Changed.
// v.mu must be held.
func (v *Viewer) setLocked(s State) {
	v.state = s
	close(v.changed)
	v.changed = make(chan struct{})
}

func (v *Viewer) notify() {
	if v.onChange == nil {
		return
	}
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()
	if v.Closed() {
		return
	}
	v.onChange(v.State())
}
