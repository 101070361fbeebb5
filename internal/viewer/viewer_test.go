package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/testutil"
)

func awaitTerminal(t *testing.T, v *Viewer) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := v.Await(ctx)
	require.NoError(t, err)
	return s
}

// textRenderer renders pages as their body and diagnostics as their message.
type textRenderer struct{}

func (textRenderer) Placeholder(t Target) (string, error) { return "loading " + t.String(), nil }

func (textRenderer) Diagnostic(_ Target, _ Phase, message string) (string, error) {
	return "error: " + message, nil
}

func (textRenderer) Page(p modspace.Page) (string, error) { return p.Body, nil }

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "not-found", PhaseNotFound.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "ready", PhaseReady.String())
	assert.Equal(t, "unknown", Phase(42).String())

	assert.False(t, PhaseIdle.Terminal())
	assert.False(t, PhaseLoading.Terminal())
	assert.True(t, PhaseNotFound.Terminal())
	assert.True(t, PhaseError.Terminal())
	assert.True(t, PhaseReady.Terminal())
}

func TestViewer_StartsIdle(t *testing.T) {
	v := New(modspace.New())
	s := v.State()
	assert.Equal(t, PhaseIdle, s.Phase)

	out, err := v.Render(textRenderer{})
	require.NoError(t, err)
	assert.Equal(t, "loading /", out)

	// Await on an idle viewer does not block.
	s = awaitTerminal(t, v)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestViewer_ReadyForMatchingKey(t *testing.T) {
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "useState", File: "01_useState"}, modspace.StaticLoader(func() modspace.Page {
		return modspace.Page{Body: "view-A"}
	}))

	v := New(space)
	s := v.Navigate(context.Background(), "useState", "01_useState")
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, "useState/01_useState", s.Key.String())

	s = awaitTerminal(t, v)
	require.Equal(t, PhaseReady, s.Phase)
	require.NotNil(t, s.Unit)
	assert.Empty(t, s.Message)
	assert.NoError(t, s.Err)

	out, err := v.Render(textRenderer{})
	require.NoError(t, err)
	assert.Equal(t, "view-A", out)
}

func TestViewer_NotFound(t *testing.T) {
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "useState", File: "01_useState"}, modspace.StaticLoader(func() modspace.Page {
		return modspace.Page{Body: "view-A"}
	}))

	var phases []Phase
	var mu sync.Mutex
	v := New(space, WithOnChange(func(s State) {
		mu.Lock()
		phases = append(phases, s.Phase)
		mu.Unlock()
	}))

	s := v.Navigate(context.Background(), "useState", "99_missing")
	assert.Equal(t, PhaseNotFound, s.Phase)
	assert.Contains(t, s.Message, "useState/99_missing")
	assert.Equal(t, "module not found: useState/99_missing", s.Message)
	assert.True(t, errors.Is(s.Err, oerrors.ErrNotFound))
	assert.Nil(t, s.Unit)

	mu.Lock()
	assert.Equal(t, []Phase{PhaseNotFound}, phases, "never passes through loading or error")
	mu.Unlock()

	out, err := v.Render(textRenderer{})
	require.NoError(t, err)
	assert.Equal(t, "error: module not found: useState/99_missing", out)
}

func TestViewer_LoadFailure(t *testing.T) {
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "f"}, func(context.Context) (*modspace.Module, error) {
		return nil, errors.New("network down")
	})

	v := New(space)
	v.Navigate(context.Background(), "g", "f")
	s := awaitTerminal(t, v)

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, "network down", s.Message)
	assert.True(t, errors.Is(s.Err, oerrors.ErrLoad))
	assert.False(t, errors.Is(s.Err, oerrors.ErrInvalidModule))

	var loadErr *LoadError
	require.True(t, errors.As(s.Err, &loadErr))
	assert.Equal(t, "g/f", loadErr.Key.String())
}

func TestViewer_LoadFailureWithEmptyMessage(t *testing.T) {
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "f"}, func(context.Context) (*modspace.Module, error) {
		return nil, errors.New("")
	})

	v := New(space)
	v.Navigate(context.Background(), "g", "f")
	s := awaitTerminal(t, v)

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, "load failed", s.Message)
}

func TestViewer_LoaderPanicBecomesError(t *testing.T) {
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "f"}, func(context.Context) (*modspace.Module, error) {
		panic("boom")
	})

	v := New(space)
	v.Navigate(context.Background(), "g", "f")
	s := awaitTerminal(t, v)

	assert.Equal(t, PhaseError, s.Phase)
	assert.Contains(t, s.Message, "boom")
	assert.True(t, errors.Is(s.Err, oerrors.ErrLoad))
}

func TestViewer_InvalidModuleDistinctFromLoadFailure(t *testing.T) {
	tests := []struct {
		name string
		mod  *modspace.Module
	}{
		{name: "empty module", mod: &modspace.Module{}},
		{name: "nil module", mod: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := modspace.New()
			space.MustRegister(modspace.Key{Group: "g", File: "f"}, func(context.Context) (*modspace.Module, error) {
				return tt.mod, nil
			})

			v := New(space)
			v.Navigate(context.Background(), "g", "f")
			s := awaitTerminal(t, v)

			assert.Equal(t, PhaseError, s.Phase)
			assert.Contains(t, s.Message, "no default export")
			assert.NotContains(t, s.Message, "network down")
			assert.True(t, errors.Is(s.Err, oerrors.ErrInvalidModule))
			assert.False(t, errors.Is(s.Err, oerrors.ErrLoad))
		})
	}
}

func TestViewer_StaleResultIsDiscarded(t *testing.T) {
	a := testutil.NewGatedLoader(testutil.TextModule("A"), nil)
	b := testutil.NewGatedLoader(testutil.TextModule("B"), nil)

	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "a"}, a.Load)
	space.MustRegister(modspace.Key{Group: "g", File: "b"}, b.Load)

	var seen []State
	var mu sync.Mutex
	v := New(space, WithOnChange(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}))

	first := v.Navigate(context.Background(), "g", "a")
	a.WaitStarted(t)
	second := v.Navigate(context.Background(), "g", "b")
	b.WaitStarted(t)
	assert.Greater(t, second.Generation, first.Generation)

	// B settles first, then A completes late and must be ignored.
	b.Release()
	s := awaitTerminal(t, v)
	require.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "B", s.Unit().Body)

	changed := v.Changed()
	a.Release()

	select {
	case <-changed:
		t.Fatal("stale result must not produce a transition")
	case <-time.After(50 * time.Millisecond):
	}

	s = v.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, Target{Group: "g", File: "b"}, s.Target)
	assert.Equal(t, "B", s.Unit().Body)

	mu.Lock()
	defer mu.Unlock()
	for _, st := range seen {
		if st.Phase == PhaseReady {
			assert.Equal(t, "B", st.Unit().Body, "observers never see the stale page")
		}
	}
}

func TestViewer_StaleResultAfterCurrentSettles(t *testing.T) {
	a := testutil.NewGatedLoader(testutil.TextModule("A"), nil)
	b := testutil.NewGatedLoader(testutil.TextModule("B"), nil)

	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "a"}, a.Load)
	space.MustRegister(modspace.Key{Group: "g", File: "b"}, b.Load)

	v := New(space)
	v.Navigate(context.Background(), "g", "a")
	a.WaitStarted(t)
	v.Navigate(context.Background(), "g", "b")
	b.WaitStarted(t)

	// A settles while B is still loading.
	a.Release()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, PhaseLoading, v.State().Phase)
	assert.Equal(t, "b", v.State().Target.File)

	b.Release()
	s := awaitTerminal(t, v)
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "B", s.Unit().Body)
}

func TestViewer_SupersededLoadIsCancelled(t *testing.T) {
	cancelled := make(chan struct{})
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "slow"}, func(ctx context.Context) (*modspace.Module, error) {
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	})
	space.MustRegister(modspace.Key{Group: "g", File: "fast"}, modspace.StaticLoader(func() modspace.Page {
		return modspace.Page{Body: "fast"}
	}))

	v := New(space)
	v.Navigate(context.Background(), "g", "slow")
	v.Navigate(context.Background(), "g", "fast")

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("superseded loader context was not cancelled")
	}

	s := awaitTerminal(t, v)
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "fast", s.Unit().Body)
}

func TestViewer_RenavigateSameTargetReloads(t *testing.T) {
	g := testutil.NewGatedLoader(testutil.TextModule("A"), nil)
	g.Release()

	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "a"}, g.Load)

	var phases []Phase
	var mu sync.Mutex
	v := New(space, WithOnChange(func(s State) {
		mu.Lock()
		phases = append(phases, s.Phase)
		mu.Unlock()
	}))

	for i := 0; i < 2; i++ {
		s := v.Navigate(context.Background(), "g", "a")
		assert.Equal(t, PhaseLoading, s.Phase, "navigation %d", i)
		g.WaitStarted(t)
		s = awaitTerminal(t, v)
		assert.Equal(t, PhaseReady, s.Phase, "navigation %d", i)
	}

	assert.Equal(t, 2, g.Calls())

	mu.Lock()
	defer mu.Unlock()
	loading := 0
	for _, p := range phases {
		if p == PhaseLoading {
			loading++
		}
	}
	assert.Equal(t, 2, loading)
}

func TestViewer_CloseDiscardsPendingLoad(t *testing.T) {
	g := testutil.NewGatedLoader(testutil.TextModule("A"), nil)
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "a"}, g.Load)

	calls := 0
	var mu sync.Mutex
	v := New(space, WithOnChange(func(State) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))

	v.Navigate(context.Background(), "g", "a")
	g.WaitStarted(t)

	v.Close()
	assert.True(t, v.Closed())
	g.Release()
	time.Sleep(20 * time.Millisecond)

	s := v.State()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Nil(t, s.Unit)

	mu.Lock()
	assert.Equal(t, 1, calls, "only the loading transition was observed")
	mu.Unlock()

	// Navigate after Close is a no-op.
	s = v.Navigate(context.Background(), "g", "a")
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, 1, g.Calls())

	// Close is idempotent.
	v.Close()
}

func TestViewer_CloseWakesAwait(t *testing.T) {
	g := testutil.NewGatedLoader(testutil.TextModule("A"), nil)
	defer g.Release()

	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "a"}, g.Load)

	v := New(space)
	v.Navigate(context.Background(), "g", "a")
	g.WaitStarted(t)

	done := make(chan State)
	go func() {
		s, _ := v.Await(context.Background())
		done <- s
	}()

	v.Close()
	select {
	case s := <-done:
		assert.Equal(t, PhaseIdle, s.Phase)
	case <-time.After(5 * time.Second):
		t.Fatal("Await did not return after Close")
	}
}

func TestViewer_AwaitHonoursContext(t *testing.T) {
	g := testutil.NewGatedLoader(testutil.TextModule("A"), nil)
	defer g.Release()

	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "a"}, g.Load)

	v := New(space)
	v.Navigate(context.Background(), "g", "a")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s, err := v.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, PhaseLoading, s.Phase)
}

func TestViewer_SuffixMatchMode(t *testing.T) {
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "legacy_useState", File: "01_useState"}, modspace.StaticLoader(func() modspace.Page {
		return modspace.Page{Body: "legacy"}
	}))

	exact := New(space)
	assert.Equal(t, PhaseNotFound, exact.Navigate(context.Background(), "useState", "01_useState").Phase)

	suffix := New(space, WithMatchMode(modspace.MatchSuffix))
	suffix.Navigate(context.Background(), "useState", "01_useState")
	s := awaitTerminal(t, suffix)
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "legacy_useState/01_useState", s.Key.String())
}

func TestViewer_ConcurrentNavigationSettlesOnLastTarget(t *testing.T) {
	space := modspace.New()
	for i := 0; i < 10; i++ {
		body := fmt.Sprintf("page-%d", i)
		space.MustRegister(modspace.Key{Group: "g", File: fmt.Sprintf("%02d", i)}, modspace.StaticLoader(func() modspace.Page {
			return modspace.Page{Body: body}
		}))
	}

	v := New(space)
	for i := 0; i < 10; i++ {
		v.Navigate(context.Background(), "g", fmt.Sprintf("%02d", i))
	}

	s := awaitTerminal(t, v)
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "09", s.Target.File)
	assert.Equal(t, "page-9", s.Unit().Body)
}

func TestViewer_WatchPairsStateWithNextChange(t *testing.T) {
	g := testutil.NewGatedLoader(testutil.TextModule("A"), nil)
	space := modspace.New()
	space.MustRegister(modspace.Key{Group: "g", File: "a"}, g.Load)

	v := New(space)
	v.Navigate(context.Background(), "g", "a")
	g.WaitStarted(t)

	s, ch := v.Watch()
	assert.Equal(t, PhaseLoading, s.Phase)

	g.Release()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("watch channel not closed on transition")
	}

	s, _ = v.Watch()
	assert.Equal(t, PhaseReady, s.Phase)
}
