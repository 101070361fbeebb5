// Package testutil provides test helpers for lesson loading tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hookpad/cli/internal/modspace"
)

// waitTimeout bounds every helper that waits on another goroutine.
const waitTimeout = 5 * time.Second

// GatedLoader is a loader that blocks until Release is called, then returns
// its fixed result. It lets tests decide the order in which loads settle.
type GatedLoader struct {
	release chan struct{}
	once    sync.Once
	started chan struct{}
	mod     *modspace.Module
	err     error

	mu    sync.Mutex
	calls int
}

// NewGatedLoader returns a loader that yields mod and err once released.
func NewGatedLoader(mod *modspace.Module, err error) *GatedLoader {
	return &GatedLoader{
		release: make(chan struct{}),
		started: make(chan struct{}, 16),
		mod:     mod,
		err:     err,
	}
}

// Load implements modspace.Loader. It ignores ctx, like a loader that
// cannot be interrupted.
func (g *GatedLoader) Load(ctx context.Context) (*modspace.Module, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	g.started <- struct{}{}
	<-g.release
	return g.mod, g.err
}

// Release lets every pending and future Load return. Safe to call twice.
func (g *GatedLoader) Release() {
	g.once.Do(func() { close(g.release) })
}

// WaitStarted blocks until one more Load call has begun.
func (g *GatedLoader) WaitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(waitTimeout):
		t.Fatal("loader was not started")
	}
}

// Calls returns how many times Load ran.
func (g *GatedLoader) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// TextModule returns a module whose default view shows body as both title
// and body.
func TextModule(body string) *modspace.Module {
	return &modspace.Module{Default: func() modspace.Page {
		return modspace.Page{Title: body, Body: body}
	}}
}

// BlockingLoader waits for ctx to be cancelled and returns its error.
func BlockingLoader(ctx context.Context) (*modspace.Module, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// WriteFile creates a file with the given content in the specified
// directory, creating parent directories with owner-only permissions.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}
