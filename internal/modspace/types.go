// Package modspace holds the set of physically loadable lesson modules.
//
// Each module is addressed by a Key ("<group>/<file>") and backed by a lazy
// Loader. The space is populated once at startup and is read-only afterwards,
// so lookups are safe from any goroutine.
package modspace

import (
	"context"
	"fmt"
	"strings"
)

// Key identifies one loadable module.
type Key struct {
	// Group is the topic group, e.g. "useState".
	Group string

	// File is the file identifier inside the group, e.g. "01_useState".
	File string
}

// String returns the "<group>/<file>" form of the key.
func (k Key) String() string {
	return k.Group + "/" + k.File
}

// ParseKey parses a "<group>/<file>" string.
func ParseKey(s string) (Key, error) {
	group, file, ok := strings.Cut(s, "/")
	if !ok || group == "" || file == "" || strings.Contains(file, "/") {
		return Key{}, fmt.Errorf("invalid module key %q: want <group>/<file>", s)
	}
	return Key{Group: group, File: file}, nil
}

// Page is the displayable output of a content unit.
type Page struct {
	// Title is the exercise title.
	Title string

	// Heading is the in-page heading shown above the exercise.
	Heading string

	// Body is the exercise content in Markdown.
	Body string
}

// View produces a page. It takes no input.
type View func() Page

// Module is the result of running a Loader.
type Module struct {
	// Default is the unit's renderable output. A nil Default means the
	// module has no usable default export.
	Default View
}

// Loader lazily produces a module. The context is cancelled when the
// navigation that requested the load is superseded; loaders may ignore it.
type Loader func(ctx context.Context) (*Module, error)

// StaticLoader returns a Loader that immediately yields a module whose
// default view is v.
func StaticLoader(v View) Loader {
	return func(context.Context) (*Module, error) {
		return &Module{Default: v}, nil
	}
}
