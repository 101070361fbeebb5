// Package lessons provides the embedded lesson content and wires it into a
// module space and the curated catalog.
package lessons

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hookpad/cli/internal/catalog"
	"github.com/hookpad/cli/internal/modspace"
	"github.com/hookpad/cli/internal/output"
)

//go:embed content
var contentFS embed.FS

// contentRoot is the directory inside contentFS holding <group>/<file>.md.
const contentRoot = "content"

const lessonExt = ".md"

// curatedGroups is the listing order of the catalog. Groups present in the
// content but absent here are loadable without being listed.
var curatedGroups = []string{
	"useState",
	"useEffect",
	"useRef",
	"useMemo_useCallback",
	"useContext_useReducer",
	"async_patterns",
	"multiple_components",
	"state_management_zustand",
}

// Options configures lesson loaders.
type Options struct {
	// Delay simulates latency before each lazy load completes.
	Delay time.Duration
}

// FrontMatter is the YAML header of a lesson file.
type FrontMatter struct {
	Title   string `yaml:"title"`
	Heading string `yaml:"heading"`
	Order   int    `yaml:"order"`
}

// Lesson is a parsed lesson file.
type Lesson struct {
	FrontMatter
	Body string
}

// Content returns the embedded lesson tree rooted at <group>/<file>.md.
func Content() fs.FS {
	sub, err := fs.Sub(contentFS, contentRoot)
	if err != nil {
		panic(fmt.Sprintf("lessons: embedded content missing: %v", err))
	}
	return sub
}

// Register registers one lazy loader per embedded lesson.
func Register(space *modspace.Space, opts Options) error {
	return RegisterFS(space, Content(), opts)
}

// RegisterFS registers one lazy loader per <group>/<file>.md in fsys.
// Files are registered in lexical path order.
func RegisterFS(space *modspace.Space, fsys fs.FS, opts Options) error {
	count := 0
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != lessonExt {
			return nil
		}

		key, err := keyFromPath(p)
		if err != nil {
			return err
		}
		if err := space.Register(key, newLoader(fsys, p, opts.Delay)); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("registering lessons: %w", err)
	}

	output.Debug("registered lessons", "count", count, "delay", opts.Delay)
	return nil
}

// keyFromPath turns "useState/01_useState.md" into its module key.
func keyFromPath(p string) (modspace.Key, error) {
	return modspace.ParseKey(strings.TrimSuffix(p, lessonExt))
}

func newLoader(fsys fs.FS, p string, delay time.Duration) modspace.Loader {
	return func(ctx context.Context) (*modspace.Module, error) {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading lesson %s: %w", p, err)
		}

		lesson, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing lesson %s: %w", p, err)
		}

		if strings.TrimSpace(lesson.Body) == "" {
			return &modspace.Module{}, nil
		}

		page := modspace.Page{
			Title:   lesson.Title,
			Heading: lesson.Heading,
			Body:    lesson.Body,
		}
		return &modspace.Module{Default: func() modspace.Page { return page }}, nil
	}
}

var frontMatterDelim = []byte("---")

// Parse splits a lesson file into front matter and Markdown body. Files
// without front matter are all body.
func Parse(data []byte) (Lesson, error) {
	var lesson Lesson

	trimmed := bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, frontMatterDelim) {
		lesson.Body = string(trimmed)
		return lesson, nil
	}

	rest := trimmed[len(frontMatterDelim):]
	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	if end < 0 {
		return lesson, fmt.Errorf("unterminated front matter")
	}

	if err := yaml.Unmarshal(rest[:end], &lesson.FrontMatter); err != nil {
		return lesson, fmt.Errorf("front matter: %w", err)
	}

	body := rest[end+1+len(frontMatterDelim):]
	lesson.Body = strings.TrimLeft(string(body), "\r\n")
	return lesson, nil
}

// Catalog returns the curated lesson registry in listing order.
func Catalog() (*catalog.Registry, error) {
	return CatalogFS(Content(), curatedGroups)
}

// CatalogFS builds a registry listing every lesson of the given groups in
// fsys, in lexical file order within each group.
func CatalogFS(fsys fs.FS, groups []string) (*catalog.Registry, error) {
	out := make([]catalog.Group, 0, len(groups))
	for _, g := range groups {
		entries, err := fs.ReadDir(fsys, g)
		if err != nil {
			return nil, fmt.Errorf("reading lesson group %s: %w", g, err)
		}

		var names []string
		for _, e := range entries {
			if e.IsDir() || path.Ext(e.Name()) != lessonExt {
				continue
			}
			names = append(names, strings.TrimSuffix(e.Name(), lessonExt))
		}
		out = append(out, catalog.NewGroup(g, names...))
	}
	return catalog.New(out...), nil
}

// CuratedGroups returns the listed group names in order.
func CuratedGroups() []string {
	return append([]string(nil), curatedGroups...)
}
