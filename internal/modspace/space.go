package modspace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyRegistered is returned when a key is registered twice.
var ErrAlreadyRegistered = errors.New("module already registered")

// MatchMode selects how a navigation target is matched against keys.
type MatchMode string

const (
	// MatchExact requires the key to equal the (group, file) pair.
	MatchExact MatchMode = "exact"

	// MatchSuffix accepts the first key, in registration order, whose string
	// form ends with "<group>/<file>".
	MatchSuffix MatchMode = "suffix"
)

// IsValid checks if the match mode is known.
func (m MatchMode) IsValid() bool {
	switch m {
	case MatchExact, MatchSuffix:
		return true
	default:
		return false
	}
}

// ParseMatchMode parses a match mode. An empty string means MatchExact.
func ParseMatchMode(s string) (MatchMode, error) {
	if s == "" {
		return MatchExact, nil
	}
	m := MatchMode(strings.ToLower(s))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown match mode %q; valid modes: exact, suffix", s)
	}
	return m, nil
}

// Space maps keys to lazy loaders and remembers registration order.
type Space struct {
	keys    []Key
	loaders map[Key]Loader
}

// New creates an empty module space.
func New() *Space {
	return &Space{loaders: make(map[Key]Loader)}
}

// Register adds a loader under key. Registering the same key twice returns
// ErrAlreadyRegistered.
func (s *Space) Register(key Key, loader Loader) error {
	if key.Group == "" || key.File == "" {
		return fmt.Errorf("invalid module key %q", key.String())
	}
	if loader == nil {
		return fmt.Errorf("module %s: nil loader", key)
	}
	if _, exists := s.loaders[key]; exists {
		return fmt.Errorf("module %s: %w", key, ErrAlreadyRegistered)
	}
	s.loaders[key] = loader
	s.keys = append(s.keys, key)
	return nil
}

// MustRegister is like Register but panics on error. Intended for
// registration code that runs at startup.
func (s *Space) MustRegister(key Key, loader Loader) {
	if err := s.Register(key, loader); err != nil {
		panic(err)
	}
}

// Keys returns all keys in registration order.
func (s *Space) Keys() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of registered modules.
func (s *Space) Len() int {
	return len(s.keys)
}

// Has reports whether key is registered.
func (s *Space) Has(key Key) bool {
	_, ok := s.loaders[key]
	return ok
}

// Lookup finds the loader registered for exactly (group, file).
func (s *Space) Lookup(group, file string) (Key, Loader, bool) {
	key := Key{Group: group, File: file}
	loader, ok := s.loaders[key]
	if !ok {
		return Key{}, nil, false
	}
	return key, loader, true
}

// LookupSuffix returns the first key, in registration order, whose string
// form ends with "<group>/<file>". Keys from different groups that share a
// suffix are ambiguous; the earliest registration wins.
func (s *Space) LookupSuffix(group, file string) (Key, Loader, bool) {
	suffix := group + "/" + file
	for _, key := range s.keys {
		if strings.HasSuffix(key.String(), suffix) {
			return key, s.loaders[key], true
		}
	}
	return Key{}, nil, false
}

// Find dispatches to Lookup or LookupSuffix according to mode.
func (s *Space) Find(mode MatchMode, group, file string) (Key, Loader, bool) {
	if mode == MatchSuffix {
		return s.LookupSuffix(group, file)
	}
	return s.Lookup(group, file)
}
