// Package catalog provides the curated lesson listing used for navigation.
//
// The catalog is display data only. The viewer resolves targets against the
// module space and never consults the catalog.
package catalog

import "strings"

// Descriptor describes one listed lesson.
type Descriptor struct {
	// Name is the human-facing label and the file identifier, e.g. "01_useState".
	Name string `json:"name" yaml:"name"`

	// Path is the relative locator "<group>/<name>".
	Path string `json:"path" yaml:"path"`
}

// Group is a named, ordered collection of descriptors.
type Group struct {
	Name  string       `json:"name" yaml:"name"`
	Units []Descriptor `json:"units" yaml:"units"`
}

// Registry is the read-only, ordered catalog of groups.
type Registry struct {
	groups []Group
}

// New creates a registry from groups. Insertion order is display order.
// The input is copied; later changes to it are not observed.
func New(groups ...Group) *Registry {
	r := &Registry{groups: make([]Group, 0, len(groups))}
	for _, g := range groups {
		units := make([]Descriptor, len(g.Units))
		copy(units, g.Units)
		r.groups = append(r.groups, Group{Name: g.Name, Units: units})
	}
	return r
}

// NewGroup builds a group whose descriptors have Path "<group>/<name>".
func NewGroup(name string, units ...string) Group {
	g := Group{Name: name, Units: make([]Descriptor, 0, len(units))}
	for _, u := range units {
		g.Units = append(g.Units, Descriptor{Name: u, Path: name + "/" + u})
	}
	return g
}

// ListGroups returns every group in display order.
func (r *Registry) ListGroups() []Group {
	out := make([]Group, len(r.groups))
	for i, g := range r.groups {
		units := make([]Descriptor, len(g.Units))
		copy(units, g.Units)
		out[i] = Group{Name: g.Name, Units: units}
	}
	return out
}

// Reversed returns the groups in reverse display order, as shown on the
// home page. Units keep their order.
func (r *Registry) Reversed() []Group {
	groups := r.ListGroups()
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return groups
}

// Lookup returns the descriptor listed as (group, name).
func (r *Registry) Lookup(group, name string) (Descriptor, bool) {
	for _, g := range r.groups {
		if g.Name != group {
			continue
		}
		for _, d := range g.Units {
			if d.Name == name {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}

// Len returns the total number of listed descriptors.
func (r *Registry) Len() int {
	n := 0
	for _, g := range r.groups {
		n += len(g.Units)
	}
	return n
}

// Link returns the navigation path for a descriptor.
func Link(d Descriptor) string {
	return "/topic/" + d.Path
}

// Group returns the group part of the descriptor path.
func (d Descriptor) Group() string {
	group, _, _ := strings.Cut(d.Path, "/")
	return group
}
