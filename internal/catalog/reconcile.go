package catalog

import (
	"github.com/hookpad/cli/internal/modspace"
)

// Drift lists the differences between the catalog and the module space.
type Drift struct {
	// Unloadable are listed descriptors with no loadable module.
	Unloadable []Descriptor `json:"unloadable,omitempty" yaml:"unloadable,omitempty"`

	// Unlisted are loadable modules missing from the catalog.
	Unlisted []modspace.Key `json:"unlisted,omitempty" yaml:"unlisted,omitempty"`
}

// Empty reports whether catalog and module space agree.
func (d Drift) Empty() bool {
	return len(d.Unloadable) == 0 && len(d.Unlisted) == 0
}

// Reconcile compares every descriptor in reg with the keys in space.
// Descriptors are checked in display order and unlisted keys in
// registration order, so the report is deterministic.
func Reconcile(reg *Registry, space *modspace.Space) Drift {
	var drift Drift
	listed := make(map[modspace.Key]struct{}, reg.Len())

	for _, g := range reg.groups {
		for _, d := range g.Units {
			key := modspace.Key{Group: g.Name, File: d.Name}
			listed[key] = struct{}{}
			if !space.Has(key) {
				drift.Unloadable = append(drift.Unloadable, d)
			}
		}
	}

	for _, key := range space.Keys() {
		if _, ok := listed[key]; !ok {
			drift.Unlisted = append(drift.Unlisted, key)
		}
	}

	return drift
}
