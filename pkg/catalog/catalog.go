// Package catalog holds an immutable snapshot of the installed and
// available package sets, taken once per invocation. Every specifier is
// resolved against the same snapshot, so lookup results cannot depend on
// the order specifiers are processed in.
package catalog

import (
	"sort"
	"strings"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// Snapshot implements engine.Catalog over fixed record sets.
type Snapshot struct {
	installed map[string][]engine.PackageRecord
	available map[string][]engine.PackageRecord
}

// New builds a snapshot from the installed and available record sets.
func New(installed, available []engine.PackageRecord) *Snapshot {
	return &Snapshot{
		installed: index(installed),
		available: index(available),
	}
}

func index(recs []engine.PackageRecord) map[string][]engine.PackageRecord {
	m := make(map[string][]engine.PackageRecord, len(recs))
	for _, r := range recs {
		m[r.Name] = append(m[r.Name], r)
	}
	return m
}

// Installed returns the installed records exactly matching name.
func (s *Snapshot) Installed(name string) []engine.PackageRecord {
	return s.installed[name]
}

// Available returns the available records exactly matching name.
func (s *Snapshot) Available(name string) []engine.PackageRecord {
	return s.available[name]
}

// ResolveInstalled matches a specifier against the installed set.
func (s *Snapshot) ResolveInstalled(spec engine.Spec) ([]engine.PackageRecord, bool) {
	return resolve(s.installed, spec.Raw)
}

// ResolveAvailable matches a specifier against the available set.
func (s *Snapshot) ResolveAvailable(spec engine.Spec) ([]engine.PackageRecord, bool) {
	return resolve(s.available, spec.Raw)
}

// resolve matches a specifier against an indexed record set. The whole
// specifier is tried as a name first; otherwise it is split at each dash
// from the right into a name plus version qualifier, so name-1.0 matches
// records named "name" with version 1.0 or 1.0.x, but not 1.05.
func resolve(m map[string][]engine.PackageRecord, raw string) ([]engine.PackageRecord, bool) {
	if recs, ok := m[raw]; ok {
		return recs, true
	}
	for i := strings.LastIndex(raw, "-"); i > 0; i = strings.LastIndex(raw[:i], "-") {
		name, qual := raw[:i], raw[i+1:]
		recs, ok := m[name]
		if !ok {
			continue
		}
		var matched []engine.PackageRecord
		for _, r := range recs {
			if qualifierMatch(r.Version+"-"+r.Release, qual) {
				matched = append(matched, r)
			}
		}
		if len(matched) > 0 {
			return matched, true
		}
	}
	return nil, false
}

// qualifierMatch reports whether a version qualifier matches a
// version-release string. The qualifier must cover whole segments: the
// match ends at a '.' or '-' boundary, so "2.4" matches "2.4.6-45.el7"
// but not "2.40.1-1.el9".
func qualifierMatch(vr, qual string) bool {
	if !strings.HasPrefix(vr, qual) {
		return false
	}
	if len(vr) == len(qual) {
		return true
	}
	switch vr[len(qual)] {
	case '.', '-':
		return true
	}
	return false
}

// Sorted returns records ordered by their composite identity string.
func Sorted(recs []engine.PackageRecord) []engine.PackageRecord {
	out := make([]engine.PackageRecord, len(recs))
	copy(out, recs)
	sort.Slice(out, func(i, j int) bool {
		return out[i].NEVRA() < out[j].NEVRA()
	})
	return out
}
