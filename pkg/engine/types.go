// Package engine defines the desired-state convergence contract for package
// operations: domain types, the session interface to the external package
// engine, and the orchestrator that drives a host toward a target state.
package engine

import (
	"encoding/json"
	"fmt"
)

// State is the desired package state for an invocation.
type State string

const (
	// StatePresent ensures the named packages or groups are installed.
	StatePresent State = "present"
	// StateAbsent ensures the named packages or groups are removed.
	StateAbsent State = "absent"
	// StateLatest ensures the named packages or groups are installed at the
	// newest available version, installing them fresh when missing.
	StateLatest State = "latest"
)

// Valid reports whether s is a recognized target state.
func (s State) Valid() bool {
	switch s {
	case StatePresent, StateAbsent, StateLatest:
		return true
	}
	return false
}

// PackageRecord identifies one resolved package.
type PackageRecord struct {
	Name    string `json:"name"`
	Epoch   string `json:"epoch"`
	Version string `json:"version"`
	Release string `json:"release"`
	Arch    string `json:"arch"`
	Repo    string `json:"repo"`
}

// NEVRA returns the composite identity string name-epoch:version-release.arch.
func (r PackageRecord) NEVRA() string {
	epoch := r.Epoch
	if epoch == "" {
		epoch = "0"
	}
	return fmt.Sprintf("%s-%s:%s-%s.%s", r.Name, epoch, r.Version, r.Release, r.Arch)
}

// MarshalJSON includes the composite identity alongside the record fields.
func (r PackageRecord) MarshalJSON() ([]byte, error) {
	type alias PackageRecord
	return json.Marshal(struct {
		alias
		NEVRA string `json:"nevra"`
	}{alias(r), r.NEVRA()})
}

// SummaryAllUpgraded is the single summary marker reported for a
// full-system upgrade instead of a per-package enumeration.
const SummaryAllUpgraded = "all packages upgraded"

// OperationResult describes exactly what the engine committed during one
// invocation. An unchanged system yields an empty result with Changed false.
type OperationResult struct {
	Installed []PackageRecord `json:"installed"`
	Removed   []PackageRecord `json:"removed"`
	Upgraded  []PackageRecord `json:"upgraded"`

	// Summary is set instead of the per-package lists for the wildcard
	// full-system upgrade.
	Summary string `json:"summary,omitempty"`

	// Changed reports whether the committed transaction mutated the host.
	Changed bool `json:"changed"`
}

// Transaction is the engine's resolved set of units to add, upgrade, or
// remove, known only after dependency resolution.
type Transaction struct {
	Install []PackageRecord
	Upgrade []PackageRecord
	Remove  []PackageRecord
}

// Empty reports whether resolution produced nothing to do.
func (t *Transaction) Empty() bool {
	return t == nil || len(t.Install)+len(t.Upgrade)+len(t.Remove) == 0
}
