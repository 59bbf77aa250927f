package module

import (
	"github.com/google/uuid"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// Results maps outcome categories to the resolved records the engine
// committed. Lists are always present, possibly empty.
type Results struct {
	Installed []engine.PackageRecord `json:"installed"`
	Removed   []engine.PackageRecord `json:"removed"`
	Upgraded  []engine.PackageRecord `json:"upgraded"`

	// Summary replaces per-package enumeration for a full-system upgrade.
	Summary string `json:"summary,omitempty"`
}

// Response is the structured result of one invocation.
type Response struct {
	InvocationID string `json:"invocation_id"`
	RC           int    `json:"rc"`
	Changed      bool   `json:"changed"`
	Msg          string `json:"msg,omitempty"`

	// Results is set for convergence invocations.
	Results *Results `json:"results,omitempty"`

	// Packages is set for list queries over packages, sorted by identity.
	Packages []engine.PackageRecord `json:"packages,omitempty"`

	// Repos is set for the repository list query.
	Repos []string `json:"repos,omitempty"`
}

// Failure builds the response for an invocation that failed before
// dispatch, minting an invocation id so the controller can still
// correlate the failure.
func Failure(err error) *Response {
	return failure(uuid.NewString(), err)
}

func failure(id string, err error) *Response {
	return &Response{
		InvocationID: id,
		RC:           1,
		Msg:          err.Error(),
	}
}

func records(recs []engine.PackageRecord) []engine.PackageRecord {
	if recs == nil {
		return []engine.PackageRecord{}
	}
	return recs
}
