package engine

import "context"

// Converge drives the engine session toward the desired state for the given
// specifiers and reports exactly what was committed.
//
// Every plain specifier is checked against the catalog snapshot before any
// mark reaches the engine, so a missing unit aborts the whole invocation
// with nothing committed. Group and artifact targets expand only during
// resolution, so their reported outcome is re-derived from the resolved
// transaction and merged into the records gathered for plain specifiers. A
// full-system upgrade reports a single summary marker, never a per-package
// enumeration. An unchanged system returns an empty successful result and
// skips the commit entirely.
func Converge(ctx context.Context, sess Session, state State, specs []Spec) (*OperationResult, error) {
	if !state.Valid() {
		return nil, NewConfigurationError("invalid target state: "+string(state), nil)
	}
	if len(specs) == 0 {
		return nil, NewConfigurationError("no package specifier given", nil)
	}

	cat, err := sess.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	res := &OperationResult{}
	// Group and artifact targets expand during resolution, so their share
	// of the reported lists comes from the resolved transaction, merged
	// into the per-spec records gathered for plain specifiers.
	rederive := false

	for _, sp := range specs {
		if sp.Kind == SpecWildcard && state != StateLatest {
			return nil, NewConfigurationError("wildcard specifier is only valid with state latest", nil)
		}

		switch state {
		case StatePresent:
			switch sp.Kind {
			case SpecGroup:
				rederive = true
				if err := sess.GroupInstall(sp.GroupName()); err != nil {
					return nil, err
				}
			case SpecURL, SpecFile:
				rederive = true
				if err := sess.Install(sp.Raw); err != nil {
					return nil, err
				}
			default:
				rec, ok := resolveForInstall(cat, sp)
				if !ok {
					return nil, NewNotFoundError(sp.Raw, "no package matches specifier")
				}
				res.Installed = append(res.Installed, rec)
				if err := sess.Install(sp.Raw); err != nil {
					return nil, err
				}
			}

		case StateAbsent:
			switch sp.Kind {
			case SpecGroup:
				rederive = true
				if err := sess.GroupRemove(sp.GroupName()); err != nil {
					return nil, err
				}
			default:
				recs, ok := cat.ResolveInstalled(sp)
				if !ok {
					// Tolerated absence: removing a unit that is not
					// installed is a silent no-op.
					continue
				}
				res.Removed = append(res.Removed, recs...)
				if err := sess.Remove(sp.Raw); err != nil {
					return nil, err
				}
			}

		case StateLatest:
			switch sp.Kind {
			case SpecWildcard:
				res.Summary = SummaryAllUpgraded
				if err := sess.UpgradeAll(); err != nil {
					return nil, err
				}
			case SpecGroup:
				rederive = true
				if err := sess.GroupUpgrade(sp.GroupName()); err != nil {
					return nil, err
				}
			case SpecURL, SpecFile:
				rederive = true
				if err := sess.Install(sp.Raw); err != nil {
					return nil, err
				}
			default:
				installed, installedOK := cat.ResolveInstalled(sp)
				avail, availOK := cat.ResolveAvailable(sp)
				switch {
				case !installedOK && availOK:
					// Not installed yet: a fresh install.
					res.Installed = append(res.Installed, avail[0])
					if err := sess.Install(sp.Raw); err != nil {
						return nil, err
					}
				case installedOK:
					rec := installed[0]
					if availOK {
						rec = avail[0]
					}
					res.Upgraded = append(res.Upgraded, rec)
					if err := sess.Upgrade(sp.Raw); err != nil {
						return nil, err
					}
				default:
					return nil, NewNotFoundError(sp.Raw, "no package matches specifier")
				}
			}
		}
	}

	tx, err := sess.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	if rederive {
		res.Installed = mergeRecords(res.Installed, tx.Install)
		res.Upgraded = mergeRecords(res.Upgraded, tx.Upgrade)
		res.Removed = mergeRecords(res.Removed, tx.Remove)
	}

	if tx.Empty() {
		return res, nil
	}
	if err := sess.Commit(ctx); err != nil {
		return nil, err
	}
	res.Changed = true
	return res, nil
}

// mergeRecords appends resolved records that are not already reported,
// keyed by composite identity, preserving the per-spec records gathered
// before resolution.
func mergeRecords(reported, resolved []PackageRecord) []PackageRecord {
	seen := make(map[string]struct{}, len(reported))
	for _, r := range reported {
		seen[r.NEVRA()] = struct{}{}
	}
	for _, r := range resolved {
		if _, ok := seen[r.NEVRA()]; ok {
			continue
		}
		seen[r.NEVRA()] = struct{}{}
		reported = append(reported, r)
	}
	return reported
}

// resolveForInstall finds the record to report for a present-state install:
// the available record when the repositories still carry the unit, falling
// back to the installed record for units whose source repository is gone.
func resolveForInstall(cat Catalog, sp Spec) (PackageRecord, bool) {
	if recs, ok := cat.ResolveAvailable(sp); ok {
		return recs[0], true
	}
	if recs, ok := cat.ResolveInstalled(sp); ok {
		return recs[0], true
	}
	return PackageRecord{}, false
}
