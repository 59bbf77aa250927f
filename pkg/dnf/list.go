package dnf

import (
	"context"

	"github.com/dnfbridge/dnfbridge/pkg/catalog"
	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// repoquery runs a dnf repoquery with the session's flags and the fixed
// query format, returning records sorted by identity.
func (s *Session) repoquery(ctx context.Context, extra ...string) ([]engine.PackageRecord, error) {
	args := append(s.baseArgs(), "repoquery", "--queryformat", queryFormat)
	args = append(args, extra...)

	res, err := s.run.Run(ctx, dnfCommand, args...)
	if err != nil {
		if line, ok := findErrorLine(res.Stderr); ok {
			return nil, classifyErrorLine(line)
		}
		return nil, engine.NewEngineError("package query failed", err)
	}
	return catalog.Sorted(parseQueryLines(res.Stdout)), nil
}

// ListInstalled returns the installed package set.
func (s *Session) ListInstalled(ctx context.Context) ([]engine.PackageRecord, error) {
	return s.repoquery(ctx, "--installed")
}

// ListAvailable returns the newest available record per package.
func (s *Session) ListAvailable(ctx context.Context) ([]engine.PackageRecord, error) {
	return s.repoquery(ctx, "--available", "--latest-limit", "1")
}

// ListUpdates returns the records that would upgrade installed packages.
func (s *Session) ListUpdates(ctx context.Context) ([]engine.PackageRecord, error) {
	return s.repoquery(ctx, "--upgrades")
}

// ListRepos returns the identifiers of the repositories visible to this
// session, honoring its enable/disable filter.
func (s *Session) ListRepos(ctx context.Context) ([]string, error) {
	args := append(s.baseArgs(), "repolist")
	res, err := s.run.Run(ctx, dnfCommand, args...)
	if err != nil {
		if line, ok := findErrorLine(res.Stderr); ok {
			return nil, classifyErrorLine(line)
		}
		return nil, engine.NewEngineError("repository query failed", err)
	}
	return parseRepoIDs(res.Stdout), nil
}
