// Package dnf drives the system dnf binary as the external package engine.
// A Session accumulates requested changes, resolves them into a transaction
// with a declined dry run, and commits them with a second, confirmed run.
// Dependency resolution, metadata, GPG verification, downloads, and the
// package-database lock all stay dnf's responsibility.
package dnf

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"

	"github.com/dnfbridge/dnfbridge/pkg/catalog"
	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

const dnfCommand = "dnf"

type markVerb string

const (
	verbInstall      markVerb = "install"
	verbRemove       markVerb = "remove"
	verbUpgrade      markVerb = "upgrade"
	verbUpgradeAll   markVerb = "upgrade-all"
	verbGroupInstall markVerb = "group-install"
	verbGroupRemove  markVerb = "group-remove"
	verbGroupUpgrade markVerb = "group-upgrade"
)

func (v markVerb) commandArgs() []string {
	switch v {
	case verbInstall:
		return []string{"install"}
	case verbRemove:
		return []string{"remove"}
	case verbUpgrade, verbUpgradeAll:
		return []string{"upgrade"}
	case verbGroupInstall:
		return []string{"group", "install"}
	case verbGroupRemove:
		return []string{"group", "remove"}
	case verbGroupUpgrade:
		return []string{"group", "upgrade"}
	}
	return nil
}

type mark struct {
	verb markVerb
	arg  string
}

// Session is a scoped handle on the dnf engine, implementing
// engine.Session. Not safe for concurrent use; one invocation owns it.
type Session struct {
	opts   engine.Options
	conf   *ini.File
	run    Runner
	log    zerolog.Logger
	marks  []mark
	closed bool
}

// Open validates the session configuration and returns a live handle.
// No engine command runs yet; the catalog snapshot and transaction work
// happen against the returned session.
func Open(ctx context.Context, opts engine.Options, logger zerolog.Logger) (*Session, error) {
	conf, err := loadConf(opts.ConfFile)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(dnfCommand); err != nil {
		return nil, engine.NewEngineError("dnf binary not found on host", err)
	}
	return &Session{
		opts: opts,
		conf: conf,
		run:  execRunner{log: logger},
		log:  logger,
	}, nil
}

// baseArgs builds the flags shared by every command in this session.
// Disable flags come before enable flags, so a repository named in both
// lists ends up enabled. Confirmation prompts are always suppressed by the
// resolve/commit flags, never interactively.
func (s *Session) baseArgs() []string {
	var args []string
	if s.opts.ConfFile != "" {
		args = append(args, "--config", s.opts.ConfFile)
	}
	for _, id := range s.opts.Repos.Disable {
		args = append(args, "--disablerepo="+id)
	}
	for _, id := range s.opts.Repos.Enable {
		args = append(args, "--enablerepo="+id)
	}
	if !s.gpgCheck() {
		args = append(args, "--nogpgcheck")
	}
	if s.opts.InstallRoot != "" {
		args = append(args, "--installroot="+s.opts.InstallRoot)
	}
	return args
}

func (s *Session) gpgCheck() bool {
	if s.opts.DisableGPGCheck {
		return false
	}
	if v, ok := confGPGCheck(s.conf); ok {
		return v
	}
	return true
}

// Catalog snapshots the installed and available sets once; the orchestrator
// resolves every specifier against this same snapshot.
func (s *Session) Catalog(ctx context.Context) (engine.Catalog, error) {
	installed, err := s.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(installed, available), nil
}

func (s *Session) addMark(verb markVerb, arg string) error {
	if s.closed {
		return engine.NewEngineError("session is closed", nil)
	}
	s.marks = append(s.marks, mark{verb: verb, arg: arg})
	return nil
}

// Install marks a package specifier for installation.
func (s *Session) Install(spec string) error {
	return s.addMark(verbInstall, spec)
}

// Remove marks a package specifier for removal.
func (s *Session) Remove(spec string) error {
	return s.addMark(verbRemove, spec)
}

// Upgrade marks an installed package for upgrade.
func (s *Session) Upgrade(spec string) error {
	return s.addMark(verbUpgrade, spec)
}

// UpgradeAll marks every installed package for upgrade.
func (s *Session) UpgradeAll() error {
	return s.addMark(verbUpgradeAll, "")
}

// GroupInstall marks a group for a default-profile install.
func (s *Session) GroupInstall(name string) error {
	if name == "" {
		return engine.NewConfigurationError("empty group name", nil)
	}
	return s.addMark(verbGroupInstall, name)
}

// GroupRemove marks a group for removal.
func (s *Session) GroupRemove(name string) error {
	if name == "" {
		return engine.NewConfigurationError("empty group name", nil)
	}
	return s.addMark(verbGroupRemove, name)
}

// GroupUpgrade marks a group for upgrade.
func (s *Session) GroupUpgrade(name string) error {
	if name == "" {
		return engine.NewConfigurationError("empty group name", nil)
	}
	return s.addMark(verbGroupUpgrade, name)
}

type verbGroup struct {
	verb markVerb
	args []string
}

// verbGroups folds the accumulated marks into one command per verb,
// preserving first-appearance order.
func (s *Session) verbGroups() []verbGroup {
	var groups []verbGroup
	byVerb := map[markVerb]int{}
	for _, m := range s.marks {
		i, ok := byVerb[m.verb]
		if !ok {
			i = len(groups)
			byVerb[m.verb] = i
			groups = append(groups, verbGroup{verb: m.verb})
		}
		if m.arg != "" {
			groups[i].args = append(groups[i].args, m.arg)
		}
	}
	return groups
}

// Resolve runs the accumulated verbs with --assumeno and parses the
// transaction tables dnf prints before declining. dnf exits non-zero when
// a transaction is declined; that is not a failure here.
func (s *Session) Resolve(ctx context.Context) (*engine.Transaction, error) {
	if s.closed {
		return nil, engine.NewEngineError("session is closed", nil)
	}
	tx := &engine.Transaction{}
	for _, g := range s.verbGroups() {
		args := append(s.baseArgs(), g.verb.commandArgs()...)
		args = append(args, "--assumeno")
		args = append(args, g.args...)

		res, err := s.run.Run(ctx, dnfCommand, args...)
		if line, ok := findErrorLine(res.Stderr); ok {
			return nil, classifyErrorLine(line)
		}
		part := parseTransactionTable(res.Stdout)
		if err != nil && part.Empty() && !declined(res.Stdout) {
			return nil, engine.NewEngineError("transaction resolution failed", err)
		}
		tx.Install = append(tx.Install, part.Install...)
		tx.Upgrade = append(tx.Upgrade, part.Upgrade...)
		tx.Remove = append(tx.Remove, part.Remove...)
	}
	s.log.Debug().
		Int("install", len(tx.Install)).
		Int("upgrade", len(tx.Upgrade)).
		Int("remove", len(tx.Remove)).
		Msg("transaction resolved")
	return tx, nil
}

func declined(stdout string) bool {
	return strings.Contains(stdout, "Operation aborted") ||
		strings.Contains(stdout, "Nothing to do")
}

// Commit re-runs the accumulated verbs confirmed, letting dnf download
// artifacts and apply the transaction atomically.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return engine.NewEngineError("session is closed", nil)
	}
	for _, g := range s.verbGroups() {
		args := append(s.baseArgs(), g.verb.commandArgs()...)
		args = append(args, "--assumeyes")
		args = append(args, g.args...)

		res, err := s.run.Run(ctx, dnfCommand, args...)
		if err != nil {
			if line, ok := findErrorLine(res.Stderr); ok {
				return classifyErrorLine(line)
			}
			return engine.NewEngineError("transaction failed", err)
		}
	}
	return nil
}

// Close releases the session. The dnf process holds the package-database
// lock only while a command runs, so there is nothing to unlock here;
// closing just fences further use of the handle. Idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.marks = nil
	s.log.Debug().Msg("engine session closed")
	return nil
}
