package engine

import "context"

// RepoFilter enables or disables repositories for the duration of one
// invocation. The disable set is applied before the enable set, so a
// repository listed in both ends up enabled. Never persisted.
type RepoFilter struct {
	Enable  []string
	Disable []string
}

// Options configures an engine session. Signature checking is on unless
// DisableGPGCheck is set; confirmation prompts are always suppressed.
type Options struct {
	// ConfFile is an optional engine configuration file path. A supplied
	// path that does not exist is a configuration error raised before any
	// session is opened.
	ConfFile string

	// Repos filters repositories for this invocation only.
	Repos RepoFilter

	// DisableGPGCheck turns off signature verification of packages.
	DisableGPGCheck bool

	// InstallRoot optionally targets an alternate root filesystem.
	InstallRoot string
}

// Catalog is an immutable snapshot of the installed and available package
// sets, taken once per invocation. Lookups never mutate the snapshot.
type Catalog interface {
	// Installed returns the installed records exactly matching name.
	Installed(name string) []PackageRecord

	// Available returns the available records exactly matching name.
	Available(name string) []PackageRecord

	// ResolveInstalled matches a specifier, including version-qualified
	// forms, against the installed set.
	ResolveInstalled(spec Spec) ([]PackageRecord, bool)

	// ResolveAvailable matches a specifier against the available set.
	ResolveAvailable(spec Spec) ([]PackageRecord, bool)
}

// Queryer answers the informational list queries of the invocation contract.
type Queryer interface {
	ListInstalled(ctx context.Context) ([]PackageRecord, error)
	ListAvailable(ctx context.Context) ([]PackageRecord, error)
	ListUpdates(ctx context.Context) ([]PackageRecord, error)
	ListRepos(ctx context.Context) ([]string, error)
}

// Session is a scoped handle on the external package engine. At most one
// session is active per invocation and it must be closed on every exit
// path. Mark methods only accumulate requested changes; nothing touches
// the host until Commit. Dependency resolution, artifact download, GPG
// verification, and transaction atomicity are the engine's concern.
type Session interface {
	Queryer

	// Catalog returns the per-invocation snapshot of installed and
	// available packages, honoring the session's repository filter.
	Catalog(ctx context.Context) (Catalog, error)

	// Install marks a package specifier for installation.
	Install(spec string) error

	// Remove marks a package specifier for removal.
	Remove(spec string) error

	// Upgrade marks an installed package for upgrade.
	Upgrade(spec string) error

	// UpgradeAll marks every installed package for upgrade.
	UpgradeAll() error

	// GroupInstall marks a group for a default-profile install.
	GroupInstall(name string) error

	// GroupRemove marks a group for removal.
	GroupRemove(name string) error

	// GroupUpgrade marks a group for upgrade.
	GroupUpgrade(name string) error

	// Resolve computes the final transaction from the accumulated marks
	// without applying it.
	Resolve(ctx context.Context) (*Transaction, error)

	// Commit downloads needed artifacts and applies the resolved
	// transaction to the host.
	Commit(ctx context.Context) error

	// Close releases the session's underlying resources. Idempotent.
	Close() error
}
