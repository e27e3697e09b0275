package mvnup

import "context"

// Distribution is a source of Apache Maven releases that can both report
// available versions and materialize a specific version on disk.
type Distribution interface {
	// ID returns a stable identifier derived from the distribution configuration.
	ID() string
	Installer
	VersionResolver
}

type Installer interface {
	// InstallTo installs the given version into destDir, returning the
	// resulting maven home directory.
	InstallTo(ctx context.Context, version, destDir string) (string, error)
}

type VersionResolver interface {
	// ResolveVersion takes a version expression (e.g. "3.9.9", "latest") and
	// resolves it to a concrete version, honoring the given constraint.
	ResolveVersion(ctx context.Context, want, constraint string) (string, error)

	// AvailableVersions returns all versions published by this source.
	AvailableVersions(ctx context.Context) ([]string, error)
}

// VersionIntent captures what the user asked for: a version expression and an
// optional semver constraint to apply when resolving it.
type VersionIntent struct {
	Want       string
	Constraint string
}
