package internal

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mvnup/mvnup/internal/log"
)

const snapshotSuffix = "-SNAPSHOT"

// IsSemver indicates if the given string can be interpreted as a semver-ish
// version (maven versions such as "3.9.9" and "4.0.0-rc-4" qualify).
func IsSemver(version string) bool {
	_, err := semver.NewVersion(version)
	return err == nil
}

// IsSnapshotVersion indicates if the given version points at the snapshot
// repository rather than a released distribution.
func IsSnapshotVersion(version string) bool {
	return strings.HasSuffix(version, snapshotSuffix)
}

// FilterToLatestVersion returns the highest version from the given list that
// satisfies the constraint (or the highest overall when the constraint is
// empty). Entries that do not parse as versions are skipped.
func FilterToLatestVersion(versions []string, versionConstraint string) (string, error) {
	var constraint *semver.Constraints
	if versionConstraint != "" {
		c, err := semver.NewConstraint(versionConstraint)
		if err != nil {
			return "", err
		}
		constraint = c
	}

	var latest *semver.Version
	var latestRaw string
	for _, raw := range versions {
		version, err := semver.NewVersion(raw)
		if err != nil {
			log.WithFields("version", raw).Trace("skipping unparsable version")
			continue
		}
		if constraint != nil && !constraint.Check(version) {
			continue
		}
		if latest == nil || version.GreaterThan(latest) {
			latest = version
			latestRaw = raw
		}
	}

	return latestRaw, nil
}

// SortVersions returns the parseable versions from the given list sorted in
// ascending order (unparsable entries are dropped).
func SortVersions(versions []string) []string {
	type pair struct {
		raw    string
		parsed *semver.Version
	}

	var pairs []pair
	for _, raw := range versions {
		version, err := semver.NewVersion(raw)
		if err != nil {
			log.WithFields("version", raw).Trace("skipping unparsable version")
			continue
		}
		pairs = append(pairs, pair{raw: raw, parsed: version})
	}

	sort.Slice(pairs, func(a, b int) bool {
		return pairs[a].parsed.LessThan(pairs[b].parsed)
	})

	sorted := make([]string, len(pairs))
	for idx, p := range pairs {
		sorted[idx] = p.raw
	}
	return sorted
}
