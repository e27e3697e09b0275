package dist

import (
	"context"
	"fmt"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/log"
)

// ResolveVersion resolves the version intent to a concrete version and
// enforces the constraint against the result.
func ResolveVersion(ctx context.Context, resolver mvnup.VersionResolver, intent mvnup.VersionIntent) (string, error) {
	resolvedVersion, err := resolver.ResolveVersion(ctx, intent.Want, intent.Constraint)
	if err != nil {
		return "", fmt.Errorf("failed to resolve version %q: %w", intent.Want, err)
	}

	log.FromContext(ctx).WithFields("want", intent.Want, "resolved", resolvedVersion).Trace("resolved version")

	if intent.Constraint != "" && internal.IsSemver(resolvedVersion) {
		satisfied, err := internal.FilterToLatestVersion([]string{resolvedVersion}, intent.Constraint)
		if err != nil {
			return "", err
		}
		if satisfied == "" {
			return "", fmt.Errorf("version %q does not satisfy constraint %q", resolvedVersion, intent.Constraint)
		}
	}

	return resolvedVersion, nil
}
