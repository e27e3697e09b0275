package githubrelease

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/log"
)

const latestVersion = "latest"

const (
	DefaultRepo      = "apache/maven"
	defaultTagPrefix = "maven-"
)

var _ mvnup.VersionResolver = (*VersionResolver)(nil)

type VersionResolutionParameters struct {
	Repo      string `json:"repo" yaml:"repo" mapstructure:"repo"`
	TagPrefix string `json:"tag-prefix" yaml:"tag-prefix" mapstructure:"tag-prefix"`
}

type VersionResolver struct {
	config               VersionResolutionParameters
	latestReleaseFetcher func(ctx context.Context, user, repo string) (*ghRelease, error)
	releasesFetcher      func(ctx context.Context, user, repo string) ([]ghRelease, error)
}

func NewVersionResolver(cfg VersionResolutionParameters) *VersionResolver {
	if cfg.Repo == "" {
		cfg.Repo = DefaultRepo
	}
	if cfg.TagPrefix == "" {
		cfg.TagPrefix = defaultTagPrefix
	}
	return &VersionResolver{
		config:               cfg,
		latestReleaseFetcher: fetchLatestReleaseFromGithubFacade,
		releasesFetcher:      fetchAllReleasesFromGithubV4API,
	}
}

func (v VersionResolver) ResolveVersion(ctx context.Context, want, constraint string) (string, error) {
	log.FromContext(ctx).WithFields("repo", v.config.Repo, "want", want).Trace("resolving version from github releases")

	switch {
	case internal.IsSnapshotVersion(want), internal.IsSemver(want):
		return want, nil
	case want == latestVersion:
		return v.findLatestVersion(ctx, constraint)
	}

	return want, nil
}

// AvailableVersions lists all published (non-draft) release tags, normalized
// to bare versions.
func (v VersionResolver) AvailableVersions(ctx context.Context) ([]string, error) {
	user, repo, err := v.userAndRepo()
	if err != nil {
		return nil, err
	}

	releases, err := v.releasesFetcher(ctx, user, repo)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch releases for %q: %w", v.config.Repo, err)
	}

	var versions []string
	for _, release := range releases {
		if release.IsDraft != nil && *release.IsDraft {
			continue
		}
		version := v.normalizeTag(release.Tag)
		if !internal.IsSemver(version) {
			continue
		}
		versions = append(versions, version)
	}
	return versions, nil
}

func (v VersionResolver) findLatestVersion(ctx context.Context, constraint string) (string, error) {
	user, repo, err := v.userAndRepo()
	if err != nil {
		return "", err
	}

	// try the cheapest path first: the release the project has marked latest
	latestRelease, err := v.latestReleaseFetcher(ctx, user, repo)
	if err != nil {
		return "", fmt.Errorf("unable to fetch latest release: %w", err)
	}

	if latestRelease != nil {
		version := v.normalizeTag(latestRelease.Tag)
		match, err := internal.FilterToLatestVersion([]string{version}, constraint)
		if err != nil {
			return "", err
		}
		if match != "" {
			return match, nil
		}
	}

	// the marked-latest release did not satisfy the constraint, so consider
	// every release
	versions, err := v.AvailableVersions(ctx)
	if err != nil {
		return "", err
	}

	latest, err := internal.FilterToLatestVersion(versions, constraint)
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "", fmt.Errorf("no github release found for %q satisfying %q", v.config.Repo, constraint)
	}

	log.FromContext(ctx).WithFields("latest", latest, "repo", v.config.Repo).Trace("found latest version from github releases")

	return latest, nil
}

func (v VersionResolver) normalizeTag(tag string) string {
	return strings.TrimPrefix(tag, v.config.TagPrefix)
}

func (v VersionResolver) userAndRepo() (string, string, error) {
	fields := strings.Split(v.config.Repo, "/")
	if len(fields) != 2 {
		return "", "", fmt.Errorf("invalid github repo format: %q", v.config.Repo)
	}
	return fields[0], fields[1], nil
}
