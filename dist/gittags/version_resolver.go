package gittags

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/log"
)

const latestVersion = "latest"

const (
	DefaultRepositoryURL = "https://github.com/apache/maven.git"
	defaultTagPrefix     = "maven-"
)

var _ mvnup.VersionResolver = (*VersionResolver)(nil)

type VersionResolutionParameters struct {
	URL       string `json:"url" yaml:"url" mapstructure:"url"`
	TagPrefix string `json:"tag-prefix" yaml:"tag-prefix" mapstructure:"tag-prefix"`
}

type VersionResolver struct {
	config    VersionResolutionParameters
	tagLister func(ctx context.Context, url string) ([]string, error)
}

func NewVersionResolver(cfg VersionResolutionParameters) *VersionResolver {
	if cfg.URL == "" {
		cfg.URL = DefaultRepositoryURL
	}
	if cfg.TagPrefix == "" {
		cfg.TagPrefix = defaultTagPrefix
	}
	return &VersionResolver{
		config:    cfg,
		tagLister: listRemoteTags,
	}
}

func (v VersionResolver) ResolveVersion(ctx context.Context, want, constraint string) (string, error) {
	log.FromContext(ctx).WithFields("want", want, "constraint", constraint).Trace("resolving version from git tags")

	switch {
	case internal.IsSnapshotVersion(want), internal.IsSemver(want):
		return want, nil
	case want == latestVersion:
		return v.findLatestVersion(ctx, constraint)
	}

	return want, nil
}

func (v VersionResolver) findLatestVersion(ctx context.Context, constraint string) (string, error) {
	versions, err := v.AvailableVersions(ctx)
	if err != nil {
		return "", err
	}

	latest, err := internal.FilterToLatestVersion(versions, constraint)
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "", fmt.Errorf("no version tags found at %q", v.config.URL)
	}
	return latest, nil
}

// AvailableVersions lists tags on the remote repository, keeping only the
// version-shaped ones (the maven repo tags releases as "maven-<version>").
func (v VersionResolver) AvailableVersions(ctx context.Context) ([]string, error) {
	tags, err := v.tagLister(ctx, v.config.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to list tags for %q: %w", v.config.URL, err)
	}

	var versions []string
	for _, tag := range tags {
		version := strings.TrimPrefix(tag, v.config.TagPrefix)
		if !internal.IsSemver(version) {
			continue
		}
		versions = append(versions, version)
	}
	return versions, nil
}

func listRemoteTags(ctx context.Context, url string) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		tags = append(tags, ref.Name().Short())
	}
	return tags, nil
}
