package archiveindex

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/log"
)

const latestVersion = "latest"

const DefaultURL = "https://archive.apache.org/dist/maven/"

// defaultMajorLines are the directory names under the archive root that hold
// per-version subdirectories.
var defaultMajorLines = []string{"maven-3", "maven-4"}

var _ mvnup.VersionResolver = (*VersionResolver)(nil)

type VersionResolutionParameters struct {
	URL        string   `json:"url" yaml:"url" mapstructure:"url"`
	MajorLines []string `json:"major-lines" yaml:"major-lines" mapstructure:"major-lines"`
}

type VersionResolver struct {
	config       VersionResolutionParameters
	indexFetcher func(ctx context.Context, url string) (io.ReadCloser, error)
}

func NewVersionResolver(cfg VersionResolutionParameters) *VersionResolver {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if len(cfg.MajorLines) == 0 {
		cfg.MajorLines = defaultMajorLines
	}
	return &VersionResolver{
		config:       cfg,
		indexFetcher: internal.DownloadURL,
	}
}

func (v VersionResolver) ResolveVersion(ctx context.Context, want, constraint string) (string, error) {
	log.FromContext(ctx).WithFields("want", want, "constraint", constraint).Trace("resolving version from archive index")

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
		return "", fmt.Errorf("no versions found in the archive index at %q", v.config.URL)
	}
	return latest, nil
}

// AvailableVersions lists each per-version directory in the archive's HTML
// directory indexes.
func (v VersionResolver) AvailableVersions(ctx context.Context) ([]string, error) {
	var versions []string
	for _, line := range v.config.MajorLines {
		url := strings.TrimSuffix(v.config.URL, "/") + "/" + line + "/"

		reader, err := v.indexFetcher(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("unable to fetch archive index %q: %w", url, err)
		}

		found := versionsFromIndex(reader)
		reader.Close()

		log.FromContext(ctx).WithFields("url", url, "versions", len(found)).Trace("listed archive index")

		versions = append(versions, found...)
	}
	return versions, nil
}

// versionsFromIndex pulls version-shaped directory links (e.g. "3.9.9/") out
// of an HTML directory listing.
func versionsFromIndex(reader io.Reader) []string {
	var versions []string

	tokenizer := html.NewTokenizer(reader)
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return versions
		}
		if tokenType != html.StartTagToken {
			continue
		}

		token := tokenizer.Token()
		if token.Data != "a" {
			continue
		}

		for _, attr := range token.Attr {
			if attr.Key != "href" {
				continue
			}
			candidate := strings.TrimSuffix(attr.Val, "/")
			if candidate != attr.Val && internal.IsSemver(candidate) {
				versions = append(versions, candidate)
			}
		}
	}
}
