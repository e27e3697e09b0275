package releasehistory

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/scylladb/go-set/strset"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/log"
)

const latestVersion = "latest"

// DefaultURL is the maven project's release history page, which lists every
// released version in an HTML table.
const DefaultURL = "https://maven.apache.org/docs/history.html"

// versionCellPattern matches version numbers within table cells on the
// release history page (e.g. `<td style="text-align: center">3.9.9</td>`).
var versionCellPattern = regexp.MustCompile(`<td[^>]*>\s*(?:<b>)?(\d+\.\d+(?:\.\d+)?)`)

var _ mvnup.VersionResolver = (*VersionResolver)(nil)

type VersionResolutionParameters struct {
	URL string `json:"url" yaml:"url" mapstructure:"url"`
}

type VersionResolver struct {
	config      VersionResolutionParameters
	pageFetcher func(ctx context.Context, url string) (io.ReadCloser, error)
}

func NewVersionResolver(cfg VersionResolutionParameters) *VersionResolver {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	return &VersionResolver{
		config:      cfg,
		pageFetcher: internal.DownloadURL,
	}
}

func (v VersionResolver) ResolveVersion(ctx context.Context, want, constraint string) (string, error) {
	log.FromContext(ctx).WithFields("want", want, "constraint", constraint).Trace("resolving version from release history")

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

	log.FromContext(ctx).WithFields("latest", latest, "constraint", constraint).Trace("resolved latest version")

	return latest, nil
}

// AvailableVersions scrapes the release history page, returning each version
// in page order (newest first). An empty page yields no versions and no error.
func (v VersionResolver) AvailableVersions(ctx context.Context) ([]string, error) {
	reader, err := v.pageFetcher(ctx, v.config.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch release history page %q: %w", v.config.URL, err)
	}
	defer reader.Close()

	seen := strset.New()
	var versions []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		for _, match := range versionCellPattern.FindAllStringSubmatch(scanner.Text(), -1) {
			version := match[1]
			if seen.Has(version) {
				continue
			}
			seen.Add(version)
			versions = append(versions, version)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read release history page %q: %w", v.config.URL, err)
	}

	return versions, nil
}
