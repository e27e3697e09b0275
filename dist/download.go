package dist

import (
	"context"
	"errors"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/internal/log"
)

var errNoDownloadSupport = errors.New("distribution does not support download-only operation")

// Downloader is implemented by installers that can fetch a distribution
// archive without extracting it.
type Downloader interface {
	DownloadTo(ctx context.Context, version, destDir string) (string, error)
}

// Download resolves the version intent and fetches the distribution archive
// into destDir, returning the resolved version and the archive path.
func Download(ctx context.Context, d mvnup.Distribution, intent mvnup.VersionIntent, destDir string) (string, string, error) {
	resolvedVersion, err := ResolveVersion(ctx, d, intent)
	if err != nil {
		return "", "", err
	}

	downloader, ok := d.(Downloader)
	if !ok {
		return "", "", errNoDownloadSupport
	}

	log.FromContext(ctx).WithFields("version", resolvedVersion, "destination", destDir).Info("downloading")

	archivePath, err := downloader.DownloadTo(ctx, resolvedVersion, destDir)
	if err != nil {
		return "", "", err
	}

	return resolvedVersion, archivePath, nil
}
