package apachedist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-multierror"
	"github.com/scylladb/go-set/strset"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/log"
)

const (
	defaultMirrorURLTemplate   = "https://dlcdn.apache.org/maven/maven-{{.Major}}/{{.Version}}/binaries/apache-maven-{{.Version}}-bin.tar.gz"
	defaultArchiveURLTemplate  = "https://archive.apache.org/dist/maven/maven-{{.Major}}/{{.Version}}/binaries/apache-maven-{{.Version}}-bin.tar.gz"
	defaultSnapshotURLTemplate = "https://repository.apache.org/service/local/artifact/maven/redirect?r=snapshots&g=org.apache.maven&a=apache-maven&v={{.Version}}&c=bin&p=tar.gz"

	checksumExtension = ".sha512"
)

var archiveMimeTypes = strset.New(
	"application/gzip",
	"application/x-tar",
	"application/x-gtar",
	"application/x-bzip2",
	"application/x-xz",
	"application/zstd",
	"application/zip",
)

var _ mvnup.Installer = (*Installer)(nil)

type InstallerParameters struct {
	MirrorURL      string `json:"mirror-url" yaml:"mirror-url" mapstructure:"mirror-url"`
	ArchiveURL     string `json:"archive-url" yaml:"archive-url" mapstructure:"archive-url"`
	SnapshotURL    string `json:"snapshot-url" yaml:"snapshot-url" mapstructure:"snapshot-url"`
	VerifyChecksum *bool  `json:"verify-checksum" yaml:"verify-checksum" mapstructure:"verify-checksum"`
}

func (p InstallerParameters) withDefaults() InstallerParameters {
	if p.MirrorURL == "" {
		p.MirrorURL = defaultMirrorURLTemplate
	}
	if p.ArchiveURL == "" {
		p.ArchiveURL = defaultArchiveURLTemplate
	}
	if p.SnapshotURL == "" {
		p.SnapshotURL = defaultSnapshotURLTemplate
	}
	return p
}

type Installer struct {
	config        InstallerParameters
	downloadFile  func(ctx context.Context, url, localPath, checksum string) error
	fetchChecksum func(ctx context.Context, url string) (string, error)
}

func NewInstaller(cfg InstallerParameters) Installer {
	return Installer{
		config:        cfg.withDefaults(),
		downloadFile:  internal.DownloadFile,
		fetchChecksum: fetchChecksum,
	}
}

// InstallTo downloads, verifies, and extracts the given maven version into
// destDir, returning the resulting maven home (destDir itself).
func (i Installer) InstallTo(ctx context.Context, version, destDir string) (string, error) {
	if version == "" {
		return "", fmt.Errorf("no version provided to install")
	}
	if destDir == "" {
		return "", fmt.Errorf("no destination directory provided")
	}

	log.FromContext(ctx).WithFields("version", version, "destination", destDir).Debug("installing maven distribution")

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create destination directory %q: %w", destDir, err)
	}

	archivePath := filepath.Join(destDir, version+".tar.gz")
	if err := i.download(ctx, version, archivePath); err != nil {
		return "", err
	}

	if err := ensureArchiveType(archivePath); err != nil {
		removeIgnoringMissing(archivePath)
		return "", err
	}

	if err := extractToDir(ctx, archivePath, destDir); err != nil {
		removeIgnoringMissing(archivePath)
		return "", fmt.Errorf("unable to extract archive %q: %w", archivePath, err)
	}

	if err := os.Remove(archivePath); err != nil {
		return "", fmt.Errorf("unable to remove archive %q: %w", archivePath, err)
	}

	if err := flattenDir(destDir, "apache-maven-"+version); err != nil {
		return "", err
	}

	return destDir, nil
}

// DownloadTo fetches and verifies the distribution archive for the given
// version into destDir without extracting it, returning the archive path.
func (i Installer) DownloadTo(ctx context.Context, version, destDir string) (string, error) {
	if version == "" {
		return "", fmt.Errorf("no version provided to download")
	}
	if destDir == "" {
		return "", fmt.Errorf("no destination directory provided")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create destination directory %q: %w", destDir, err)
	}

	archivePath := filepath.Join(destDir, fmt.Sprintf("apache-maven-%s-bin.tar.gz", version))
	if err := i.download(ctx, version, archivePath); err != nil {
		return "", err
	}

	if err := ensureArchiveType(archivePath); err != nil {
		removeIgnoringMissing(archivePath)
		return "", err
	}

	return archivePath, nil
}

// download tries each candidate URL in order, keeping the first archive that
// downloads (and verifies) successfully.
func (i Installer) download(ctx context.Context, version, archivePath string) error {
	urls, err := i.candidateURLs(version)
	if err != nil {
		return err
	}

	lgr := log.FromContext(ctx)

	var errs error
	for _, url := range urls {
		var checksum string
		if i.shouldVerifyChecksum(version) {
			checksum, err = i.fetchChecksum(ctx, url+checksumExtension)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("unable to fetch checksum for %q: %w", url, err))
				continue
			}
		}

		if err := i.downloadFile(ctx, url, archivePath, checksum); err != nil {
			removeIgnoringMissing(archivePath)
			errs = multierror.Append(errs, fmt.Errorf("unable to download %q: %w", url, err))
			continue
		}

		lgr.WithFields("url", url, "version", version).Trace("downloaded distribution archive")
		return nil
	}

	return fmt.Errorf("all download locations failed for maven %s: %w", version, errs)
}

type urlTemplateData struct {
	Version string
	Major   string
}

func (i Installer) candidateURLs(version string) ([]string, error) {
	if !internal.IsSemver(version) {
		return nil, fmt.Errorf("unrecognized maven version format %q", version)
	}

	data := urlTemplateData{
		Version: version,
		Major:   strings.SplitN(version, ".", 2)[0],
	}

	var templates []string
	if internal.IsSnapshotVersion(version) {
		// snapshots are only published through the snapshot repository redirect
		templates = []string{i.config.SnapshotURL}
	} else {
		templates = []string{i.config.MirrorURL, i.config.ArchiveURL}
	}

	urls := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		url, err := renderURLTemplate(tmpl, data)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (i Installer) shouldVerifyChecksum(version string) bool {
	if internal.IsSnapshotVersion(version) {
		// the snapshot redirect service does not publish checksum sidecars
		return false
	}
	if i.config.VerifyChecksum == nil {
		return true
	}
	return *i.config.VerifyChecksum
}

func renderURLTemplate(tmplStr string, data urlTemplateData) (string, error) {
	tmpl, err := template.New("url").Funcs(sprig.TxtFuncMap()).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("unable to parse URL template %q: %w", tmplStr, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("unable to render URL template %q: %w", tmplStr, err)
	}
	return buf.String(), nil
}

// fetchChecksum reads a .sha512 sidecar file, returning the digest in the
// "sha512:<hex>" form understood by the download helper.
func fetchChecksum(ctx context.Context, url string) (string, error) {
	reader, err := internal.DownloadURL(ctx, url)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	contents, err := io.ReadAll(io.LimitReader(reader, 1024))
	if err != nil {
		return "", fmt.Errorf("unable to read checksum file %q: %w", url, err)
	}

	fields := strings.Fields(string(contents))
	if len(fields) == 0 {
		return "", fmt.Errorf("empty checksum file %q", url)
	}

	return "sha512:" + fields[0], nil
}

func ensureArchiveType(archivePath string) error {
	mimeType, err := mimetype.DetectFile(archivePath)
	if err != nil {
		return fmt.Errorf("unable to detect mime type of %q: %w", archivePath, err)
	}

	name := strings.Split(mimeType.String(), ";")[0]
	if !archiveMimeTypes.Has(name) {
		return fmt.Errorf("unexpected content type %q for %q (expected an archive)", name, archivePath)
	}
	return nil
}

func removeIgnoringMissing(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.WithFields("path", path, "error", err).Trace("unable to remove file")
	}
}
