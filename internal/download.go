package internal

import (
	"context"
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	internalhttp "github.com/mvnup/mvnup/internal/http"
	"github.com/mvnup/mvnup/internal/log"
)

// DownloadFile fetches the given URL to a local path, optionally verifying the
// contents against a checksum of the form "<algorithm>:<hex>" (a bare value is
// treated as sha256).
func DownloadFile(ctx context.Context, url, localPath, checksum string) (err error) {
	lgr := log.FromContext(ctx)
	lgr.WithFields("url", url, "to", localPath).Trace("downloading file")

	reader, err := DownloadURL(ctx, url)
	if err != nil {
		return err
	}
	defer reader.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("unable to create file %q: %w", localPath, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	hasher := getHasher(checksum)

	var writer io.Writer = out
	if hasher != nil {
		writer = io.MultiWriter(out, hasher)
	}

	if _, err := io.Copy(writer, reader); err != nil {
		return fmt.Errorf("unable to write file %q: %w", localPath, err)
	}

	if hasher != nil {
		actual := fmt.Sprintf("%x", hasher.Sum(nil))
		expected := cleanChecksum(checksum)
		if actual != expected {
			return fmt.Errorf("checksum mismatch for %q: expected %q, got %q", url, expected, actual)
		}
		lgr.WithFields("url", url).Trace("checksum verified")
	}

	return nil
}

// DownloadURL fetches the given URL with the retrying client carried on the
// context, returning the response body on a 2xx status.
func DownloadURL(ctx context.Context, url string) (io.ReadCloser, error) {
	client := internalhttp.ClientFromContext(ctx)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request for %q: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %q: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %q fetching %q", resp.Status, url)
	}

	return resp.Body, nil
}

func cleanChecksum(checksum string) string {
	if idx := strings.Index(checksum, ":"); idx != -1 {
		return checksum[idx+1:]
	}
	return checksum
}

func getHasher(checksum string) hash.Hash {
	switch {
	case checksum == "":
		return nil
	case strings.HasPrefix(checksum, "xxh64:"):
		// xxh64 digests are only used for the installation state file, not
		// download verification
		return nil
	case strings.HasPrefix(checksum, "sha512:"):
		return sha512.New()
	case strings.HasPrefix(checksum, "sha1:"):
		return sha1.New() //nolint:gosec
	case strings.HasPrefix(checksum, "md5:"):
		return md5.New() //nolint:gosec
	default:
		return sha256.New()
	}
}
