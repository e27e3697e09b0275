package apachedist

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/mholt/archives"
)

// extractToDir extracts an archive file to the destination directory
func extractToDir(ctx context.Context, archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("unable to open archive: %w", err)
	}
	defer file.Close()

	format, reader, err := archives.Identify(ctx, archivePath, file)
	if err != nil {
		return fmt.Errorf("unable to identify archive format: %w", err)
	}

	extractor, ok := format.(archives.Extractor)
	if !ok {
		return fmt.Errorf("format %T does not support extraction", format)
	}

	return extractor.Extract(ctx, reader, func(ctx context.Context, f archives.FileInfo) error {
		// anchor every entry under destDir to prevent directory traversal
		destPath, err := securejoin.SecureJoin(destDir, f.NameInArchive)
		if err != nil {
			return fmt.Errorf("invalid path in archive: %s", f.NameInArchive)
		}

		if f.IsDir() {
			return os.MkdirAll(destPath, f.Mode())
		}

		if f.LinkTarget != "" {
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				return err
			}
			return os.Symlink(f.LinkTarget, destPath)
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return err
		}

		srcFile, err := f.Open()
		if err != nil {
			return err
		}
		defer srcFile.Close()

		destFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}
		defer destFile.Close()

		_, err = io.Copy(destFile, srcFile)
		return err
	})
}
