package apachedist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mvnup/mvnup/internal/log"
)

// flattenDir hoists the contents of a single nested directory (the
// "apache-maven-<version>" directory the upstream archives carry) up into
// destDir. If destDir holds anything other than exactly that directory the
// layout is left as extracted.
func flattenDir(destDir, nestedName string) error {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return fmt.Errorf("unable to read %q: %w", destDir, err)
	}

	if len(entries) != 1 || entries[0].Name() != nestedName || !entries[0].IsDir() {
		log.WithFields("dir", destDir).Trace("no single nested distribution directory to flatten")
		return nil
	}

	nested := filepath.Join(destDir, nestedName)
	children, err := os.ReadDir(nested)
	if err != nil {
		return fmt.Errorf("unable to read %q: %w", nested, err)
	}

	for _, child := range children {
		src := filepath.Join(nested, child.Name())
		dst := filepath.Join(destDir, child.Name())
		if err := moveEntry(src, dst); err != nil {
			return fmt.Errorf("unable to relocate %q: %w", src, err)
		}
	}

	if err := os.Remove(nested); err != nil {
		return fmt.Errorf("unable to remove %q: %w", nested, err)
	}
	return nil
}

// moveEntry renames src to dst, falling back to a copy-then-delete when the
// rename fails (e.g. across filesystems).
func moveEntry(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyRecursive(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

func copyRecursive(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dst)
	case info.IsDir():
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		children, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := copyRecursive(filepath.Join(src, child.Name()), filepath.Join(dst, child.Name())); err != nil {
				return err
			}
		}
		return nil
	default:
		return copyFile(src, dst, info.Mode().Perm())
	}
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
