package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// NewOS creates a filesystem backed by the host
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory creates an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Exists reports whether path exists. Errors other than "not exist" are
// returned so callers never mistake an unreadable path for a missing one.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CopyTree copies the directory tree rooted at src to dst. Directory and
// file permission bits are carried over; dst must not exist yet.
func CopyTree(fsys afero.Fs, src, dst string) error {
	if exists, err := Exists(fsys, dst); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("copy destination %s already exists", dst)
	}

	return afero.Walk(fsys, src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			if err := fsys.MkdirAll(target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
			return fsys.Chmod(target, info.Mode().Perm())
		case info.Mode().IsRegular():
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if err := afero.WriteFile(fsys, target, data, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			return fsys.Chmod(target, info.Mode().Perm())
		default:
			// etcupdate databases hold regular files only
			return nil
		}
	})
}

// ReplaceContents swaps the contents of the existing file at path for data.
// The new contents are written to a temporary file next to path, given the
// mode and ownership of the current file, then renamed over it, so readers
// see either the old or the new file and never a partial write.
func ReplaceContents(fsys afero.Fs, path string, data []byte) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), "."+filepath.Base(path)+".pkgbasify-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := fsys.Chmod(tmpName, info.Mode()); err != nil {
		return fmt.Errorf("failed to copy mode: %w", err)
	}
	if uid, gid, ok := owner(info); ok {
		if err := fsys.Chown(tmpName, uid, gid); err != nil {
			return fmt.Errorf("failed to copy ownership: %w", err)
		}
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}
