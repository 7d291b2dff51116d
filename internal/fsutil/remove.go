// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirPerm is the permission used for every directory the pipeline creates.
const DirPerm fs.FileMode = 0o755

var (
	// ErrUnsafeRemoval is returned when the platform's recursive removal is not
	// protected against symlink races.
	ErrUnsafeRemoval = errors.New("recursive removal is not symlink-safe on this platform")

	// ErrNotEmpty is returned by Recreate when the target still exists after
	// removal.
	ErrNotEmpty = errors.New("directory still exists after removal")
)

// UnsafeRemovalError names the directory the operator must delete by hand.
type UnsafeRemovalError struct {
	Path string
}

// Error implements the error interface.
func (e *UnsafeRemovalError) Error() string {
	return fmt.Sprintf("cannot safely delete %q: %v", e.Path, ErrUnsafeRemoval)
}

// Unwrap returns ErrUnsafeRemoval for errors.Is() compatibility.
func (e *UnsafeRemovalError) Unwrap() error { return ErrUnsafeRemoval }

// SymlinkSafe reports whether RemoveTree may be used on this platform.
func SymlinkSafe() bool { return symlinkSafeRemoval }

// RemoveTree deletes dir and everything below it. A missing dir is not an
// error. On platforms without a symlink-safe os.RemoveAll the call refuses
// to touch an existing directory.
func RemoveTree(dir string) error {
	if _, err := os.Lstat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("inspecting %s: %w", dir, err)
	}

	if !symlinkSafeRemoval {
		return &UnsafeRemovalError{Path: dir}
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}

// Recreate removes dir and creates it again, empty. Parents are created as
// needed. It fails if the directory somehow survived the removal.
func Recreate(dir string) error {
	if err := RemoveTree(dir); err != nil {
		return err
	}

	if err := os.MkdirAll(parentOf(dir), DirPerm); err != nil {
		return fmt.Errorf("creating parent of %s: %w", dir, err)
	}

	// Plain Mkdir (not MkdirAll) so a leftover directory is reported.
	if err := os.Mkdir(dir, DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", dir, ErrNotEmpty)
		}
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
