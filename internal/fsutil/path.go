// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

func parentOf(dir string) string {
	return filepath.Dir(filepath.Clean(dir))
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RegularFileSize returns the size of path, which must be a regular file
// (symlinks are followed).
func RegularFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: not a regular file", path)
	}
	return info.Size(), nil
}

// IsMissing reports whether err means a path does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
