// SPDX-License-Identifier: MPL-2.0

package organize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/pkg/types"

	"github.com/charmbracelet/log"
)

// ErrInvalidFamily is the sentinel error wrapped by InvalidFamilyError.
var ErrInvalidFamily = errors.New("family name cannot be used as a directory name")

type (
	// InvalidFamilyError is returned for family names that would escape the tree.
	InvalidFamilyError struct {
		Family string
		Path   string
	}

	// Tree is an output root with one subdirectory per family.
	Tree struct {
		root   string
		logger *log.Logger
	}
)

func (e *InvalidFamilyError) Error() string {
	return fmt.Sprintf("%s: family %q is not a valid directory name", e.Path, e.Family)
}

// Unwrap returns ErrInvalidFamily for errors.Is.
func (e *InvalidFamilyError) Unwrap() error { return ErrInvalidFamily }

// NewTree creates a Tree rooted at root. A nil logger discards output.
func NewTree(root string, logger *log.Logger) *Tree {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tree{root: root, logger: logger}
}

// Root returns the output root.
func (t *Tree) Root() string { return t.root }

// Recreate deletes the root and creates it again, empty.
func (t *Tree) Recreate() error {
	if err := fsutil.Recreate(t.root); err != nil {
		return fmt.Errorf("recreating %s: %w", t.root, err)
	}
	return nil
}

// Add copies the content of font.Path to <root>/<family>/<base name> and
// returns the destination and the number of bytes written.
func (t *Tree) Add(font family.ClassifiedFont) (string, types.ByteSize, error) {
	if !validFamily(font.Family) {
		return "", 0, &InvalidFamilyError{Family: font.Family, Path: font.Path}
	}

	dir := filepath.Join(t.root, font.Family)
	if err := os.MkdirAll(dir, fsutil.DirPerm); err != nil {
		return "", 0, fmt.Errorf("creating family directory: %w", err)
	}

	dest := filepath.Join(dir, filepath.Base(font.Path))
	n, err := copyContent(font.Path, dest)
	if err != nil {
		return "", 0, err
	}
	t.logger.Info("copied", "dest", dest)
	return dest, types.ByteSize(n), nil
}

// Organize recreates the root, adds every font in order and returns the
// total size written.
func (t *Tree) Organize(fonts []family.ClassifiedFont) (types.ByteSize, error) {
	if err := t.Recreate(); err != nil {
		return 0, err
	}
	var total types.ByteSize
	for _, font := range fonts {
		_, n, err := t.Add(font)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func validFamily(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// copyContent copies bytes only; the copy gets default permissions and a
// fresh modification time.
func copyContent(src, dest string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening font: %w", err)
	}
	defer func() { _ = in.Close() }() // read-only file handle

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dest, closeErr)
		}
	}()

	if n, err = io.Copy(out, in); err != nil {
		return n, fmt.Errorf("copying to %s: %w", dest, err)
	}
	return n, nil
}
