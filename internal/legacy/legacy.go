// SPDX-License-Identifier: MPL-2.0

package legacy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/arcitec/font-nexus/pkg/types"

	"github.com/charmbracelet/log"
)

const (
	// Keep marks a font file that belongs in the collection.
	Keep Verdict = iota
	// Delete marks a superseded static font.
	Delete
	// Ignore marks a file that is not a font.
	Ignore
)

var (
	supersededPattern = regexp.MustCompile(`^(?:SF-(?:Pro|Compact)-(?:Text|Display)|NewYork(?:Small|Medium|Large|ExtraLarge)).*?\.otf$`)
	fontPattern       = regexp.MustCompile(`\.(?:otf|ttf|ttc)$`)

	// ErrVanished is returned when a file disappears between listing and deletion.
	ErrVanished = errors.New("legacy font vanished before deletion")
)

type (
	// Verdict is the classification of one file name.
	Verdict int

	// Partition splits file names by verdict. Both lists are sorted.
	Partition struct {
		Keep   []string
		Delete []string
	}

	// Result reports what Apply did. Paths are absolute and sorted.
	Result struct {
		Kept         []string
		Deleted      []string
		DeletedBytes types.ByteSize
	}

	// Filter deletes superseded fonts from a directory.
	Filter struct {
		logger *log.Logger
	}
)

func (v Verdict) String() string {
	switch v {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case Ignore:
		return "ignore"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Classify decides the fate of a file by its base name. Extensions are
// matched case-sensitively.
func Classify(name string) Verdict {
	switch {
	case supersededPattern.MatchString(name):
		return Delete
	case fontPattern.MatchString(name):
		return Keep
	default:
		return Ignore
	}
}

// Split classifies every name. Ignored names appear in neither list.
func Split(names []string) Partition {
	var p Partition
	for _, name := range names {
		switch Classify(name) {
		case Keep:
			p.Keep = append(p.Keep, name)
		case Delete:
			p.Delete = append(p.Delete, name)
		case Ignore:
		}
	}
	slices.Sort(p.Keep)
	slices.Sort(p.Delete)
	return p
}

// NewFilter creates a Filter. A nil logger discards output.
func NewFilter(logger *log.Logger) *Filter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Filter{logger: logger}
}

// Apply classifies the regular files directly inside dir and deletes the
// superseded ones.
func (f *Filter) Apply(dir string) (*Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("listing extracted fonts: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	p := Split(names)

	res := &Result{}
	for _, name := range p.Delete {
		path := filepath.Join(abs, name)
		info, err := os.Lstat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrVanished, path)
		}
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrVanished, path)
			}
			return nil, fmt.Errorf("deleting legacy font: %w", err)
		}
		f.logger.Info("deleted legacy font", "file", name)
		res.Deleted = append(res.Deleted, path)
		res.DeletedBytes += types.ByteSize(info.Size())
	}
	for _, name := range p.Keep {
		res.Kept = append(res.Kept, filepath.Join(abs, name))
	}
	return res, nil
}
