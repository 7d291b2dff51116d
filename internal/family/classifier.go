// SPDX-License-Identifier: MPL-2.0

package family

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/pkg/types"

	"github.com/charmbracelet/log"
)

var (
	englishPattern = regexp.MustCompile(`(?m)^(.+?) \(en\)$`)

	// ErrNoEnglishName is the sentinel error wrapped by NoEnglishNameError.
	ErrNoEnglishName = errors.New("font declares no English family name")
)

type (
	// NoEnglishNameError carries the records of a font without an English family.
	NoEnglishNameError struct {
		Path    string
		Records string
	}

	// ClassifiedFont is a font file with its resolved family.
	ClassifiedFont struct {
		Path   string
		Family string
		Size   types.ByteSize
	}

	// Classifier resolves family names through a MetadataQuery.
	Classifier struct {
		query  MetadataQuery
		logger *log.Logger
	}
)

func (e *NoEnglishNameError) Error() string {
	return fmt.Sprintf("%s: no English family name among %q", e.Path, e.Records)
}

// Unwrap returns ErrNoEnglishName for errors.Is.
func (e *NoEnglishNameError) Unwrap() error { return ErrNoEnglishName }

// EnglishNames returns the names of all records tagged "(en)", in order.
func EnglishNames(records string) []string {
	var names []string
	for _, m := range englishPattern.FindAllStringSubmatch(records, -1) {
		names = append(names, m[1])
	}
	return names
}

// NewClassifier creates a Classifier. A nil logger discards output.
func NewClassifier(query MetadataQuery, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Classifier{query: query, logger: logger}
}

// Family returns the first English family name of the font at path.
func (c *Classifier) Family(ctx context.Context, path string) (string, error) {
	records, err := c.query.Query(ctx, path)
	if err != nil {
		return "", fmt.Errorf("reading font metadata of %s: %w", filepath.Base(path), err)
	}
	names := EnglishNames(records)
	if len(names) == 0 {
		return "", &NoEnglishNameError{Path: path, Records: records}
	}
	if len(names) > 1 {
		c.logger.Debug("font declares several English families", "file", filepath.Base(path), "names", names, "using", names[0])
	}
	return names[0], nil
}

// ClassifyAll resolves every path in order and records its size. The
// first failure aborts the whole batch.
func (c *Classifier) ClassifyAll(ctx context.Context, paths []string) ([]ClassifiedFont, error) {
	fonts := make([]ClassifiedFont, 0, len(paths))
	for _, path := range paths {
		fam, err := c.Family(ctx, path)
		if err != nil {
			return nil, err
		}
		size, err := fsutil.RegularFileSize(path)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, ClassifiedFont{Path: path, Family: fam, Size: types.ByteSize(size)})
	}
	return fonts, nil
}
