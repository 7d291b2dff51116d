// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/extract"
	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/internal/fetch"
	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/internal/issue"
	"github.com/arcitec/font-nexus/internal/legacy"
	"github.com/arcitec/font-nexus/internal/organize"
	"github.com/arcitec/font-nexus/internal/report"
	"github.com/arcitec/font-nexus/pkg/types"

	"github.com/charmbracelet/log"
)

const (
	// AppleOutputName is the output subdirectory of the Apple collection.
	AppleOutputName = "apple-fonts"
	// AppleDownloadDir is the archive cache below the source root.
	AppleDownloadDir = "apple-dmgs"
	// AppleScratchDir is the extraction root below the temp root.
	AppleScratchDir = "apple-extract"
)

// ErrEmptyArchive is the sentinel error wrapped by EmptyArchiveError.
var ErrEmptyArchive = errors.New("downloaded archive is missing or empty")

type (
	// EmptyArchiveError names a cached archive that is absent or has no content.
	EmptyArchiveError struct {
		Path string
	}

	// Apple builds the Apple font collection.
	Apple struct {
		web         WebClient
		page        string
		ext         string
		downloadDir string
		extractor   *extract.Extractor
		filter      *legacy.Filter
		classifier  *family.Classifier
		tree        *organize.Tree
		logger      *log.Logger
	}

	// Archive is a cached archive and its size on disk.
	Archive struct {
		fetch.ArchiveRef
		Size types.ByteSize
	}

	// AppleResult describes a finished Apple build.
	AppleResult struct {
		Archives []Archive
		Legacy   *legacy.Result
		// Fonts are the copied fonts, ordered by family.
		Fonts       []family.ClassifiedFont
		OutputDir   string
		OutputBytes types.ByteSize
	}
)

func (e *EmptyArchiveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, ErrEmptyArchive)
}

// Unwrap returns ErrEmptyArchive for errors.Is.
func (e *EmptyArchiveError) Unwrap() error { return ErrEmptyArchive }

// NewApple creates the Apple pipeline for cfg.
func NewApple(cfg *config.Config, deps Deps) *Apple {
	logger := deps.logger()
	scratch := filepath.Join(cfg.TempDir(), AppleScratchDir)
	return &Apple{
		web:         deps.Web,
		page:        cfg.Apple.FontsPage,
		ext:         cfg.Apple.ArchiveExt,
		downloadDir: filepath.Join(cfg.SourceDir(), AppleDownloadDir),
		extractor:   extract.NewExtractor(deps.Archiver, scratch, extract.WithLogger(logger)),
		filter:      legacy.NewFilter(logger),
		classifier:  family.NewClassifier(deps.Query, logger),
		tree:        organize.NewTree(filepath.Join(cfg.OutputDir(), AppleOutputName), logger),
		logger:      logger,
	}
}

// Run downloads new or updated archives, extracts their fonts, deletes the
// legacy ones and copies the rest into a fresh apple-fonts tree, family by
// family. The scratch directory is removed at the end.
func (a *Apple) Run(ctx context.Context) (*AppleResult, error) {
	archives, err := a.download(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(archives))
	for i, archive := range archives {
		paths[i] = archive.Path
	}
	fontsDir, err := a.extractor.Run(ctx, paths)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("extract Apple fonts").
			WithResource(a.extractor.Root()).
			WithSuggestion("Check that your 7-Zip build can read DMG and XAR archives").
			Wrap(err).
			BuildError()
	}

	a.logger.Info("deleting legacy Apple fonts")
	res, err := a.filter.Apply(fontsDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("delete legacy Apple fonts").
			WithResource(fontsDir).
			Wrap(err).
			BuildError()
	}
	a.logger.Info("deleted legacy fonts", "files", len(res.Deleted), "size", res.DeletedBytes)

	a.logger.Info("analyzing Apple fonts", "files", len(res.Kept))
	fonts, err := a.classifier.ClassifyAll(ctx, res.Kept)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("classify Apple fonts").
			WithResource(fontsDir).
			Wrap(err).
			BuildError()
	}
	slices.SortStableFunc(fonts, func(x, y family.ClassifiedFont) int {
		return cmp.Compare(x.Family, y.Family)
	})
	for _, fam := range report.Families(fonts) {
		a.logger.Info("* "+fam.Name, "files", strings.Join(fam.Files, ", "))
	}

	a.logger.Info("copying Apple fonts", "files", len(fonts))
	size, err := a.tree.Organize(fonts)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("copy Apple fonts").
			WithResource(a.tree.Root()).
			Wrap(err).
			BuildError()
	}
	a.logger.Info("Apple output", "size", size)

	if err := a.extractor.Cleanup(); err != nil {
		return nil, issue.WrapWithContext(err, "remove scratch directory", a.extractor.Root())
	}

	return &AppleResult{
		Archives:    archives,
		Legacy:      res,
		Fonts:       fonts,
		OutputDir:   a.tree.Root(),
		OutputBytes: size,
	}, nil
}

// download discovers the archives on the vendor page, refreshes the cache
// and checks that every cached copy has content.
func (a *Apple) download(ctx context.Context) ([]Archive, error) {
	page, err := a.web.Text(ctx, a.page)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("fetch Apple fonts page").
			WithResource(a.page).
			WithSuggestion("Check your network connection").
			Wrap(err).
			BuildError()
	}

	urls, err := fetch.FindArchiveURLs(page, a.ext)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("find Apple font archives").
			WithResource(a.page).
			WithSuggestion("The page layout may have changed; check apple.fonts_page in your config").
			Wrap(err).
			BuildError()
	}

	a.logger.Info("downloading new or updated Apple font archives", "archives", len(urls))
	refs := make([]fetch.ArchiveRef, 0, len(urls))
	for _, url := range urls {
		ref, err := a.web.Fetch(ctx, url, a.downloadDir)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("download archive").
				WithResource(url).
				WithSuggestion("Run the build again; unchanged archives are not downloaded twice").
				Wrap(err).
				BuildError()
		}
		refs = append(refs, ref)
	}

	archives := make([]Archive, 0, len(refs))
	for _, ref := range refs {
		size, err := fsutil.RegularFileSize(ref.Path)
		if err != nil || size < 1 {
			return nil, issue.NewErrorContext().
				WithOperation("verify archive").
				WithResource(ref.URL).
				WithSuggestion("Please try again").
				Wrap(&EmptyArchiveError{Path: ref.Path}).
				BuildError()
		}
		archives = append(archives, Archive{ArchiveRef: ref, Size: types.ByteSize(size)})
	}
	return archives, nil
}
