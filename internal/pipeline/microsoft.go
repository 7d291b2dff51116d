// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/internal/groups"
	"github.com/arcitec/font-nexus/internal/issue"
	"github.com/arcitec/font-nexus/internal/organize"
	"github.com/arcitec/font-nexus/pkg/types"

	"github.com/charmbracelet/log"
)

// MicrosoftOutputName is the output subdirectory of the Windows collection.
const MicrosoftOutputName = "windows-fonts"

// ErrMissingWindowsFonts is the sentinel error wrapped by MissingWindowsFontsError.
var ErrMissingWindowsFonts = errors.New("windows fonts directory not found")

type (
	// MissingWindowsFontsError names the expected copy of C:\Windows\Fonts.
	MissingWindowsFontsError struct {
		Dir string
	}

	// Microsoft builds the Windows font collection.
	Microsoft struct {
		resolver   *groups.Resolver
		selection  groups.Selection
		version    config.WindowsVersion
		fontsDir   string
		classifier *family.Classifier
		tree       *organize.Tree
		logger     *log.Logger
	}

	// MicrosoftPlan is a resolved group selection checked against the
	// local fonts directory.
	MicrosoftPlan struct {
		ManifestURL string
		FontsDir    string
		Manifest    *groups.Manifest
		Analysis    *groups.Analysis
	}

	// MicrosoftResult describes a finished Windows build.
	MicrosoftResult struct {
		*MicrosoftPlan
		// Fonts are the copied fonts in manifest order.
		Fonts       []family.ClassifiedFont
		OutputDir   string
		OutputBytes types.ByteSize
	}
)

func (e *MissingWindowsFontsError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Dir)
}

// Unwrap returns ErrMissingWindowsFonts for errors.Is.
func (e *MissingWindowsFontsError) Unwrap() error { return ErrMissingWindowsFonts }

// WindowsFontsDir is where cfg expects the copy of C:\Windows\Fonts.
func WindowsFontsDir(cfg *config.Config) string {
	return filepath.Join(cfg.SourceDir(), "windows", "Fonts")
}

// NewMicrosoft creates the Windows pipeline for cfg.
func NewMicrosoft(cfg *config.Config, deps Deps) *Microsoft {
	logger := deps.logger()
	return &Microsoft{
		resolver: groups.NewResolver(deps.Web, int(cfg.Microsoft.WindowsVersion),
			groups.WithManifestBase(cfg.Microsoft.ManifestBase),
			groups.WithPrefix(cfg.Microsoft.GroupPrefix),
			groups.WithLogger(logger),
		),
		selection:  groups.ParseSelection(cfg.Microsoft.Groups),
		version:    cfg.Microsoft.WindowsVersion,
		fontsDir:   WindowsFontsDir(cfg),
		classifier: family.NewClassifier(deps.Query, logger),
		tree:       organize.NewTree(filepath.Join(cfg.OutputDir(), MicrosoftOutputName), logger),
		logger:     logger,
	}
}

// Plan resolves the manifest and checks every listed file, enabled or not,
// against the local fonts directory. Nothing is written.
func (m *Microsoft) Plan(ctx context.Context) (*MicrosoftPlan, error) {
	if !fsutil.IsDir(m.fontsDir) {
		return nil, issue.NewErrorContext().
			WithOperation("locate Windows fonts").
			WithResource(m.fontsDir).
			WithSuggestion(fmt.Sprintf("Copy C:\\Windows\\Fonts from a fully updated Windows %d installation", m.version)).
			Wrap(&MissingWindowsFontsError{Dir: m.fontsDir}).
			BuildError()
	}

	manifest, err := m.resolver.Resolve(ctx)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve font groups").
			WithResource(m.resolver.URL()).
			WithSuggestion(fmt.Sprintf("Check that the ttf-ms-win%d-auto package exists on the AUR", m.version)).
			Wrap(err).
			BuildError()
	}

	analysis, err := groups.Analyze(manifest, m.selection, m.fontsDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("analyze font groups").
			WithResource(m.fontsDir).
			WithSuggestion(fmt.Sprintf("Copy the Fonts directory again from a fully updated Windows %d installation", m.version)).
			Wrap(err).
			BuildError()
	}

	m.logger.Info("enabled Microsoft font groups", "size", analysis.SizeEnabled)
	for _, g := range analysis.Enabled {
		m.logger.Info("+ "+g.Name, "files", g.Files, "size", g.Size)
	}
	m.logger.Info("disabled Microsoft font groups", "size", analysis.SizeDisabled)
	for _, g := range analysis.Disabled {
		m.logger.Info("- "+g.Name, "files", g.Files, "size", g.Size)
	}
	for _, name := range analysis.Unknown {
		m.logger.Warn("selected group is not in the manifest", "group", name)
	}

	return &MicrosoftPlan{
		ManifestURL: m.resolver.URL(),
		FontsDir:    m.fontsDir,
		Manifest:    manifest,
		Analysis:    analysis,
	}, nil
}

// Run plans the build, classifies every enabled file and copies it into a
// fresh windows-fonts tree. Classification finishes before the first copy.
func (m *Microsoft) Run(ctx context.Context) (*MicrosoftResult, error) {
	plan, err := m.Plan(ctx)
	if err != nil {
		return nil, err
	}

	files := plan.Analysis.EnabledFiles()
	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = filepath.Join(m.fontsDir, file)
	}

	fonts, err := m.classifier.ClassifyAll(ctx, paths)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("classify Windows fonts").
			WithResource(m.fontsDir).
			Wrap(err).
			BuildError()
	}

	m.logger.Info("copying selected Microsoft fonts", "files", len(fonts))
	size, err := m.tree.Organize(fonts)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("copy Windows fonts").
			WithResource(m.tree.Root()).
			Wrap(err).
			BuildError()
	}
	m.logger.Info("Microsoft output", "size", size)

	return &MicrosoftResult{
		MicrosoftPlan: plan,
		Fonts:         fonts,
		OutputDir:     m.tree.Root(),
		OutputBytes:   size,
	}, nil
}
