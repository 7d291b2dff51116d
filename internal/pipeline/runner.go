// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"path/filepath"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/exectool"
	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/internal/issue"
	"github.com/arcitec/font-nexus/internal/report"

	"github.com/charmbracelet/log"
)

type (
	// ToolCheckFunc fails when one of tools cannot be run.
	ToolCheckFunc func(tools ...string) error

	// RunnerOption configures a Runner during construction.
	RunnerOption func(*Runner)

	// Runner performs a complete build.
	Runner struct {
		cfg        *config.Config
		microsoft  *Microsoft
		apple      *Apple
		clock      Clock
		checkTools ToolCheckFunc
		logger     *log.Logger
	}
)

// WithClock replaces the wall clock used for the elapsed time.
func WithClock(c Clock) RunnerOption {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithToolCheck replaces the PATH lookup of the pre-flight check.
func WithToolCheck(fn ToolCheckFunc) RunnerOption {
	return func(r *Runner) {
		r.checkTools = fn
	}
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg *config.Config, deps Deps, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:        cfg,
		microsoft:  NewMicrosoft(cfg, deps),
		apple:      NewApple(cfg, deps),
		clock:      realClock{},
		checkTools: exectool.CheckAvailable,
		logger:     deps.logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Groups resolves and checks the Microsoft group selection without
// building anything.
func (r *Runner) Groups(ctx context.Context) (*MicrosoftPlan, error) {
	return r.microsoft.Plan(ctx)
}

// Run checks the external tools, wipes the output and temp roots, builds
// the Microsoft and then the Apple collection, and removes the temp root.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	if err := r.checkTools(RequiredTools(r.cfg)...); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("check external tools").
			WithSuggestion("Install the missing tools and make sure they are on your PATH").
			WithSuggestion("Or select the native metadata backend to build without fc-scan").
			Wrap(err).
			BuildError()
	}

	start := r.clock.Now()

	for _, dir := range []string{r.cfg.OutputDir(), r.cfg.TempDir()} {
		if err := fsutil.RemoveTree(dir); err != nil {
			return nil, removalError(err, dir)
		}
	}

	ms, err := r.microsoft.Run(ctx)
	if err != nil {
		return nil, err
	}
	apple, err := r.apple.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := fsutil.RemoveTree(r.cfg.TempDir()); err != nil {
		return nil, removalError(err, r.cfg.TempDir())
	}

	total := ms.OutputBytes + apple.OutputBytes
	r.logger.Info("total output", "size", total)

	return &report.Summary{
		StartedAt:  start,
		Elapsed:    report.FormatElapsed(r.clock.Since(start)),
		TotalBytes: total,
		Microsoft:  microsoftSection(ms),
		Apple:      appleSection(apple),
	}, nil
}

func removalError(err error, dir string) error {
	return issue.NewErrorContext().
		WithOperation("clean working directory").
		WithResource(dir).
		WithSuggestion("Delete the directory by hand and try again").
		Wrap(err).
		BuildError()
}

// MicrosoftGroups converts an analysis into report groups.
func MicrosoftGroups(plan *MicrosoftPlan) (enabled, disabled []report.Group) {
	for _, g := range plan.Analysis.Enabled {
		enabled = append(enabled, report.Group{Name: g.Name, Files: g.Files, Size: g.Size})
	}
	for _, g := range plan.Analysis.Disabled {
		disabled = append(disabled, report.Group{Name: g.Name, Files: g.Files, Size: g.Size})
	}
	return enabled, disabled
}

func microsoftSection(res *MicrosoftResult) *report.MicrosoftSection {
	enabled, disabled := MicrosoftGroups(res.MicrosoftPlan)
	return &report.MicrosoftSection{
		ManifestURL:  res.ManifestURL,
		Enabled:      enabled,
		Disabled:     disabled,
		Unknown:      res.Analysis.Unknown,
		SizeEnabled:  res.Analysis.SizeEnabled,
		SizeDisabled: res.Analysis.SizeDisabled,
		Families:     report.Families(res.Fonts),
		OutputDir:    res.OutputDir,
		OutputBytes:  res.OutputBytes,
	}
}

func appleSection(res *AppleResult) *report.AppleSection {
	archives := make([]report.Archive, 0, len(res.Archives))
	for _, a := range res.Archives {
		archives = append(archives, report.Archive{URL: a.URL, Path: a.Path, Size: a.Size})
	}
	deleted := make([]string, 0, len(res.Legacy.Deleted))
	for _, path := range res.Legacy.Deleted {
		deleted = append(deleted, filepath.Base(path))
	}
	return &report.AppleSection{
		Archives:      archives,
		DeletedLegacy: deleted,
		DeletedBytes:  res.Legacy.DeletedBytes,
		Families:      report.Families(res.Fonts),
		OutputDir:     res.OutputDir,
		OutputBytes:   res.OutputBytes,
	}
}
