// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/fetch"
	"github.com/arcitec/font-nexus/internal/issue"
	"github.com/arcitec/font-nexus/internal/pipeline"
	"github.com/arcitec/font-nexus/internal/report"
	"github.com/arcitec/font-nexus/pkg/types"

	"github.com/charmbracelet/log"
)

const opLoadConfig = "load configuration"

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every command handler receives an App.
	App struct {
		Config   ConfigProvider
		NewBuild BuildServiceFactory
		stdout   io.Writer
		stderr   io.Writer

		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		NewBuild BuildServiceFactory
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// BuildService runs builds and group audits.
	BuildService interface {
		Run(ctx context.Context) (*report.Summary, error)
		Groups(ctx context.Context) (*pipeline.MicrosoftPlan, error)
	}

	// BuildServiceFactory creates the BuildService for a loaded configuration.
	BuildServiceFactory func(cfg *config.Config, logger *log.Logger) (BuildService, error)
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewBuild == nil {
		deps.NewBuild = newBuildService
	}

	return &App{
		Config:   deps.Config,
		NewBuild: deps.NewBuild,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

func newBuildService(cfg *config.Config, logger *log.Logger) (BuildService, error) {
	deps, err := pipeline.NewDeps(cfg, logger, fetch.WithUserAgent(config.AppName+"/"+Version))
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cfg, deps), nil
}

// loadConfig loads the effective configuration, honoring --config and
// letting ui.verbose enable verbose output when the flag is absent.
func (a *App) loadConfig(ctx context.Context) (*config.Config, string, error) {
	cfg, path, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation(opLoadConfig).
			WithResource(a.configPath).
			WithSuggestion("Run 'fontnexus config show' to see where settings come from").
			Wrap(err).
			BuildError()
	}
	if cfg.UI.Verbose {
		a.verbose = true
	}
	return cfg, path, nil
}

// logger writes stage progress to stderr, at debug level when verbose.
func (a *App) logger() *log.Logger {
	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{Level: level})
}

// fail renders err once and turns it into an exit status.
func (a *App) fail(err error) error {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		issueID, styled := classifyError(err, a.verbose)
		svcErr = newServiceError(err, issueID, styled)
		renderServiceError(a.stderr, svcErr)
	}
	return &ExitError{Code: types.ExitFailure, Err: svcErr}
}
