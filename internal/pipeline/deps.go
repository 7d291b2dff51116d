// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"io"
	"time"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/exectool"
	"github.com/arcitec/font-nexus/internal/extract"
	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/internal/fetch"
	"github.com/arcitec/font-nexus/internal/groups"

	"github.com/charmbracelet/log"
)

type (
	// WebClient reads web pages and downloads archives.
	WebClient interface {
		groups.TextSource
		fetch.Downloader
	}

	// Deps holds the capabilities the pipelines are built from.
	Deps struct {
		Web      WebClient
		Archiver extract.Archiver
		Query    family.MetadataQuery
		Logger   *log.Logger
	}

	// Clock measures the build time.
	Clock interface {
		Now() time.Time
		Since(t time.Time) time.Duration
	}

	realClock struct{}
)

func (realClock) Now() time.Time                  { return time.Now() }
func (realClock) Since(t time.Time) time.Duration { return time.Since(t) }

// NewDeps wires the production capabilities: the native HTTP client, 7-Zip
// and the metadata backend selected by cfg.
func NewDeps(cfg *config.Config, logger *log.Logger, clientOpts ...fetch.ClientOption) (Deps, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	query, err := NewQuery(cfg, logger)
	if err != nil {
		return Deps{}, err
	}
	clientOpts = append([]fetch.ClientOption{fetch.WithLogger(logger)}, clientOpts...)
	return Deps{
		Web:      fetch.NewClient(clientOpts...),
		Archiver: extract.NewSevenZip(exectool.New(cfg.Tools.SevenZip, exectool.WithLogger(logger))),
		Query:    query,
		Logger:   logger,
	}, nil
}

// NewQuery returns the MetadataQuery for the configured backend.
func NewQuery(cfg *config.Config, logger *log.Logger) (family.MetadataQuery, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	switch cfg.Metadata.Backend {
	case config.BackendFcScan:
		return family.NewFcScan(exectool.New(cfg.Tools.FcScan, exectool.WithLogger(logger))), nil
	case config.BackendNative:
		return family.Native{}, nil
	default:
		return nil, cfg.Metadata.Backend.Validate()
	}
}

// RequiredTools lists the binaries a build needs on PATH: 7-Zip, and
// fc-scan unless the native backend is selected.
func RequiredTools(cfg *config.Config) []string {
	tools := []string{cfg.Tools.SevenZip}
	if cfg.Metadata.Backend == config.BackendFcScan {
		tools = append(tools, cfg.Tools.FcScan)
	}
	return tools
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}
