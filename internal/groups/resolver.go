// SPDX-License-Identifier: MPL-2.0

package groups

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultManifestBase serves raw files from the AUR git mirror.
const DefaultManifestBase = "https://aur.archlinux.org/cgit/aur.git/plain/PKGBUILD"

type (
	// TextSource fetches a remote document as text.
	TextSource interface {
		Text(ctx context.Context, url string) (string, error)
	}

	// Resolver downloads and parses the group manifest.
	Resolver struct {
		source  TextSource
		base    string
		version int
		prefix  string
		logger  *log.Logger
	}

	// ResolverOption configures a Resolver during construction.
	ResolverOption func(*Resolver)
)

// WithManifestBase overrides DefaultManifestBase.
func WithManifestBase(base string) ResolverOption {
	return func(r *Resolver) {
		r.base = base
	}
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) ResolverOption {
	return func(r *Resolver) {
		r.prefix = prefix
	}
}

// WithLogger sets the logger that reports the manifest URL.
func WithLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver for the ttf-ms-win<version>-auto package.
func NewResolver(source TextSource, version int, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:  source,
		base:    DefaultManifestBase,
		version: version,
		prefix:  DefaultPrefix,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ManifestURL returns the PKGBUILD address of the ttf-ms-win<version>-auto package.
func ManifestURL(base string, version int) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "h=ttf-ms-win" + strconv.Itoa(version) + "-auto"
}

// URL is the manifest address this Resolver reads.
func (r *Resolver) URL() string {
	return ManifestURL(r.base, r.version)
}

// Resolve fetches and parses the manifest.
func (r *Resolver) Resolve(ctx context.Context) (*Manifest, error) {
	url := r.URL()
	r.logger.Info("fetching font group manifest", "url", url)

	text, err := r.source.Text(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}

	m, err := Parse(text, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", url, err)
	}
	r.logger.Debug("parsed font group manifest", "groups", m.Len())
	return m, nil
}
