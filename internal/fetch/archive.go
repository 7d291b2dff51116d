// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"
)

// DefaultArchiveExt is the archive extension linked from the Apple fonts page.
const DefaultArchiveExt = ".dmg"

var (
	// ErrNoArchives is returned when a page links to no archives.
	ErrNoArchives = errors.New("no archive links found")
	// ErrInvalidArchiveURL is returned when a URL has no usable file name.
	ErrInvalidArchiveURL = errors.New("archive URL has no file name")
)

type (
	// ArchiveRef pairs an archive URL with its cached copy on disk.
	ArchiveRef struct {
		URL  string
		Path string
	}

	// Downloader fetches url into destDir, reusing an up-to-date cached copy.
	Downloader interface {
		Fetch(ctx context.Context, url, destDir string) (ArchiveRef, error)
	}
)

// FindArchiveURLs returns every http(s) link in page ending in ext, in order
// of first appearance and without duplicates.
func FindArchiveURLs(page, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultArchiveExt
	}
	re := regexp.MustCompile(`http[^"]+?` + regexp.QuoteMeta(ext))

	var urls []string
	seen := make(map[string]bool)
	for _, match := range re.FindAllString(page, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		urls = append(urls, match)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("%w (extension %q)", ErrNoArchives, ext)
	}
	return urls, nil
}

// LocalName is the file name an archive is cached under: the last path
// segment of rawURL, ignoring query and fragment.
func LocalName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidArchiveURL, rawURL)
	}
	return name, nil
}

// Fetch downloads rawURL into destDir. An existing copy is kept when the
// server answers 304 to If-Modified-Since, or when its Last-Modified is not
// newer than the local file and the sizes match. New downloads get the
// server's Last-Modified as their modification time.
func (c *Client) Fetch(ctx context.Context, rawURL, destDir string) (ArchiveRef, error) {
	name, err := LocalName(rawURL)
	if err != nil {
		return ArchiveRef{}, err
	}
	ref := ArchiveRef{URL: rawURL, Path: filepath.Join(destDir, name)}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return ArchiveRef{}, fmt.Errorf("creating download directory: %w", err)
	}

	header := http.Header{}
	local, statErr := os.Stat(ref.Path)
	haveLocal := statErr == nil && local.Mode().IsRegular()
	if haveLocal {
		header.Set("If-Modified-Since", local.ModTime().UTC().Format(http.TimeFormat))
	}

	resp, err := c.doRequest(ctx, rawURL, header)
	if err != nil {
		return ArchiveRef{}, err
	}
	defer func() { _ = resp.Body.Close() }() // read-only HTTP response body

	switch resp.StatusCode {
	case http.StatusNotModified:
		if !haveLocal {
			return ArchiveRef{}, &StatusError{URL: rawURL, Code: resp.StatusCode}
		}
		c.logger.Info("archive is up to date", "file", name)
		return ref, nil
	case http.StatusOK:
	default:
		return ArchiveRef{}, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	lastModified, lmErr := http.ParseTime(resp.Header.Get("Last-Modified"))
	hasLastModified := lmErr == nil
	if haveLocal && hasLastModified && !lastModified.After(local.ModTime()) &&
		resp.ContentLength == local.Size() {
		c.logger.Info("archive is up to date", "file", name)
		return ref, nil
	}

	c.logger.Info("downloading archive", "url", rawURL)
	if err := writeAtomically(resp.Body, ref.Path); err != nil {
		return ArchiveRef{}, err
	}
	if hasLastModified {
		if err := os.Chtimes(ref.Path, time.Time{}, lastModified); err != nil {
			return ArchiveRef{}, fmt.Errorf("setting modification time: %w", err)
		}
	}

	return ref, nil
}

// writeAtomically streams body into a temp file next to target and renames
// it over target once complete.
func writeAtomically(body io.Reader, target string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".fontnexus-download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(target), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(target), err)
	}
	return nil
}
