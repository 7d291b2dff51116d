// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// defaultMaxTextBytes bounds page and manifest bodies (16 MiB).
const defaultMaxTextBytes = 16 << 20

var (
	// ErrUnexpectedStatus is the sentinel error wrapped by StatusError.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrInvalidEncoding is returned when a text body is not valid UTF-8.
	ErrInvalidEncoding = errors.New("response is not valid UTF-8")
	// ErrTextTooLarge is returned when a text body exceeds the configured limit.
	ErrTextTooLarge = errors.New("response body too large")
)

type (
	// StatusError is returned for any status the caller did not expect.
	StatusError struct {
		URL  string
		Code int
	}

	// Client downloads pages, manifests and archives over HTTP.
	Client struct {
		httpClient   *http.Client
		userAgent    string
		logger       *log.Logger
		maxTextBytes int64
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Unwrap returns ErrUnexpectedStatus for errors.Is.
func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger sets the logger that reports downloads.
func WithLogger(l *log.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = l
	}
}

// WithMaxTextBytes overrides the size limit applied by Text.
func WithMaxTextBytes(n int64) ClientOption {
	return func(cl *Client) {
		cl.maxTextBytes = n
	}
}

// NewClient creates a Client. Defaults: http.DefaultClient, user agent
// "fontnexus/dev", a discarding logger and a 16 MiB text limit.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:   http.DefaultClient,
		userAgent:    "fontnexus/dev",
		logger:       log.New(io.Discard),
		maxTextBytes: defaultMaxTextBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Text fetches url and returns its body, which must be UTF-8.
func (c *Client) Text(ctx context.Context, url string) (string, error) {
	resp, err := c.doRequest(ctx, url, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }() // read-only HTTP response body

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxTextBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(body)) > c.maxTextBytes {
		return "", fmt.Errorf("%s: %w (limit %d bytes)", url, ErrTextTooLarge, c.maxTextBytes)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%s: %w", url, ErrInvalidEncoding)
	}

	return string(body), nil
}

func (c *Client) doRequest(ctx context.Context, reqURL string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, values := range header {
		req.Header[key] = values
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}
