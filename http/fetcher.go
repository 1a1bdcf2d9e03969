// Package http provides HTTP-based access to published sites: loading a
// deployed search store, fetching pages and reading sitemaps.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/lunrstore"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// UserAgent identifies requests made by this package.
const UserAgent = "lunrstore (+https://github.com/fwojciec/lunrstore)"

// Ensure Fetcher implements lunrstore.Fetcher at compile time.
var _ lunrstore.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML using plain HTTP requests.
// JavaScript is not executed, which is sufficient for statically
// generated sites.
type Fetcher struct {
	client *http.Client
}

// Option configures a Fetcher or Loader.
type Option func(*options)

type options struct {
	client  *http.Client
	timeout time.Duration
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithClient sets the HTTP client used for requests. The client's own
// Timeout is replaced by the configured timeout.
func WithClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

func newClient(opts []Option) *http.Client {
	o := &options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(o)
	}

	client := &http.Client{}
	if o.client != nil {
		c := *o.client
		client = &c
	}
	client.Timeout = o.timeout
	return client
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{client: newClient(opts)}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, f.client, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// get performs a GET request and returns the body of a 200 response.
// A 404 is reported as ENOTFOUND.
func get(ctx context.Context, client *http.Client, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, lunrstore.Errorf(lunrstore.ENOTFOUND, "HTTP 404 for %s", targetURL)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
}
