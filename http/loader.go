package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/lunr"
)

// Ensure Loader implements lunrstore.Loader at compile time.
var _ lunrstore.Loader = (*Loader)(nil)

// Loader reads a store published on a site, e.g.
// https://example.org/blog/assets/js/lunr/lunr.store.js.
type Loader struct {
	url    string
	client *http.Client
	opts   lunr.EncodeOptions
}

// NewLoader creates a Loader for the store at url.
func NewLoader(url string, opts ...Option) *Loader {
	return &Loader{url: url, client: newClient(opts)}
}

// Load downloads and decodes the store. The download is not retried: the
// store is static, so a malformed payload stays malformed.
func (l *Loader) Load(ctx context.Context) ([]*lunrstore.Record, error) {
	body, err := get(ctx, l.client, l.url)
	if lunrstore.ErrorCode(err) == lunrstore.ENOTFOUND {
		return nil, lunrstore.Errorf(lunrstore.ENOTFOUND, "store %q not found", l.url)
	}
	if err != nil {
		return nil, fmt.Errorf("downloading store: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("downloading store: %w", err)
	}
	records, opts, err := lunr.DecodeStore(data)
	if err != nil {
		return nil, err
	}
	l.opts = opts
	return records, nil
}

// StoreOptions returns the wrapper and variable name of the last store
// loaded successfully.
func (l *Loader) StoreOptions() lunr.EncodeOptions {
	return l.opts
}
