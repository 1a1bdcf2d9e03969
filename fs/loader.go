// Package fs provides file-based access to search stores.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/lunr"
)

// Ensure Loader implements lunrstore.Loader at compile time.
var _ lunrstore.Loader = (*Loader)(nil)

// Loader reads a store from a file on disk.
type Loader struct {
	path string
	opts lunr.EncodeOptions
}

// NewLoader creates a Loader for the store at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and decodes the whole file. A missing file returns ENOTFOUND.
func (l *Loader) Load(ctx context.Context) ([]*lunrstore.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, lunrstore.Errorf(lunrstore.ENOTFOUND, "store %q not found", l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading store %q: %w", l.path, err)
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
