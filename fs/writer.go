package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/lunr"
)

// Ensure Writer implements lunrstore.CollectionWriter at compile time.
var _ lunrstore.CollectionWriter = (*Writer)(nil)

// Writer writes a store file with atomic replace semantics.
// The collection is encoded to path.tmp and renamed onto path on success.
type Writer struct {
	path string
	opts lunr.EncodeOptions
}

// NewWriter creates a Writer for path using the given encoding options.
func NewWriter(path string, opts lunr.EncodeOptions) *Writer {
	return &Writer{path: path, opts: opts}
}

func (w *Writer) tempPath() string {
	return w.path + ".tmp"
}

// WriteCollection encodes records and replaces the store file.
func (w *Writer) WriteCollection(ctx context.Context, records []*lunrstore.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	if err := w.save(records); err != nil {
		_ = w.abort()
		return err
	}
	return w.commit()
}

func (w *Writer) save(records []*lunrstore.Record) error {
	f, err := os.OpenFile(w.tempPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := lunr.Encode(f, records, w.opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// commit atomically renames the temp file onto the final path.
func (w *Writer) commit() error {
	return os.Rename(w.tempPath(), w.path)
}

func (w *Writer) abort() error {
	return os.Remove(w.tempPath())
}
