package mock

import (
	"context"

	"github.com/fwojciec/lunrstore"
)

var _ lunrstore.CollectionWriter = (*CollectionWriter)(nil)

// CollectionWriter is a mock implementation of lunrstore.CollectionWriter.
type CollectionWriter struct {
	WriteCollectionFn func(ctx context.Context, records []*lunrstore.Record) error
}

func (w *CollectionWriter) WriteCollection(ctx context.Context, records []*lunrstore.Record) error {
	return w.WriteCollectionFn(ctx, records)
}
