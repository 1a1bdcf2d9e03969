package mock

import (
	"context"

	"github.com/fwojciec/lunrstore"
)

var _ lunrstore.Loader = (*Loader)(nil)

// Loader is a mock implementation of lunrstore.Loader.
type Loader struct {
	LoadFn func(ctx context.Context) ([]*lunrstore.Record, error)
}

func (l *Loader) Load(ctx context.Context) ([]*lunrstore.Record, error) {
	return l.LoadFn(ctx)
}
