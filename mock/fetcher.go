package mock

import (
	"context"

	"github.com/fwojciec/lunrstore"
)

var _ lunrstore.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of lunrstore.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ lunrstore.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor is a mock implementation of lunrstore.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(html string) (string, error)
}

func (e *TitleExtractor) ExtractTitle(html string) (string, error) {
	return e.ExtractTitleFn(html)
}

var _ lunrstore.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of lunrstore.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
