package mock

import (
	"context"

	"github.com/fwojciec/lunrstore"
)

var _ lunrstore.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of lunrstore.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL)
}

var _ lunrstore.DuplicateDetector = (*DuplicateDetector)(nil)

// DuplicateDetector is a mock implementation of lunrstore.DuplicateDetector.
type DuplicateDetector struct {
	FindDuplicatesFn func(records []*lunrstore.Record) []lunrstore.Issue
}

func (d *DuplicateDetector) FindDuplicates(records []*lunrstore.Record) []lunrstore.Issue {
	return d.FindDuplicatesFn(records)
}
