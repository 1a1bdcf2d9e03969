package lunrstore

import "context"

// Fetcher retrieves the HTML of a published page.
type Fetcher interface {
	// Fetch returns the response body for url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// TitleExtractor extracts the page title from an HTML document.
// Returns ENOTFOUND when the document has no title.
type TitleExtractor interface {
	ExtractTitle(html string) (string, error)
}

// DomainLimiter provides per-domain rate limiting for outgoing requests.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// VerifyProgress reports progress while published pages are checked.
type VerifyProgress struct {
	URL       string
	Completed int
	Total     int
	Issue     *Issue
}

// VerifyProgressFunc is called as each record is checked.
type VerifyProgressFunc func(VerifyProgress)
