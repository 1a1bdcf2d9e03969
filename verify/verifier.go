// Package verify checks a collection against the published site: every
// record's page must be reachable and show the record's title.
package verify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/lunrstore"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Verifier.Concurrency is not positive.
const DefaultConcurrency = 4

// Verifier fetches the page behind every record and compares titles.
type Verifier struct {
	Fetcher     lunrstore.Fetcher
	Titles      lunrstore.TitleExtractor
	RateLimiter lunrstore.DomainLimiter // optional
	Concurrency int

	// RetryDelays overrides DefaultRetryDelays. An empty non-nil slice
	// disables retries.
	RetryDelays []time.Duration
}

// Verify checks every record and returns the issues found in record order.
// Per-record failures become issues; only context cancellation is returned
// as an error. progress, if non-nil, is called once per record from the
// calling goroutine.
func (v *Verifier) Verify(ctx context.Context, records []*lunrstore.Record, progress lunrstore.VerifyProgressFunc) ([]lunrstore.Issue, error) {
	concurrency := v.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := v.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	type result struct {
		index int
		issue *lunrstore.Issue
	}
	resultCh := make(chan result, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, r := range records {
			g.Go(func() error {
				issue, err := v.check(gctx, i, r, delays)
				if err != nil {
					return err
				}
				resultCh <- result{index: i, issue: issue}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	issues := make([]*lunrstore.Issue, len(records))
	completed := 0
	for res := range resultCh {
		issues[res.index] = res.issue
		completed++
		if progress != nil {
			progress(lunrstore.VerifyProgress{
				URL:       records[res.index].URL,
				Completed: completed,
				Total:     len(records),
				Issue:     res.issue,
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []lunrstore.Issue
	for _, issue := range issues {
		if issue != nil {
			out = append(out, *issue)
		}
	}
	return out, nil
}

// check verifies a single record. It returns an error only when ctx is done.
func (v *Verifier) check(ctx context.Context, index int, r *lunrstore.Record, delays []time.Duration) (*lunrstore.Issue, error) {
	unreachable := func(msg string) *lunrstore.Issue {
		return &lunrstore.Issue{Index: index, URL: r.URL, Kind: lunrstore.IssueUnreachable, Message: msg}
	}

	u, err := url.Parse(r.URL)
	if err != nil || u.Host == "" {
		return unreachable("url is not fetchable"), nil
	}

	if v.RateLimiter != nil {
		if err := v.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := fetchWithRetry(ctx, v.Fetcher, r.URL, delays)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return unreachable(fmt.Sprintf("fetch failed: %s", errorText(err))), nil
	}

	title, err := v.Titles.ExtractTitle(html)
	if err != nil {
		return &lunrstore.Issue{Index: index, URL: r.URL, Kind: lunrstore.IssueTitleMismatch, Message: "page has no title"}, nil
	}
	if !titlesMatch(r.Title, title) {
		return &lunrstore.Issue{
			Index:   index,
			URL:     r.URL,
			Kind:    lunrstore.IssueTitleMismatch,
			Message: fmt.Sprintf("page title %q does not match %q", title, r.Title),
		}, nil
	}
	return nil, nil
}

// titlesMatch reports whether the page title contains the record title, or
// the other way round, ignoring case, backticks and whitespace runs.
// Markdown titles keep backticks that the rendered page drops.
func titlesMatch(recordTitle, pageTitle string) bool {
	a, b := normalizeTitle(recordTitle), normalizeTitle(pageTitle)
	if a == "" || b == "" {
		return a == b
	}
	return strings.Contains(b, a) || strings.Contains(a, b)
}

func normalizeTitle(s string) string {
	s = strings.ReplaceAll(s, "`", "")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func errorText(err error) string {
	if code := lunrstore.ErrorCode(err); code != lunrstore.EINTERNAL {
		return lunrstore.ErrorMessage(err)
	}
	return err.Error()
}
