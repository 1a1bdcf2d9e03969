package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/lunrstore"
	main "github.com/fwojciec/lunrstore/cmd/lunrstore"
	"github.com/fwojciec/lunrstore/goquery"
	"github.com/fwojciec/lunrstore/mock"
	"github.com/fwojciec/lunrstore/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCmd_Run(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"https://example.org/intro.html": "<html><head><title>Intro | Blog</title></head></html>",
		"https://example.org/other.html": "<html><head><title>Something else</title></head></html>",
	}
	newVerifier := func() *verify.Verifier {
		return &verify.Verifier{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					html, ok := pages[url]
					if !ok {
						return "", lunrstore.Errorf(lunrstore.ENOTFOUND, "HTTP 404 for %s", url)
					}
					return html, nil
				},
			},
			Titles:      goquery.NewTitleExtractor(),
			Concurrency: 2,
			RetryDelays: []time.Duration{},
		}
	}

	t.Run("succeeds when every page matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, map[string][]*lunrstore.Record{
			"lunr.store.js": {record("Intro", "https://example.org/intro.html")},
		})
		deps.Verifier = newVerifier()
		deps.Progress = true

		err := (&main.VerifyCmd{Source: "lunr.store.js"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "1 pages verified\n", stdout.String())
		assert.Contains(t, stderr.String(), "[1/1] ok https://example.org/intro.html")
	})

	t.Run("reports unreachable and mistitled pages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, map[string][]*lunrstore.Record{
			"lunr.store.js": {
				record("Intro", "https://example.org/intro.html"),
				record("Other", "https://example.org/other.html"),
				record("Missing", "https://example.org/missing.html"),
			},
		})
		deps.Verifier = newVerifier()

		err := (&main.VerifyCmd{Source: "lunr.store.js"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, lunrstore.EINVALID, lunrstore.ErrorCode(err))
		output := stdout.String()
		assert.Contains(t, output, "#1 title_mismatch:")
		assert.Contains(t, output, "#2 unreachable:")
		assert.NotContains(t, output, "#0")
		assert.Empty(t, stderr.String(), "progress is off unless enabled")
	})
}
