package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/lunrstore"
	main "github.com/fwojciec/lunrstore/cmd/lunrstore"
	"github.com/fwojciec/lunrstore/mock"
	"github.com/stretchr/testify/assert"
)

// newDeps returns Dependencies whose Open resolves sources from stores.
func newDeps(t *testing.T, stores map[string][]*lunrstore.Record) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Open: func(source string) lunrstore.Loader {
			return &mock.Loader{
				LoadFn: func(ctx context.Context) ([]*lunrstore.Record, error) {
					records, ok := stores[source]
					if !ok {
						return nil, lunrstore.Errorf(lunrstore.ENOTFOUND, "store %q not found", source)
					}
					return records, nil
				},
			}
		},
		Duplicates: &mock.DuplicateDetector{
			FindDuplicatesFn: func(records []*lunrstore.Record) []lunrstore.Issue {
				return nil
			},
		},
	}
	return deps, stdout, stderr
}

func record(title, url string, categories ...string) *lunrstore.Record {
	if categories == nil {
		categories = []string{}
	}
	return &lunrstore.Record{Title: title, Categories: categories, Tags: []string{}, URL: url}
}

func assertNotFound(t *testing.T, err error, stderr *bytes.Buffer) {
	t.Helper()
	assert.Equal(t, lunrstore.ENOTFOUND, lunrstore.ErrorCode(err))
	assert.Contains(t, stderr.String(), "error:")
}
