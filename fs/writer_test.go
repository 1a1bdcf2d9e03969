package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/fs"
	"github.com/fwojciec/lunrstore/lunr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Store Replacement
// The writer encodes to a temp file and renames it into place.

func TestWriter_WriteCollectionRoundTrips(t *testing.T) {
	t.Parallel()

	// Given a collection
	records := []*lunrstore.Record{
		{Title: "Intro", Excerpt: "...", Categories: []string{"arviz", "data"}, URL: "https://example.org/a.html"},
		{Title: "Second", Tags: []string{"x"}, URL: "https://example.org/b.html"},
	}
	path := filepath.Join(t.TempDir(), "assets", "lunr.store.js")

	// When I write it
	err := fs.NewWriter(path, lunr.EncodeOptions{}).WriteCollection(context.Background(), records)
	require.NoError(t, err)

	// Then loading it back yields the same records
	loaded, err := fs.NewLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, len(records))
	for i := range records {
		assert.True(t, records[i].Equal(loaded[i]), "record %d differs", i)
	}

	// And no temp file is left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_WriteCollectionReplacesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing store
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0644))

	// When I write a new collection as JSON
	err := fs.NewWriter(path, lunr.EncodeOptions{Format: lunr.FormatJSON}).WriteCollection(context.Background(), nil)
	require.NoError(t, err)

	// Then the file holds the new collection
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriter_FailedEncodeKeepsOriginal(t *testing.T) {
	t.Parallel()

	// Given an existing store
	path := filepath.Join(t.TempDir(), "store.js")
	require.NoError(t, os.WriteFile(path, []byte("var store = [];"), 0644))

	// When I write a collection with an invalid record
	err := fs.NewWriter(path, lunr.EncodeOptions{}).WriteCollection(context.Background(), []*lunrstore.Record{{Title: "no url"}})

	// Then the write fails with EMALFORMED
	require.Error(t, err)
	assert.Equal(t, lunrstore.EMALFORMED, lunrstore.ErrorCode(err))

	// And the original file is untouched
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var store = [];", string(data))

	// And the temp file was removed
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
