package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/lunrstore"
	main "github.com/fwojciec/lunrstore/cmd/lunrstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeJS = `var store = [{
    "title": "Fastpages Notebook Blog Post",
    "excerpt": "A tutorial of fastpages for Jupyter notebooks.",
    "categories": ["fastpages","jupyter"],
    "tags": [],
    "url": "https://example.org/blog/jupyter/2020/02/20/test.html"
  },{
    "title": "An Example Markdown Post",
    "excerpt": "A minimal example of using markdown with fastpages.",
    "categories": ["markdown"],
    "tags": [],
    "url": "https://example.org/blog/markdown/2020/01/14/test-markdown-post.html"
  }]
`

func writeStore(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	m := main.NewMain()
	m.ConfigPaths = nil
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_List(t *testing.T) {
	t.Parallel()

	path := writeStore(t, t.TempDir(), "lunr.store.js", storeJS)

	stdout, _, err := run(t, "list", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, "0  Fastpages Notebook Blog Post  https://example.org/blog/jupyter/2020/02/20/test.html  [fastpages, jupyter]")
	assert.Contains(t, stdout, "1  An Example Markdown Post")
}

func TestMain_Run_Check(t *testing.T) {
	t.Parallel()

	t.Run("clean store passes", func(t *testing.T) {
		t.Parallel()

		path := writeStore(t, t.TempDir(), "lunr.store.js", storeJS)

		stdout, _, err := run(t, "check", path)

		require.NoError(t, err)
		assert.Contains(t, stdout, "2 records, no issues")
	})

	t.Run("duplicate url fails", func(t *testing.T) {
		t.Parallel()

		path := writeStore(t, t.TempDir(), "lunr.store.json", `[
			{"title": "A", "excerpt": "", "categories": [], "tags": [], "url": "https://example.org/a.html"},
			{"title": "B", "excerpt": "", "categories": [], "tags": [], "url": "https://example.org/a.html"}
		]`)

		stdout, _, err := run(t, "check", path)

		require.Error(t, err)
		assert.Contains(t, stdout, "#1 duplicate_url: duplicate of record #0")
	})

	t.Run("malformed store fails", func(t *testing.T) {
		t.Parallel()

		path := writeStore(t, t.TempDir(), "lunr.store.json", `[{"title": "A", "excerpt": "", "categories": [], "tags": []}]`)

		_, stderr, err := run(t, "check", path)

		require.Error(t, err)
		assert.Equal(t, lunrstore.EMALFORMED, lunrstore.ErrorCode(err))
		assert.Contains(t, stderr, `record 0: missing field "url"`)
	})
}

func TestMain_Run_FmtThenDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeStore(t, dir, "lunr.store.js", storeJS)
	out := filepath.Join(dir, "out", "store.json")

	_, _, err := run(t, "fmt", src, "-o", out, "--format", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("[\n")), "json output should be a bare array")

	stdout, _, err := run(t, "diff", src, out)
	require.NoError(t, err)
	assert.Equal(t, "No changes.\n", stdout)
}

func TestMain_Run_VerboseLogsLoad(t *testing.T) {
	t.Parallel()

	path := writeStore(t, t.TempDir(), "lunr.store.js", storeJS)

	_, stderr, err := run(t, "--verbose", "list", path)

	require.NoError(t, err)
	assert.Contains(t, stderr, "store load")
	assert.Contains(t, stderr, "count=2")
}

func TestMain_Run_ConfigFileSetsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeStore(t, dir, "lunr.store.js", storeJS)
	out := filepath.Join(dir, "store.json")
	config := writeStore(t, dir, "lunrstore.toml", "[fmt]\nformat = \"json\"\n")

	m := main.NewMain()
	m.ConfigPaths = []string{config}
	err := m.Run(context.Background(), []string{"fmt", src, "-o", out}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("[")), "config should select json output")
}

func TestMain_Run_FmtKeepsSourceVariable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeStore(t, dir, "search.js", `const docs = [{"title":"A","excerpt":"","categories":[],"tags":[],"url":"https://example.org/a.html"}];`)

	t.Run("keeps the source name by default", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "search.js")
		_, _, err := run(t, "fmt", src, "-o", out)
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("var docs = [")), "got %q", data)
	})

	t.Run("--var overrides the source name", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "search.js")
		_, _, err := run(t, "fmt", src, "-o", out, "--var", "store")
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("var store = [")), "got %q", data)
	})
}
