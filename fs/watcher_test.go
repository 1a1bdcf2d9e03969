package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/lunrstore/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	t.Parallel()

	t.Run("calls onChange when the store is rewritten", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "lunr.store.js")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var calls atomic.Int32
		done := make(chan error, 1)
		go func() {
			done <- fs.Watch(ctx, path, func() { calls.Add(1) })
		}()

		// The watcher may not be registered yet, so keep rewriting.
		assert.Eventually(t, func() bool {
			_ = os.WriteFile(path, []byte("[]"), 0o644)
			return calls.Load() > 0
		}, 5*time.Second, 50*time.Millisecond)

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("ignores other files in the directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "lunr.store.js")
		other := filepath.Join(dir, "main.css")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var calls atomic.Int32
		done := make(chan error, 1)
		go func() {
			done <- fs.Watch(ctx, path, func() { calls.Add(1) })
		}()

		for range 5 {
			require.NoError(t, os.WriteFile(other, []byte("body {}"), 0o644))
			time.Sleep(20 * time.Millisecond)
		}
		time.Sleep(2 * fs.WatchDebounce)

		assert.Zero(t, calls.Load())
		cancel()
		require.NoError(t, <-done)
	})

	t.Run("fails when the directory does not exist", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "lunr.store.js")

		err := fs.Watch(context.Background(), path, func() {})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "watching")
	})
}
