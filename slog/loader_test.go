package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/mock"
	lunrslog "github.com/fwojciec/lunrstore/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("logs source and record count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Loader{
			LoadFn: func(ctx context.Context) ([]*lunrstore.Record, error) {
				return []*lunrstore.Record{{URL: "https://example.org/a.html"}}, nil
			},
		}

		records, err := lunrslog.NewLoggingLoader(inner, "lunr.store.js", logger).Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, records, 1)
		output := buf.String()
		assert.Contains(t, output, "store load")
		assert.Contains(t, output, "source=lunr.store.js")
		assert.Contains(t, output, "count=1")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs error code on malformed store", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Loader{
			LoadFn: func(ctx context.Context) ([]*lunrstore.Record, error) {
				return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "record 0: missing field %q", "url")
			},
		}

		_, err := lunrslog.NewLoggingLoader(inner, "lunr.store.js", logger).Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, lunrstore.EMALFORMED, lunrstore.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "code=malformed")
		assert.Contains(t, output, "count=0")
	})
}

func TestLoggingLoader_Unwrap(t *testing.T) {
	t.Parallel()

	inner := &mock.Loader{}
	l := lunrslog.NewLoggingLoader(inner, "lunr.store.js", slog.New(slog.DiscardHandler))

	assert.Same(t, inner, l.Unwrap())
}
