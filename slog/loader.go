// Package slog provides logging decorators for lunrstore services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lunrstore"
)

// Ensure LoggingLoader implements lunrstore.Loader.
var _ lunrstore.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging.
type LoggingLoader struct {
	next   lunrstore.Loader
	source string
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader. source names the store
// (a path or URL) in log records.
func NewLoggingLoader(next lunrstore.Loader, source string, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, source: source, logger: logger}
}

// Load delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) Load(ctx context.Context) (records []*lunrstore.Record, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"source", l.source,
			"count", len(records),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", lunrstore.ErrorCode(err), "err", err)
		}
		l.logger.Info("store load", attrs...)
	}(time.Now())
	return l.next.Load(ctx)
}

// Unwrap returns the decorated loader.
func (l *LoggingLoader) Unwrap() lunrstore.Loader {
	return l.next
}
