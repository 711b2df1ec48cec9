// Package logging provides the package-level *slog.Logger used for
// pipeline debug output.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// logger holds the process-wide logger. Defaults to nil, which makes
// Logger() hand out a discard logger so library consumers see no output
// unless they opt in.
var logger atomic.Pointer[slog.Logger]

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger configures the package-level logger. Pass nil to disable
// logging. Safe for concurrent use.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		logger.Store(newDiscardLogger())
	} else {
		logger.Store(sl)
	}
}

// Logger returns the package-level logger, or a discard logger when
// none has been set. Safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = newDiscardLogger()
		logger.Store(l)
	}
	return l
}
