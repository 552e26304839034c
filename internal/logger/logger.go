// Package logger holds the process-wide structured logger shared by the
// rtscene sub-packages.
//
// The root package exposes SetLogger/Logger; sub-packages read the current
// logger through [L] to avoid an import cycle with the root.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that discards all output.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

var ptr atomic.Pointer[slog.Logger]

func init() {
	ptr.Store(Nop())
}

// Set stores l as the active logger. A nil logger restores silent output.
func Set(l *slog.Logger) {
	if l == nil {
		l = Nop()
	}
	ptr.Store(l)
}

// L returns the active logger. Safe for concurrent use.
func L() *slog.Logger {
	return ptr.Load()
}
