package logging

import (
	"context"
	"log/slog"
)

// NoopHandler discards every record. It backs NewNop loggers in tests and in
// components constructed without logging wired up.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }
func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler        { return NoopHandler{} }
func (NoopHandler) WithGroup(string) slog.Handler             { return NoopHandler{} }

// NewNop returns a logger that silently drops all records.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}
