package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// SwappableHandler is a slog.Handler whose backing handler can be
// replaced atomically while loggers built on it stay valid. The
// manager swaps it when moving from bootstrap to full mode, so every
// logger handed out before the swap picks up the new sinks.
type SwappableHandler struct {
	inner atomic.Pointer[slog.Handler]
}

// NewSwappableHandler wraps an initial backing handler.
func NewSwappableHandler(initial slog.Handler) *SwappableHandler {
	h := &SwappableHandler{}
	h.inner.Store(&initial)
	return h
}

// Swap replaces the backing handler. Safe to call while other
// goroutines are logging.
func (h *SwappableHandler) Swap(next slog.Handler) {
	h.inner.Store(&next)
}

func (h *SwappableHandler) backing() slog.Handler {
	return *h.inner.Load()
}

// Enabled reports whether the backing handler handles the given level.
func (h *SwappableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.backing().Enabled(ctx, level)
}

// Handle forwards the record to the backing handler.
func (h *SwappableHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.backing().Handle(ctx, r)
}

// WithAttrs derives a handler carrying the attributes. The derived
// handler snapshots the current backing handler and does not follow
// later swaps; the manager only derives from the root handler.
func (h *SwappableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewSwappableHandler(h.backing().WithAttrs(attrs))
}

// WithGroup derives a handler carrying the group.
func (h *SwappableHandler) WithGroup(name string) slog.Handler {
	return NewSwappableHandler(h.backing().WithGroup(name))
}
