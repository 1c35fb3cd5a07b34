// Package logging wraps log/slog with a single-line text handler in the
// style of rcornwell/S370's util/logger: a mutex-guarded slog.Handler
// writing to a plain io.Writer, selectable by level at process start.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler that serializes writes to out behind a mutex,
// so concurrent loggers derived via WithAttrs/WithGroup share one output
// stream without interleaving partial lines.
type Handler struct {
	h  slog.Handler
	mu *sync.Mutex
}

// NewHandler returns a text-formatted Handler writing records at level
// and above to out.
func NewHandler(out *os.File, level slog.Level) *Handler {
	return &Handler{
		h:  slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}),
		mu: &sync.Mutex{},
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.h.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h: h.h.WithAttrs(attrs), mu: h.mu}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h: h.h.WithGroup(name), mu: h.mu}
}

// LevelFromEnv reads BITMACHINE_LOG_LEVEL ("debug", "info", "warn",
// "error"; case-insensitive) and returns the corresponding level,
// defaulting to info when unset or unrecognized.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("BITMACHINE_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to stderr at level.
func New(level slog.Level) *slog.Logger {
	return slog.New(NewHandler(os.Stderr, level))
}
