// Package logging configures the process-wide slog setup and hands out
// named loggers.
package logging

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/hongminglow/packpoint-be/internal/requestctx"
)

// Logger is the logger type handed out by GetLogger.
type Logger = *slog.Logger

// Config holds the logging knobs read from the environment.
type Config struct {
	Level  string
	JSON   bool
	Output io.Writer
}

var (
	mu      sync.RWMutex
	handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
)

// Configure installs the global handler. It should run once at startup,
// before loggers are requested.
func Configure(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}

	mu.Lock()
	handler = &contextHandler{h: h}
	mu.Unlock()

	slog.SetDefault(slog.New(handler))
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(name string) Logger {
	mu.RLock()
	h := handler
	mu.RUnlock()

	return slog.New(h).With("logger", name)
}

// StdLogger adapts a logger for APIs that still want a *log.Logger
// (http.Server.ErrorLog).
func StdLogger(l Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(l.Handler(), level)
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug/info/warn/error to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler decorates records with the trace id and verified uid found
// on the context.
type contextHandler struct {
	h slog.Handler
}

var _ slog.Handler = (*contextHandler)(nil)

func (c *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return c.h.Enabled(ctx, level)
}

func (c *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID, ok := requestctx.TraceIDFromContext(ctx); ok {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	if uid, ok := requestctx.UIDFromContext(ctx); ok {
		r.AddAttrs(slog.String("uid", uid))
	}
	return c.h.Handle(ctx, r)
}

func (c *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{h: c.h.WithAttrs(attrs)}
}

func (c *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{h: c.h.WithGroup(name)}
}
