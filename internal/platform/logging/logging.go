// Package logging builds the service's slog loggers and carries them through
// request and task contexts.
//
//	logger := logging.New("info", "json", os.Stderr)
//	ctx, log := logging.With(ctx, slog.String("article_id", id))
//	log.ErrorContext(ctx, "saving article failed",
//	    slog.String("operation", "SaveArticle"),
//	    slog.Any("error", err),
//	)
//
// Inside an HTTP request the context logger already carries request_id and
// correlation_id; inside a running task it carries task_id and task.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// New returns a logger writing to w. format "text" selects the logfmt-style
// handler and anything else JSON. Source locations are added at debug level.
// Every attribute passes through the redactor.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactor(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel accepts the names slog understands, in any case and with
// offsets such as "warn+2". Anything else falls back to info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// With derives a child of the context logger carrying args and stores it
// back, returning both.
func With(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := FromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}
