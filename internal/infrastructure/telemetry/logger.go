package telemetry

import (
	"context"
	"io"
	"log/slog"

	"github.com/mrops-br/entity-storefront/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

// logKey names a request scoped value copied onto every log record
type logKey string

const (
	httpRouteKey logKey = "http.route"
	sessionIDKey logKey = "session.id"
)

// requestKeys are added to records in this order
var requestKeys = []logKey{httpRouteKey, sessionIDKey}

// WithHTTPRoute adds the matched route pattern to the context
func WithHTTPRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, httpRouteKey, route)
}

// WithHTTPRouteFunc stores a resolver for routers that only know the
// pattern once matching has finished
func WithHTTPRouteFunc(ctx context.Context, route func() string) context.Context {
	return context.WithValue(ctx, httpRouteKey, route)
}

// HTTPRouteFromContext extracts the route pattern from context
func HTTPRouteFromContext(ctx context.Context) string {
	return stringValue(ctx, httpRouteKey)
}

// WithSessionID adds the storefront session ID to the context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext extracts the storefront session ID from context
func SessionIDFromContext(ctx context.Context) string {
	return stringValue(ctx, sessionIDKey)
}

func stringValue(ctx context.Context, key logKey) string {
	switch v := ctx.Value(key).(type) {
	case string:
		return v
	case func() string:
		return v()
	}
	return ""
}

// requestHandler decorates records with the active span and the request
// values stored in the context
type requestHandler struct {
	slog.Handler
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	for _, key := range requestKeys {
		if v := stringValue(ctx, key); v != "" {
			r.AddAttrs(slog.String(string(key), v))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return requestHandler{h.Handler.WithGroup(name)}
}

// newLogger builds the JSON logger shared by every component. Unknown or
// empty levels log at info.
func newLogger(cfg *config.TelemetryConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	handler := requestHandler{slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})}
	return slog.New(handler).With(
		slog.String("service.name", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}
