package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// routePattern returns the chi route pattern of the request, falling back
// to the raw path before routing has happened
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func requestAttrs(r *http.Request) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("http.request.method", r.Method),
		attribute.String("http.route", routePattern(r)),
		attribute.String("server.address", r.Host),
	}
}

func passThrough(next http.Handler) http.Handler { return next }

// ActiveRequestsMiddleware tracks in-flight storefront requests.
// Register it after routing middleware so route patterns are available.
func ActiveRequestsMiddleware(meter metric.Meter) func(next http.Handler) http.Handler {
	active, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP server requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passThrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := &inflight{ResponseWriter: w, request: r, counter: active}
			defer req.end()
			next.ServeHTTP(req, r)
		})
	}
}

// inflight counts a request as active from its first write, once chi has
// resolved the route pattern, until the handler returns
type inflight struct {
	http.ResponseWriter
	request *http.Request
	counter metric.Int64UpDownCounter
	attrs   metric.MeasurementOption
}

func (f *inflight) WriteHeader(statusCode int) {
	f.begin()
	f.ResponseWriter.WriteHeader(statusCode)
}

func (f *inflight) Write(b []byte) (int, error) {
	f.begin()
	return f.ResponseWriter.Write(b)
}

func (f *inflight) begin() {
	if f.attrs != nil {
		return
	}
	f.attrs = metric.WithAttributeSet(attribute.NewSet(requestAttrs(f.request)...))
	f.counter.Add(f.request.Context(), 1, f.attrs)
}

func (f *inflight) end() {
	f.begin()
	f.counter.Add(f.request.Context(), -1, f.attrs)
}

// DurationMillisecondsMiddleware records request duration in milliseconds
// next to the seconds based duration otelhttp reports
func DurationMillisecondsMiddleware(meter metric.Meter) func(next http.Handler) http.Handler {
	duration, err := meter.Float64Histogram(
		"http.server.request.duration.ms",
		metric.WithDescription("HTTP server request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return passThrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			attrs := append(requestAttrs(r), attribute.Int("http.response.status_code", ww.Status()))
			duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000,
				metric.WithAttributes(attrs...))
		})
	}
}

// HTTPRouteContext makes every log line written while handling the
// request carry http.route, and renames the request span after the
// matched pattern once routing is done.
func HTTPRouteContext() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := telemetry.WithHTTPRouteFunc(r.Context(), func() string { return routePattern(r) })
			next.ServeHTTP(w, r.WithContext(ctx))

			trace.SpanFromContext(ctx).SetName(r.Method + " " + routePattern(r))
		})
	}
}

// StructuredLogger logs one JSON line per request. Register it after
// chi's RequestID so the line carries request.id.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			logger.LogAttrs(r.Context(), levelForStatus(ww.Status()), "HTTP request completed",
				slog.String("request.id", middleware.GetReqID(r.Context())),
				slog.String("http.request.method", r.Method),
				slog.String("http.route", routePattern(r)),
				slog.String("url.path", r.URL.Path),
				slog.String("url.query", r.URL.RawQuery),
				slog.Int("http.response.status_code", ww.Status()),
				slog.Int("http.response.body.size", ww.BytesWritten()),
				slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
				slog.String("client.address", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
			)
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
