package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SessionMaxAge is how long the session cookie survives in the browser
const SessionMaxAge = 365 * 24 * time.Hour

type sessionKey struct{}

// SessionCookie identifies the browser session by a UUID cookie, issuing a
// new one when the cookie is missing or malformed. The ID is placed on the
// request context and on the active span.
func SessionCookie(name string, secure bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(name); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					sessionID = id.String()
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(SessionMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("session.id", sessionID))

			ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
			ctx = telemetry.WithSessionID(ctx, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session ID set by SessionCookie
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
