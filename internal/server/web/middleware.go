package web

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/accountdesk/internal/logging"
	"github.com/dmitrijs2005/accountdesk/internal/server/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

// claimsFromContext returns the session claims placed by sessionMiddleware,
// or nil for an anonymous request.
func claimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(sessionKey).(*auth.Claims)
	return claims
}

// sessionMiddleware attaches verified session claims to the request context
// and reissues the cookie once a session has passed half of its window.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := s.sessionClaims(r)
		if claims != nil {
			if auth.ShouldRenew(claims, time.Now()) {
				if err := s.renewSession(w, claims); err != nil {
					s.logger.Warn(r.Context(), "session renewal failed", "error", err)
				}
			}
			r = r.WithContext(context.WithValue(r.Context(), sessionKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth gates a handler on "caller holds a valid authenticated
// session" and redirects anonymous callers to the login page.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claimsFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/account/login?returnUrl="+r.URL.Path, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with method, path, status and
// duration.
func requestLogger(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// responseWriter captures the status code for logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
