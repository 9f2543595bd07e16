package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/folio/internal/common"
)

// Request headers accepted as an alternative to the session cookies.
const (
	headerUserID          = "X-Folio-User-ID"
	headerDisplayCurrency = "X-Folio-Display-Currency"
	headerCorrelationID   = "X-Correlation-ID"
)

// responseWriter wraps http.ResponseWriter to capture status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// recoveryMiddleware catches panics and returns 500.
func recoveryMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("panic", fmt.Sprintf("%v", rec)).
						Str("path", r.URL.Path).
						Msg("Panic recovered in HTTP handler")
					WriteError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// correlationIDMiddleware extracts or generates a correlation ID.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get("X-Request-ID")
		if corrID == "" {
			corrID = r.Header.Get(headerCorrelationID)
		}
		if corrID == "" {
			corrID = uuid.New().String()[:8]
		}
		w.Header().Set(headerCorrelationID, corrID)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			event := logger.Debug()
			if rw.statusCode >= 500 {
				event = logger.Error()
			} else if rw.statusCode >= 400 {
				event = logger.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Int("bytes", rw.bytesWritten).
				Dur("duration", time.Since(start)).
				Str("correlation_id", w.Header().Get(headerCorrelationID)).
				Msg("HTTP request")
		})
	}
}

// sessionMiddleware resolves the session from the Authorization header and
// X-Folio-User-ID, falling back to the session cookies. A Session is stored in
// the request context only when both token and user id are present.
func sessionMiddleware(cfg common.SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess := resolveSession(r, cfg); sess.Valid() {
				r = r.WithContext(common.WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveSession(r *http.Request, cfg common.SessionConfig) *common.Session {
	sess := &common.Session{
		DisplayCurrency: strings.TrimSpace(r.Header.Get(headerDisplayCurrency)),
	}

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		sess.Token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	} else if c, err := r.Cookie(cfg.TokenCookie); err == nil {
		sess.Token = c.Value
	}

	if id := r.Header.Get(headerUserID); id != "" {
		sess.UserID = strings.TrimSpace(id)
	} else if c, err := r.Cookie(cfg.UserCookie); err == nil {
		sess.UserID = c.Value
	}

	return sess
}

// requireAPISession answers 401 when the request has no session.
func requireAPISession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if common.SessionFromContext(r.Context()) == nil {
			WriteError(w, http.StatusUnauthorized, "Not signed in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requirePageSession redirects to the login page when the request has no session.
func requirePageSession(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if common.SessionFromContext(r.Context()) == nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
