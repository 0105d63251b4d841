package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type contextKey string

const accountIDKey contextKey = "accountID"

// requestIDMiddleware keeps an incoming X-Request-Id or assigns a new one,
// echoes it in the response and makes every log line of the request carry it.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)

		ctx := logging.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// unmatchedRoute is the route label of requests no pattern matched. The raw
// path is never used as a label.
const unmatchedRoute = "unmatched"

// accessLogMiddleware logs every request: Warn for 4xx, Error for 5xx, Info
// otherwise. Durations go to the request histogram.
func accessLogMiddleware(logger logging.Logger, m *metrics.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				latency := time.Since(start)

				route := unmatchedRoute
				if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				m.ObserveRequest(r.Method, route, status, latency)

				args := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"latency", latency,
					"remote_addr", r.RemoteAddr,
				}

				switch {
				case status >= 500:
					logger.Error(r.Context(), "http request", args...)
				case status >= 400:
					logger.Warn(r.Context(), "http request", args...)
				default:
					logger.Info(r.Context(), "http request", args...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// authMiddleware validates Bearer tokens and injects the account id into
// the request context.
func authMiddleware(accounts AccountService, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get(common.AuthorizationHeaderName)
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "missing access token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) || parts[1] == "" {
				writeError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			accountID, err := accounts.Authenticate(parts[1])
			if err != nil {
				logger.Warn(r.Context(), "rejected access token", "path", r.URL.Path, "error", err)
				if errors.Is(err, common.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "access token expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accountIDFromContext returns the authenticated account id, or 0.
func accountIDFromContext(ctx context.Context) int64 {
	v, _ := ctx.Value(accountIDKey).(int64)
	return v
}
