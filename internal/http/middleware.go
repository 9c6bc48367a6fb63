package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/cart"
	"github.com/Ansh037/ShopifyCheckout/internal/metrics"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

// SessionCookie carries the opaque session id that selects a cart.
const SessionCookie = "storefront_session"

// SessionStore hands out one cart per session.
type SessionStore interface {
	Create() (string, *cart.Store)
	Get(id string) (*cart.Store, bool)
}

// RequestIDMiddleware makes the request id available to logger.WithContext
// and echoes it back to the client. It reuses chi's id when present.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			requestID = r.Header.Get("X-Request-ID")
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionMiddleware resolves the session cookie to a cart. It never creates a
// session itself: handlers that modify the cart call ensureCart, so read-only
// and cookieless requests leave the registry untouched.
func SessionMiddleware(sessions SessionStore, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := &sessionScope{sessions: sessions, secure: secure}
			if c, err := r.Cookie(SessionCookie); err == nil {
				scope.store, _ = sessions.Get(c.Value)
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type sessionKey struct{}

type sessionScope struct {
	sessions SessionStore
	secure   bool
	store    *cart.Store
}

// existingCart returns the request's cart, or nil when the client has no
// live session.
func existingCart(ctx context.Context) *cart.Store {
	scope, ok := ctx.Value(sessionKey{}).(*sessionScope)
	if !ok {
		return nil
	}
	return scope.store
}

// ensureCart returns the request's cart, starting a session and setting the
// cookie when there is none. Call it before writing the response.
func ensureCart(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	scope, ok := r.Context().Value(sessionKey{}).(*sessionScope)
	if !ok {
		return nil, false
	}
	if scope.store != nil {
		return scope.store, true
	}

	id, store := scope.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   scope.secure,
		SameSite: http.SameSiteLaxMode,
	})
	scope.store = store
	return store, true
}

// MetricsMiddleware records request counts and latencies labelled by route
// pattern rather than raw path.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(float64(time.Since(start).Milliseconds()))
	})
}

// AccessLogMiddleware writes one structured line per request.
func AccessLogMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.WithContext(r.Context(), log).Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
