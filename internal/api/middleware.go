package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DemoUserID scopes requests that carry no X-User-ID header. Full
// authentication is out of scope; the header keeps per-user rows separated.
const DemoUserID = "demo-user"

type ctxKey int

const userIDKey ctxKey = iota

func withUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if id == "" {
			id = DemoUserID
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

func userID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return DemoUserID
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
