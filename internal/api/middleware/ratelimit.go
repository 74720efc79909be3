package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/Fantasim/seedcheck/internal/config"
	"github.com/Fantasim/seedcheck/internal/httputil"
)

// RateLimit enforces a server-wide token bucket on the wrapped routes. A
// search request pins every core for seconds, so unthrottled clients can
// wedge the host.
func RateLimit(rps, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("request rate limited",
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr,
				)
				httputil.Error(w, http.StatusTooManyRequests, config.ErrorRateLimited, "too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
