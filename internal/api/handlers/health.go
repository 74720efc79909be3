package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Fantasim/seedcheck/internal/config"
	"github.com/Fantasim/seedcheck/internal/httputil"
)

// Health returns a handler for the GET /api/health endpoint.
func Health(cfg *config.Config, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("health check requested", "remoteAddr", r.RemoteAddr)

		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":     "ok",
			"version":    version,
			"accounts":   cfg.Accounts,
			"addressGap": cfg.AddressGap,
		})
	}
}
