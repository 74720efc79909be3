package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Fantasim/seedcheck/internal/config"
	"github.com/Fantasim/seedcheck/internal/hdkey"
	"github.com/Fantasim/seedcheck/internal/httputil"
	"github.com/Fantasim/seedcheck/internal/search"
)

// searchRequest is the JSON body for POST /api/search.
type searchRequest struct {
	Mnemonic string `json:"mnemonic"`
	Address  string `json:"address"`
}

// searchResponse reports the search outcome. Match fields are omitted when
// the space was exhausted without a hit.
type searchResponse struct {
	Found bool          `json:"found"`
	Match *search.Match `json:"match,omitempty"`
}

// Search handles POST /api/search: derive the key tree for the submitted
// mnemonic and scan the fixed template set for the target address.
func Search(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("invalid search request body",
				"error", err,
				"remoteAddr", r.RemoteAddr,
			)
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		req.Mnemonic = strings.TrimSpace(req.Mnemonic)
		if req.Mnemonic == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "mnemonic is required")
			return
		}

		target, err := hdkey.ParseAddress(strings.TrimSpace(req.Address))
		if err != nil {
			slog.Warn("invalid target address",
				"address", req.Address,
				"error", err,
			)
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidAddress, "not a valid legacy address: "+err.Error())
			return
		}

		slog.Info("search requested",
			"words", len(strings.Fields(req.Mnemonic)),
			"target", target.String(),
			"remoteAddr", r.RemoteAddr,
		)

		master, err := hdkey.NewMaster(hdkey.SeedFromMnemonic(req.Mnemonic))
		if err != nil {
			slog.Error("master key derivation failed", "error", err)
			httputil.Error(w, http.StatusUnprocessableEntity, config.ErrorSearchFailed, "mnemonic produces an invalid master key")
			return
		}

		limits := search.Limits{
			Accounts:   uint32(cfg.Accounts),
			AddressGap: uint32(cfg.AddressGap),
		}

		match, found, err := search.RunParallel(r.Context(), master, target, limits, cfg.Workers)
		if err != nil {
			slog.Error("search failed",
				"target", target.String(),
				"error", err,
			)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorSearchFailed, "search failed: "+err.Error())
			return
		}

		slog.Info("search finished",
			"found", found,
			"target", target.String(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)

		httputil.JSON(w, http.StatusOK, searchResponse{
			Found: found,
			Match: match,
		})
	}
}
