package stats

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/adibarra/shadle/pkg/http/errors"
)

// HTTPHandler exposes REST endpoints for stats queries.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a stats HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "stats_http").Logger(),
	}
}

// HandleGet responds with the published stats for one puzzle.
// Route: GET /v1/stats?puzzleId=...
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	puzzleID := r.URL.Query().Get("puzzleId")
	if puzzleID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Puzzle ID is required.", "puzzleId")
		return
	}

	stats, err := h.svc.Get(r.Context(), puzzleID)
	if err != nil {
		h.logger.Error().Err(err).Str("puzzle_id", puzzleID).Msg("failed to fetch puzzle stats")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStatsFetchFailed, "Failed to fetch puzzle stats.")
		return
	}

	respondJSON(w, stats)
}

// HandleGetRandom responds with the combined stats for the random pool.
// Route: GET /v1/stats/random
func (h *HTTPHandler) HandleGetRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.svc.Get(r.Context(), RandomPoolID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch random pool stats")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStatsFetchFailed, "Failed to fetch random puzzle stats.")
		return
	}

	respondJSON(w, stats)
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
