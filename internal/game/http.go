package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/adibarra/shadle/internal/puzzle"
	httperrors "github.com/adibarra/shadle/pkg/http/errors"
)

// HTTPHandler exposes the guess, history and custom-puzzle endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a game HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "game_http").Logger(),
	}
}

// HandleGuess accepts one guess submission.
// Route: POST /v1/guess
func (h *HTTPHandler) HandleGuess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Malformed request body.")
		return
	}

	resp, err := h.svc.SubmitGuess(r.Context(), req)
	if err != nil {
		h.respondSubmitError(w, req, err)
		return
	}
	respondJSON(w, resp)
}

func (h *HTTPHandler) respondSubmitError(w http.ResponseWriter, req GuessRequest, err error) {
	switch {
	case errors.Is(err, ErrMissingOwner):
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Owner ID is required.", "ownerId")
	case errors.Is(err, ErrMissingPuzzle):
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Puzzle ID is required.", "puzzleId")
	case errors.Is(err, ErrInvalidGuess):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidGuess, "Guess must be exactly 5 valid color letters.")
	case errors.Is(err, ErrFuturePuzzle):
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeFuturePuzzle, "Cannot guess for future puzzle dates.")
	case errors.Is(err, puzzle.ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodePuzzleNotFound, "Puzzle not found.")
	default:
		h.logger.Error().Err(err).Str("puzzle_id", req.PuzzleID).Msg("failed to process guess")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSubmitFailed, "Failed to process guess.")
	}
}

// HandleHistory lists an owner's attempts.
// Route: GET /v1/history?ownerId=...&puzzleId=...
func (h *HTTPHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID := r.URL.Query().Get("ownerId")
	puzzleID := r.URL.Query().Get("puzzleId")

	resp, err := h.svc.History(r.Context(), ownerID, puzzleID)
	if err != nil {
		if errors.Is(err, ErrMissingOwner) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Owner ID is required.", "ownerId")
			return
		}
		h.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to fetch history")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeHistoryFetchFailed, "Failed to fetch history.")
		return
	}
	respondJSON(w, resp)
}

// HandleCreatePuzzle stores a custom puzzle answer.
// Route: POST /v1/puzzles
func (h *HTTPHandler) HandleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreatePuzzleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Malformed request body.")
		return
	}

	resp, err := h.svc.CreateCustomPuzzle(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidGuess) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidGuess, "Answer must be exactly 5 valid color letters.")
			return
		}
		h.logger.Error().Err(err).Msg("failed to create custom puzzle")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodePuzzleCreationFailed, "Failed to create puzzle.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
