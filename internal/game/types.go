package game

import (
	"time"

	"github.com/adibarra/shadle/internal/puzzle"
)

// GuessRequest is the guess submission payload.
type GuessRequest struct {
	OwnerID  string   `json:"ownerId"`
	PuzzleID string   `json:"puzzleId"`
	Guess    []string `json:"guess"`
}

// GuessResponse reports the outcome of one guess.
type GuessResponse struct {
	Tries    int             `json:"tries"`
	Correct  bool            `json:"correct"`
	Feedback puzzle.Feedback `json:"feedback"`
}

// AttemptEntry is one ledger row as served to clients.
type AttemptEntry struct {
	OwnerID   string    `json:"ownerId"`
	PuzzleID  string    `json:"puzzleId"`
	Tries     int       `json:"tries"`
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse lists an owner's attempts.
type HistoryResponse struct {
	Attempts []AttemptEntry `json:"attempts"`
}

// CreatePuzzleRequest supplies the answer for a new custom puzzle.
type CreatePuzzleRequest struct {
	Answer []string `json:"answer"`
}

// CreatePuzzleResponse returns the id to share.
type CreatePuzzleResponse struct {
	ID string `json:"id"`
}
