package repository

import (
	"context"

	"github.com/adibarra/shadle/internal/db"
)

type attemptStore interface {
	RecordAttempt(ctx context.Context, arg db.RecordAttemptParams) (db.Attempt, error)
	GetAttemptsByOwner(ctx context.Context, ownerID string) ([]db.Attempt, error)
	GetAttemptsByOwnerAndPuzzle(ctx context.Context, ownerID, puzzleID string) ([]db.Attempt, error)
}

// AttemptRepository contains DB helpers for the attempt ledger.
type AttemptRepository struct {
	store attemptStore
}

// NewAttemptRepository constructs a new attempt repository.
func NewAttemptRepository(store attemptStore) *AttemptRepository {
	return &AttemptRepository{store: store}
}

// Record creates or advances the (owner, puzzle) row. The storage-level
// conditional update keeps completed rows frozen; the returned record is the
// row state after the call either way.
func (r *AttemptRepository) Record(ctx context.Context, ownerID, puzzleID string, completed bool) (db.Attempt, error) {
	return r.store.RecordAttempt(ctx, db.RecordAttemptParams{
		OwnerID:   ownerID,
		PuzzleID:  puzzleID,
		Completed: completed,
	})
}

// List returns an owner's attempts, optionally narrowed to one puzzle.
func (r *AttemptRepository) List(ctx context.Context, ownerID, puzzleID string) ([]db.Attempt, error) {
	if puzzleID == "" {
		return r.store.GetAttemptsByOwner(ctx, ownerID)
	}
	return r.store.GetAttemptsByOwnerAndPuzzle(ctx, ownerID, puzzleID)
}
