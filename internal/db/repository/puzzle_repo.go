package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/adibarra/shadle/internal/db"
	"github.com/adibarra/shadle/internal/puzzle"
)

type customPuzzleStore interface {
	CreateCustomPuzzle(ctx context.Context, id, answer string) error
	GetCustomPuzzle(ctx context.Context, id string) (db.CustomPuzzle, error)
}

// PuzzleRepository persists custom puzzle answers. It satisfies
// puzzle.AnswerStore.
type PuzzleRepository struct {
	store customPuzzleStore
}

var _ puzzle.AnswerStore = (*PuzzleRepository)(nil)

// NewPuzzleRepository constructs a new custom-puzzle repository.
func NewPuzzleRepository(store customPuzzleStore) *PuzzleRepository {
	return &PuzzleRepository{store: store}
}

// GetCustomAnswer returns the stored answer letters for a custom puzzle id,
// translating a row miss into puzzle.ErrNotFound.
func (r *PuzzleRepository) GetCustomAnswer(ctx context.Context, id string) (string, error) {
	p, err := r.store.GetCustomPuzzle(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", puzzle.ErrNotFound
		}
		return "", err
	}
	return p.Answer, nil
}

// CreateCustomPuzzle stores an answer under the given id.
func (r *PuzzleRepository) CreateCustomPuzzle(ctx context.Context, id, answer string) error {
	return r.store.CreateCustomPuzzle(ctx, id, answer)
}
