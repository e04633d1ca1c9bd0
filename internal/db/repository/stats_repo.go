package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/adibarra/shadle/internal/db"
)

// ErrStatsNotFound is returned when a puzzle has never been aggregated.
var ErrStatsNotFound = errors.New("puzzle stats not found")

type statsStore interface {
	GetAttemptAggregate(ctx context.Context, puzzleID string) (db.AttemptAggregate, error)
	GetAttemptAggregateByPrefix(ctx context.Context, prefix string) (db.AttemptAggregate, error)
	GetTriesDistribution(ctx context.Context, puzzleID string) ([]db.TriesCount, error)
	ListPuzzleIDsByPrefix(ctx context.Context, prefix string) ([]string, error)
	GetAttemptPage(ctx context.Context, arg db.GetAttemptPageParams) ([]db.Attempt, error)
	UpsertPuzzleStats(ctx context.Context, puzzleID string, stats []byte) error
	GetPuzzleStats(ctx context.Context, puzzleID string) ([]byte, error)
}

// StatsRepository contains DB helpers for aggregation reads and published
// stats documents.
type StatsRepository struct {
	store statsStore
}

// NewStatsRepository constructs a new stats repository.
func NewStatsRepository(store statsStore) *StatsRepository {
	return &StatsRepository{store: store}
}

// Aggregate runs the grouped aggregate over one puzzle's attempts.
func (r *StatsRepository) Aggregate(ctx context.Context, puzzleID string) (db.AttemptAggregate, error) {
	return r.store.GetAttemptAggregate(ctx, puzzleID)
}

// AggregateByPrefix runs the grouped aggregate across a whole id prefix.
func (r *StatsRepository) AggregateByPrefix(ctx context.Context, prefix string) (db.AttemptAggregate, error) {
	return r.store.GetAttemptAggregateByPrefix(ctx, prefix)
}

// Distribution returns the completed-attempt tries histogram buckets.
func (r *StatsRepository) Distribution(ctx context.Context, puzzleID string) ([]db.TriesCount, error) {
	return r.store.GetTriesDistribution(ctx, puzzleID)
}

// ListPuzzleIDs returns every distinct puzzle id with the given prefix.
func (r *StatsRepository) ListPuzzleIDs(ctx context.Context, prefix string) ([]string, error) {
	return r.store.ListPuzzleIDsByPrefix(ctx, prefix)
}

// AttemptPage returns one bounded page of attempts for chunked processing.
func (r *StatsRepository) AttemptPage(ctx context.Context, prefix string, limit, offset int32) ([]db.Attempt, error) {
	return r.store.GetAttemptPage(ctx, db.GetAttemptPageParams{
		Prefix: prefix,
		Limit:  limit,
		Offset: offset,
	})
}

// Publish upserts a recomputed stats document.
func (r *StatsRepository) Publish(ctx context.Context, puzzleID string, stats []byte) error {
	return r.store.UpsertPuzzleStats(ctx, puzzleID, stats)
}

// Published reads the last published stats document, translating a row miss
// into ErrStatsNotFound.
func (r *StatsRepository) Published(ctx context.Context, puzzleID string) ([]byte, error) {
	stats, err := r.store.GetPuzzleStats(ctx, puzzleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, err
	}
	return stats, nil
}
