package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adibarra/shadle/internal/db"
	"github.com/adibarra/shadle/internal/db/repository"
	"github.com/adibarra/shadle/internal/puzzle"
)

// Store is the persistence surface the aggregator needs.
type Store interface {
	Aggregate(ctx context.Context, puzzleID string) (db.AttemptAggregate, error)
	AggregateByPrefix(ctx context.Context, prefix string) (db.AttemptAggregate, error)
	Distribution(ctx context.Context, puzzleID string) ([]db.TriesCount, error)
	ListPuzzleIDs(ctx context.Context, prefix string) ([]string, error)
	AttemptPage(ctx context.Context, prefix string, limit, offset int32) ([]db.Attempt, error)
	Publish(ctx context.Context, puzzleID string, stats []byte) error
	Published(ctx context.Context, puzzleID string) ([]byte, error)
}

// StatsCache is the optional read/announce cache in front of the store.
type StatsCache interface {
	Get(ctx context.Context, puzzleID string) (*PuzzleStats, error)
	Set(ctx context.Context, stats PuzzleStats) error
	Announce(ctx context.Context, stats PuzzleStats) error
}

// ServiceOptions configures aggregation behavior.
type ServiceOptions struct {
	ChunkSize int32
}

// Service recomputes and serves per-puzzle statistics. Aggregates are
// best-effort snapshots; reads may lag the latest ledger write.
type Service struct {
	store     Store
	cache     StatsCache
	logger    zerolog.Logger
	chunkSize int32
}

// NewService constructs a stats service.
func NewService(store Store, cache StatsCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &Service{
		store:     store,
		cache:     cache,
		logger:    logger.With().Str("component", "stats").Logger(),
		chunkSize: chunkSize,
	}
}

// AggregatePuzzle recomputes and publishes stats for one puzzle id using the
// bulk SQL aggregate plus the grouped histogram.
func (s *Service) AggregatePuzzle(ctx context.Context, puzzleID string) (PuzzleStats, error) {
	agg, err := s.store.Aggregate(ctx, puzzleID)
	if err != nil {
		return PuzzleStats{}, fmt.Errorf("aggregate %q: %w", puzzleID, err)
	}

	buckets, err := s.store.Distribution(ctx, puzzleID)
	if err != nil {
		return PuzzleStats{}, fmt.Errorf("distribution %q: %w", puzzleID, err)
	}
	dist := Distribution{}
	for _, b := range buckets {
		dist[int(b.Tries)] = int(b.Count)
	}

	stats := fromAggregate(puzzleID, agg, dist)
	if err := s.publish(ctx, stats); err != nil {
		return PuzzleStats{}, err
	}
	return stats, nil
}

// AggregateRandomPool recomputes the combined stats for every random puzzle,
// published under RandomPoolID. Totals come from the SQL aggregate; the
// distribution is derived by streaming bounded pages and merging partials,
// since the pool is unbounded in puzzle count.
func (s *Service) AggregateRandomPool(ctx context.Context) (PuzzleStats, error) {
	agg, err := s.store.AggregateByPrefix(ctx, puzzle.RandomPrefix)
	if err != nil {
		return PuzzleStats{}, fmt.Errorf("aggregate random pool: %w", err)
	}

	dist, err := StreamDistribution(ctx, s.store, puzzle.RandomPrefix, s.chunkSize)
	if err != nil {
		return PuzzleStats{}, fmt.Errorf("stream random distribution: %w", err)
	}

	stats := fromAggregate(RandomPoolID, agg, dist)
	if err := s.publish(ctx, stats); err != nil {
		return PuzzleStats{}, err
	}
	return stats, nil
}

// Get serves the last published stats for a puzzle id: cache first, then the
// store, then the documented zero default.
func (s *Service) Get(ctx context.Context, puzzleID string) (PuzzleStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, puzzleID); err != nil {
			s.logger.Warn().Err(err).Str("puzzle_id", puzzleID).Msg("stats cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	data, err := s.store.Published(ctx, puzzleID)
	if err != nil {
		if errors.Is(err, repository.ErrStatsNotFound) {
			return ZeroStats(puzzleID), nil
		}
		return PuzzleStats{}, fmt.Errorf("read published stats %q: %w", puzzleID, err)
	}

	var stats PuzzleStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return PuzzleStats{}, fmt.Errorf("decode published stats %q: %w", puzzleID, err)
	}
	return stats, nil
}

func (s *Service) publish(ctx context.Context, stats PuzzleStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := s.store.Publish(ctx, stats.PuzzleID, data); err != nil {
		return fmt.Errorf("publish stats %q: %w", stats.PuzzleID, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Str("puzzle_id", stats.PuzzleID).Msg("stats cache write failed")
		}
		if err := s.cache.Announce(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Str("puzzle_id", stats.PuzzleID).Msg("stats announce failed")
		}
	}
	return nil
}

func fromAggregate(puzzleID string, agg db.AttemptAggregate, dist Distribution) PuzzleStats {
	if len(dist) == 0 {
		dist = ZeroStats(puzzleID).TriesDistribution
	}
	return PuzzleStats{
		PuzzleID:          puzzleID,
		TotalAttempts:     agg.TotalAttempts,
		TotalOwners:       agg.TotalOwners,
		AvgTries:          agg.AvgTries,
		SuccessRate:       agg.SuccessRate,
		FailedAttempts:    agg.FailedAttempts,
		TriesDistribution: dist,
		CompletionRate:    agg.CompletionRate,
	}
}
