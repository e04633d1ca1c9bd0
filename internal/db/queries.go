package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx used by Queries; satisfied by *pgxpool.Pool and
// pgx.Tx alike.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles all SQL statements the service issues.
type Queries struct {
	db DBTX
}

// New constructs a Queries over a pool or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// RecordAttemptParams carries one guess outcome into the ledger.
type RecordAttemptParams struct {
	OwnerID   string
	PuzzleID  string
	Completed bool
}

const recordAttemptSQL = `
with updated as (
	insert into puzzle_attempts (owner_id, puzzle_id, tries, completed)
	values ($1, $2, 1, $3)
	on conflict (owner_id, puzzle_id)
	do update set
		tries = puzzle_attempts.tries + 1,
		completed = excluded.completed,
		updated_at = now()
	where puzzle_attempts.completed = false
	returning owner_id, puzzle_id, tries, completed, updated_at
)
select owner_id, puzzle_id, tries, completed, updated_at from updated
union all
select owner_id, puzzle_id, tries, completed, updated_at
from puzzle_attempts
where owner_id = $1 and puzzle_id = $2
	and not exists (select 1 from updated)
`

// RecordAttempt creates or advances the attempt row for (owner, puzzle) in a
// single statement. The conditional update is guarded by completed = false,
// so a completed row is returned unchanged no matter how many callers race.
func (q *Queries) RecordAttempt(ctx context.Context, arg RecordAttemptParams) (Attempt, error) {
	row := q.db.QueryRow(ctx, recordAttemptSQL, arg.OwnerID, arg.PuzzleID, arg.Completed)
	var a Attempt
	err := row.Scan(&a.OwnerID, &a.PuzzleID, &a.Tries, &a.Completed, &a.UpdatedAt)
	return a, err
}

const getAttemptsByOwnerSQL = `
select owner_id, puzzle_id, tries, completed, updated_at
from puzzle_attempts
where owner_id = $1
order by puzzle_id desc
`

// GetAttemptsByOwner lists every attempt row for an owner.
func (q *Queries) GetAttemptsByOwner(ctx context.Context, ownerID string) ([]Attempt, error) {
	rows, err := q.db.Query(ctx, getAttemptsByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows)
}

const getAttemptsByOwnerAndPuzzleSQL = `
select owner_id, puzzle_id, tries, completed, updated_at
from puzzle_attempts
where owner_id = $1 and puzzle_id = $2
`

// GetAttemptsByOwnerAndPuzzle narrows the listing to one puzzle.
func (q *Queries) GetAttemptsByOwnerAndPuzzle(ctx context.Context, ownerID, puzzleID string) ([]Attempt, error) {
	rows, err := q.db.Query(ctx, getAttemptsByOwnerAndPuzzleSQL, ownerID, puzzleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows)
}

const getAttemptAggregateSQL = `
select
	count(distinct owner_id) as total_owners,
	count(*) as total_attempts,
	coalesce(avg(tries) filter (where completed = true), 0) as avg_tries,
	case
		when count(*) filter (where completed = true) > 0
		then count(*) filter (where completed = true and tries <= 6)::float
			/ count(*) filter (where completed = true)
		else 0
	end as success_rate,
	count(*) filter (where completed = true and tries > 6) as failed_attempts,
	case
		when count(*) > 0
		then count(*) filter (where completed = true)::float / count(*)
		else 0
	end as completion_rate
from puzzle_attempts
where puzzle_id = $1
`

// GetAttemptAggregate computes the bulk aggregate for one puzzle id.
func (q *Queries) GetAttemptAggregate(ctx context.Context, puzzleID string) (AttemptAggregate, error) {
	row := q.db.QueryRow(ctx, getAttemptAggregateSQL, puzzleID)
	var agg AttemptAggregate
	err := row.Scan(
		&agg.TotalOwners,
		&agg.TotalAttempts,
		&agg.AvgTries,
		&agg.SuccessRate,
		&agg.FailedAttempts,
		&agg.CompletionRate,
	)
	return agg, err
}

const getAttemptAggregateByPrefixSQL = `
select
	count(distinct owner_id) as total_owners,
	count(*) as total_attempts,
	coalesce(avg(tries) filter (where completed = true), 0) as avg_tries,
	case
		when count(*) filter (where completed = true) > 0
		then count(*) filter (where completed = true and tries <= 6)::float
			/ count(*) filter (where completed = true)
		else 0
	end as success_rate,
	count(*) filter (where completed = true and tries > 6) as failed_attempts,
	case
		when count(*) > 0
		then count(*) filter (where completed = true)::float / count(*)
		else 0
	end as completion_rate
from puzzle_attempts
where puzzle_id like $1 || '%'
`

// GetAttemptAggregateByPrefix computes the bulk aggregate across every
// puzzle id sharing a prefix, e.g. the whole random pool.
func (q *Queries) GetAttemptAggregateByPrefix(ctx context.Context, prefix string) (AttemptAggregate, error) {
	row := q.db.QueryRow(ctx, getAttemptAggregateByPrefixSQL, prefix)
	var agg AttemptAggregate
	err := row.Scan(
		&agg.TotalOwners,
		&agg.TotalAttempts,
		&agg.AvgTries,
		&agg.SuccessRate,
		&agg.FailedAttempts,
		&agg.CompletionRate,
	)
	return agg, err
}

const getTriesDistributionSQL = `
select tries, count(*)
from puzzle_attempts
where puzzle_id = $1 and completed = true
group by tries
order by tries
`

// GetTriesDistribution returns the completed-attempt histogram buckets for
// one puzzle id.
func (q *Queries) GetTriesDistribution(ctx context.Context, puzzleID string) ([]TriesCount, error) {
	rows, err := q.db.Query(ctx, getTriesDistributionSQL, puzzleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TriesCount
	for rows.Next() {
		var tc TriesCount
		if err := rows.Scan(&tc.Tries, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

const listPuzzleIDsByPrefixSQL = `
select distinct puzzle_id
from puzzle_attempts
where puzzle_id like $1 || '%'
order by puzzle_id
`

// ListPuzzleIDsByPrefix returns every distinct puzzle id starting with the
// prefix, e.g. the daily marker for backlog re-aggregation.
func (q *Queries) ListPuzzleIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := q.db.Query(ctx, listPuzzleIDsByPrefixSQL, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetAttemptPageParams pages attempt rows by puzzle-id prefix in a stable
// order for chunked aggregation.
type GetAttemptPageParams struct {
	Prefix string
	Limit  int32
	Offset int32
}

const getAttemptPageSQL = `
select owner_id, puzzle_id, tries, completed, updated_at
from puzzle_attempts
where puzzle_id like $1 || '%'
order by owner_id, puzzle_id
limit $2 offset $3
`

// GetAttemptPage returns one fixed-size page of attempts.
func (q *Queries) GetAttemptPage(ctx context.Context, arg GetAttemptPageParams) ([]Attempt, error) {
	rows, err := q.db.Query(ctx, getAttemptPageSQL, arg.Prefix, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows)
}

const createCustomPuzzleSQL = `
insert into custom_puzzles (id, answer)
values ($1, $2)
`

// CreateCustomPuzzle stores an answer under a caller-chosen id.
func (q *Queries) CreateCustomPuzzle(ctx context.Context, id, answer string) error {
	_, err := q.db.Exec(ctx, createCustomPuzzleSQL, id, answer)
	return err
}

const getCustomPuzzleSQL = `
select id, answer, created_at
from custom_puzzles
where id = $1
`

// GetCustomPuzzle fetches one stored puzzle; pgx.ErrNoRows when absent.
func (q *Queries) GetCustomPuzzle(ctx context.Context, id string) (CustomPuzzle, error) {
	row := q.db.QueryRow(ctx, getCustomPuzzleSQL, id)
	var p CustomPuzzle
	err := row.Scan(&p.ID, &p.Answer, &p.CreatedAt)
	return p, err
}

const upsertPuzzleStatsSQL = `
insert into puzzle_stats (puzzle_id, stats)
values ($1, $2)
on conflict (puzzle_id)
do update set
	stats = excluded.stats,
	updated_at = now()
`

// UpsertPuzzleStats publishes a recomputed stats document.
func (q *Queries) UpsertPuzzleStats(ctx context.Context, puzzleID string, stats []byte) error {
	_, err := q.db.Exec(ctx, upsertPuzzleStatsSQL, puzzleID, stats)
	return err
}

const getPuzzleStatsSQL = `
select stats
from puzzle_stats
where puzzle_id = $1
`

// GetPuzzleStats reads the last published stats document; pgx.ErrNoRows when
// the puzzle has never been aggregated.
func (q *Queries) GetPuzzleStats(ctx context.Context, puzzleID string) ([]byte, error) {
	row := q.db.QueryRow(ctx, getPuzzleStatsSQL, puzzleID)
	var stats []byte
	err := row.Scan(&stats)
	return stats, err
}

func scanAttempts(rows pgx.Rows) ([]Attempt, error) {
	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.OwnerID, &a.PuzzleID, &a.Tries, &a.Completed, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
