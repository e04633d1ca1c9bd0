package stats

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adibarra/shadle/internal/puzzle"
)

// Task is one statically registered aggregation job. Tasks are declared at
// startup rather than discovered, so the full schedule is visible in one
// place.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// WorkerOptions sets per-task cadence.
type WorkerOptions struct {
	TodayInterval   time.Duration
	RandomInterval  time.Duration
	BacklogInterval time.Duration
}

// Worker drives the periodic re-aggregation tasks. A failing task run is
// logged and retried on the next tick; it never blocks guess traffic or the
// other tasks.
type Worker struct {
	tasks  []Task
	logger zerolog.Logger
}

// NewWorker registers the standard task list against a stats service:
// today's daily puzzle on a tight cadence, the random pool slightly slower,
// and the full daily backlog least often.
func NewWorker(svc *Service, opts WorkerOptions, logger zerolog.Logger) *Worker {
	if opts.TodayInterval <= 0 {
		opts.TodayInterval = 30 * time.Minute
	}
	if opts.RandomInterval <= 0 {
		opts.RandomInterval = 15 * time.Minute
	}
	if opts.BacklogInterval <= 0 {
		opts.BacklogInterval = time.Hour
	}

	tasks := []Task{
		{
			Name:     "stats-today",
			Interval: opts.TodayInterval,
			Run: func(ctx context.Context) error {
				today := puzzle.DailyMarker + time.Now().UTC().Format("2006-01-02")
				_, err := svc.AggregatePuzzle(ctx, today)
				return err
			},
		},
		{
			Name:     "stats-random",
			Interval: opts.RandomInterval,
			Run: func(ctx context.Context) error {
				_, err := svc.AggregateRandomPool(ctx)
				return err
			},
		},
		{
			Name:     "stats-backlog",
			Interval: opts.BacklogInterval,
			Run: func(ctx context.Context) error {
				return svc.aggregateBacklog(ctx)
			},
		},
	}

	return NewWorkerWithTasks(tasks, logger)
}

// NewWorkerWithTasks builds a worker over an explicit task list.
func NewWorkerWithTasks(tasks []Task, logger zerolog.Logger) *Worker {
	return &Worker{
		tasks:  tasks,
		logger: logger.With().Str("component", "stats_worker").Logger(),
	}
}

// Run blocks until context cancellation, ticking every task on its own
// interval. Each task also runs once immediately.
func (w *Worker) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, task := range w.tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			w.runTask(ctx, task)
		}(task)
	}
	wg.Wait()
	return ctx.Err()
}

func (w *Worker) runTask(ctx context.Context, task Task) {
	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	w.tick(ctx, task)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx, task)
		}
	}
}

func (w *Worker) tick(ctx context.Context, task Task) {
	start := time.Now()
	err := task.Run(ctx)
	taskDuration.WithLabelValues(task.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		taskRuns.WithLabelValues(task.Name, "error").Inc()
		w.logger.Warn().Err(err).Str("task", task.Name).Msg("stats task failed")
		return
	}
	taskRuns.WithLabelValues(task.Name, "ok").Inc()
	w.logger.Debug().Str("task", task.Name).Dur("took", time.Since(start)).Msg("stats task completed")
}

// aggregateBacklog re-aggregates every daily puzzle id seen in the ledger.
// A failure on one puzzle is logged and skipped; the rest still update.
func (s *Service) aggregateBacklog(ctx context.Context) error {
	ids, err := s.store.ListPuzzleIDs(ctx, puzzle.DailyMarker)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.AggregatePuzzle(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("puzzle_id", id).Msg("backlog aggregation failed for puzzle")
		}
	}
	return nil
}
