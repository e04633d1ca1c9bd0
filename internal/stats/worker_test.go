package stats

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adibarra/shadle/internal/db"
)

func TestBacklogIsolatesPerPuzzleFailure(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, nil, ServiceOptions{}, zerolog.Nop())
	ctx := context.Background()

	store.On("ListPuzzleIDs", ctx, "§").Return([]string{"§2025-11-10", "§2025-11-11"}, nil)
	store.On("Aggregate", ctx, "§2025-11-10").Return(db.AttemptAggregate{}, errors.New("connection reset"))
	store.On("Aggregate", ctx, "§2025-11-11").Return(db.AttemptAggregate{
		TotalOwners:   4,
		TotalAttempts: 5,
	}, nil)
	store.On("Distribution", ctx, "§2025-11-11").Return([]db.TriesCount{{Tries: 3, Count: 4}}, nil)
	store.On("Publish", ctx, "§2025-11-11", mock.Anything).Return(nil)

	// One puzzle failing must not abort the rest of the backlog.
	err := svc.aggregateBacklog(ctx)
	require.NoError(t, err)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Distribution", ctx, "§2025-11-10")
	store.AssertNotCalled(t, "Publish", ctx, "§2025-11-10", mock.Anything)
}

func TestBacklogListFailurePropagates(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, nil, ServiceOptions{}, zerolog.Nop())
	ctx := context.Background()

	store.On("ListPuzzleIDs", ctx, "§").Return(nil, errors.New("connection reset"))

	err := svc.aggregateBacklog(ctx)
	assert.Error(t, err)
	store.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
}

func TestWorkerContinuesAfterTaskFailure(t *testing.T) {
	var runs atomic.Int32
	task := Task{
		Name:     "flaky",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			if runs.Add(1) == 1 {
				return errors.New("transient failure")
			}
			return nil
		},
	}

	worker := NewWorkerWithTasks([]Task{task}, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := worker.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The failing first run is logged and the ticker keeps going.
	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestWorkerRunsEachTaskOnItsOwnInterval(t *testing.T) {
	var fast, slow atomic.Int32
	tasks := []Task{
		{Name: "fast", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
			fast.Add(1)
			return nil
		}},
		{Name: "slow", Interval: time.Hour, Run: func(context.Context) error {
			slow.Add(1)
			return nil
		}},
	}

	worker := NewWorkerWithTasks(tasks, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := worker.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.GreaterOrEqual(t, fast.Load(), int32(2))
	// The slow task still gets its immediate first run.
	assert.Equal(t, int32(1), slow.Load())
}

func TestNewWorkerRegistersStandardTasks(t *testing.T) {
	svc := NewService(new(mockStore), nil, ServiceOptions{}, zerolog.Nop())
	worker := NewWorker(svc, WorkerOptions{}, zerolog.Nop())

	require.Len(t, worker.tasks, 3)
	names := []string{worker.tasks[0].Name, worker.tasks[1].Name, worker.tasks[2].Name}
	assert.Equal(t, []string{"stats-today", "stats-random", "stats-backlog"}, names)
}
