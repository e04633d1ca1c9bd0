package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adibarra/shadle/internal/db"
)

type mockAttemptStore struct {
	mock.Mock
}

func (m *mockAttemptStore) RecordAttempt(ctx context.Context, arg db.RecordAttemptParams) (db.Attempt, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Attempt), args.Error(1)
}

func (m *mockAttemptStore) GetAttemptsByOwner(ctx context.Context, ownerID string) ([]db.Attempt, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]db.Attempt), args.Error(1)
}

func (m *mockAttemptStore) GetAttemptsByOwnerAndPuzzle(ctx context.Context, ownerID, puzzleID string) ([]db.Attempt, error) {
	args := m.Called(ctx, ownerID, puzzleID)
	return args.Get(0).([]db.Attempt), args.Error(1)
}

func TestAttemptRepository_Record(t *testing.T) {
	store := new(mockAttemptStore)
	repo := NewAttemptRepository(store)

	params := db.RecordAttemptParams{OwnerID: "owner-1", PuzzleID: "§2025-11-11", Completed: true}
	expect := db.Attempt{OwnerID: "owner-1", PuzzleID: "§2025-11-11", Tries: 3, Completed: true}
	store.On("RecordAttempt", mock.Anything, params).Return(expect, nil)

	got, err := repo.Record(context.Background(), "owner-1", "§2025-11-11", true)
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestAttemptRepository_ListAll(t *testing.T) {
	store := new(mockAttemptStore)
	repo := NewAttemptRepository(store)

	expect := []db.Attempt{
		{OwnerID: "owner-1", PuzzleID: "§2025-11-11", Tries: 2, Completed: true},
		{OwnerID: "owner-1", PuzzleID: "§2025-11-10", Tries: 6, Completed: false},
	}
	store.On("GetAttemptsByOwner", mock.Anything, "owner-1").Return(expect, nil)

	got, err := repo.List(context.Background(), "owner-1", "")
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestAttemptRepository_ListOnePuzzle(t *testing.T) {
	store := new(mockAttemptStore)
	repo := NewAttemptRepository(store)

	expect := []db.Attempt{{OwnerID: "owner-1", PuzzleID: "random:xyz", Tries: 1}}
	store.On("GetAttemptsByOwnerAndPuzzle", mock.Anything, "owner-1", "random:xyz").Return(expect, nil)

	got, err := repo.List(context.Background(), "owner-1", "random:xyz")
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}
