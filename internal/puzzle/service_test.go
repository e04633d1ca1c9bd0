package puzzle

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAnswerStore struct {
	answers map[string]string
}

func newMemoryAnswerStore() *memoryAnswerStore {
	return &memoryAnswerStore{answers: map[string]string{}}
}

func (s *memoryAnswerStore) GetCustomAnswer(_ context.Context, id string) (string, error) {
	answer, ok := s.answers[id]
	if !ok {
		return "", ErrNotFound
	}
	return answer, nil
}

func (s *memoryAnswerStore) CreateCustomPuzzle(_ context.Context, id, answer string) error {
	s.answers[id] = answer
	return nil
}

func newTestService(store AnswerStore) *Service {
	return NewService(NewDeriver("test-salt"), store, zerolog.Nop())
}

func TestAnswerDailyIsGenerated(t *testing.T) {
	svc := newTestService(newMemoryAnswerStore())

	first, err := svc.Answer(context.Background(), "§2025-11-11")
	require.NoError(t, err)
	second, err := svc.Answer(context.Background(), "§2025-11-11")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "KPOBY", SequenceString(first))
}

func TestAnswerRandomIsGenerated(t *testing.T) {
	svc := newTestService(newMemoryAnswerStore())

	answer, err := svc.Answer(context.Background(), "random:token")
	require.NoError(t, err)
	assert.Equal(t, "GWKPO", SequenceString(answer))
}

func TestAnswerCustomLookup(t *testing.T) {
	store := newMemoryAnswerStore()
	svc := newTestService(store)

	id, err := svc.CreateCustom(context.Background(), seq(t, "BYRGP"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	answer, err := svc.Answer(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "BYRGP", SequenceString(answer))
}

func TestAnswerCustomMiss(t *testing.T) {
	svc := newTestService(newMemoryAnswerStore())

	_, err := svc.Answer(context.Background(), "no-such-puzzle")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnswerMalformedStoredAnswer(t *testing.T) {
	store := newMemoryAnswerStore()
	store.answers["bad"] = "RGB" // wrong length

	svc := newTestService(store)
	_, err := svc.Answer(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
