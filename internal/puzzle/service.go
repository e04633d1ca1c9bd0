package puzzle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a custom puzzle id has no stored answer.
var ErrNotFound = errors.New("puzzle not found")

// AnswerStore persists custom puzzle answers. Implementations return
// ErrNotFound for unknown ids.
type AnswerStore interface {
	GetCustomAnswer(ctx context.Context, id string) (string, error)
	CreateCustomPuzzle(ctx context.Context, id, answer string) error
}

// Service resolves puzzle identifiers to answers: generated for daily and
// random puzzles, fetched for custom ones.
type Service struct {
	deriver *Deriver
	store   AnswerStore
	logger  zerolog.Logger
}

// NewService constructs a puzzle service.
func NewService(deriver *Deriver, store AnswerStore, logger zerolog.Logger) *Service {
	return &Service{
		deriver: deriver,
		store:   store,
		logger:  logger.With().Str("component", "puzzle").Logger(),
	}
}

// Derive exposes identifier classification for callers that need the kind
// without resolving an answer.
func (s *Service) Derive(raw string) ID {
	return s.deriver.Derive(raw)
}

// Answer resolves the answer for a puzzle id. Custom ids with no stored
// answer return ErrNotFound.
func (s *Service) Answer(ctx context.Context, rawID string) ([]Color, error) {
	id := s.deriver.Derive(rawID)
	if id.Kind != KindCustom {
		return Generate(id.Seed), nil
	}

	stored, err := s.store.GetCustomAnswer(ctx, rawID)
	if err != nil {
		return nil, err
	}
	answer, ok := ParseSequenceString(stored)
	if !ok || len(answer) != AnswerLength {
		return nil, fmt.Errorf("stored answer for %q is malformed", rawID)
	}
	return answer, nil
}

// CreateCustom stores a caller-supplied answer under a fresh id and returns
// that id.
func (s *Service) CreateCustom(ctx context.Context, answer []Color) (string, error) {
	id := uuid.NewString()
	if err := s.store.CreateCustomPuzzle(ctx, id, SequenceString(answer)); err != nil {
		return "", fmt.Errorf("create custom puzzle: %w", err)
	}
	s.logger.Info().Str("puzzle_id", id).Msg("custom puzzle created")
	return id, nil
}
