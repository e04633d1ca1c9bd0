package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adibarra/shadle/internal/db"
	"github.com/adibarra/shadle/internal/puzzle"
)

var (
	// ErrMissingOwner rejects requests without an owner id.
	ErrMissingOwner = errors.New("owner id is required")
	// ErrMissingPuzzle rejects requests without a puzzle id.
	ErrMissingPuzzle = errors.New("puzzle id is required")
	// ErrInvalidGuess rejects guesses with the wrong length or letters
	// outside the color alphabet.
	ErrInvalidGuess = errors.New("guess must be exactly 5 valid color letters")
	// ErrFuturePuzzle rejects daily puzzles dated after today (UTC).
	ErrFuturePuzzle = errors.New("cannot guess a future puzzle")
)

// Ledger is the attempt ledger the service records outcomes in. Record must
// implement the conditional-update contract: a completed row is returned
// unchanged.
type Ledger interface {
	Record(ctx context.Context, ownerID, puzzleID string, completed bool) (db.Attempt, error)
	List(ctx context.Context, ownerID, puzzleID string) ([]db.Attempt, error)
}

// AnswerResolver resolves puzzle ids to answers; satisfied by
// *puzzle.Service.
type AnswerResolver interface {
	Derive(raw string) puzzle.ID
	Answer(ctx context.Context, rawID string) ([]puzzle.Color, error)
	CreateCustom(ctx context.Context, answer []puzzle.Color) (string, error)
}

// Service orchestrates guess submission: resolve the answer, evaluate the
// guess, record the outcome. Apart from the single ledger write it is
// side-effect free.
type Service struct {
	puzzles AnswerResolver
	ledger  Ledger
	now     func() time.Time
	logger  zerolog.Logger
}

// NewService constructs a game service.
func NewService(puzzles AnswerResolver, ledger Ledger, logger zerolog.Logger) *Service {
	return &Service{
		puzzles: puzzles,
		ledger:  ledger,
		now:     time.Now,
		logger:  logger.With().Str("component", "game").Logger(),
	}
}

// SubmitGuess validates and evaluates one guess and records it in the
// ledger. Unresolvable custom ids surface puzzle.ErrNotFound; storage
// failures are returned as-is, never papered over with a fabricated answer.
func (s *Service) SubmitGuess(ctx context.Context, req GuessRequest) (GuessResponse, error) {
	if req.OwnerID == "" {
		return GuessResponse{}, ErrMissingOwner
	}
	if req.PuzzleID == "" {
		return GuessResponse{}, ErrMissingPuzzle
	}

	guess, ok := puzzle.NormalizeSequence(req.Guess)
	if !ok || len(guess) != puzzle.AnswerLength {
		return GuessResponse{}, ErrInvalidGuess
	}

	id := s.puzzles.Derive(req.PuzzleID)
	if id.Kind == puzzle.KindDaily && s.isFutureDate(id) {
		return GuessResponse{}, ErrFuturePuzzle
	}

	answer, err := s.puzzles.Answer(ctx, req.PuzzleID)
	if err != nil {
		return GuessResponse{}, err
	}

	feedback := puzzle.Evaluate(guess, answer)
	correct := feedback.Correct()

	record, err := s.ledger.Record(ctx, req.OwnerID, req.PuzzleID, correct)
	if err != nil {
		return GuessResponse{}, fmt.Errorf("record attempt: %w", err)
	}

	guessOutcomes.WithLabelValues(resultLabel(correct)).Inc()
	s.logger.Debug().
		Str("owner_id", req.OwnerID).
		Str("puzzle_id", req.PuzzleID).
		Str("kind", id.Kind.String()).
		Bool("correct", correct).
		Int32("tries", record.Tries).
		Msg("guess recorded")

	return GuessResponse{
		Tries:    int(record.Tries),
		Correct:  correct,
		Feedback: feedback,
	}, nil
}

// History lists an owner's attempts, optionally narrowed to one puzzle.
func (s *Service) History(ctx context.Context, ownerID, puzzleID string) (HistoryResponse, error) {
	if ownerID == "" {
		return HistoryResponse{}, ErrMissingOwner
	}

	records, err := s.ledger.List(ctx, ownerID, puzzleID)
	if err != nil {
		return HistoryResponse{}, fmt.Errorf("list attempts: %w", err)
	}

	entries := make([]AttemptEntry, len(records))
	for i, rec := range records {
		entries[i] = AttemptEntry{
			OwnerID:   rec.OwnerID,
			PuzzleID:  rec.PuzzleID,
			Tries:     int(rec.Tries),
			Completed: rec.Completed,
			Timestamp: rec.UpdatedAt,
		}
	}
	return HistoryResponse{Attempts: entries}, nil
}

// CreateCustomPuzzle validates and stores a caller-supplied answer.
func (s *Service) CreateCustomPuzzle(ctx context.Context, req CreatePuzzleRequest) (CreatePuzzleResponse, error) {
	answer, ok := puzzle.NormalizeSequence(req.Answer)
	if !ok || len(answer) != puzzle.AnswerLength {
		return CreatePuzzleResponse{}, ErrInvalidGuess
	}

	id, err := s.puzzles.CreateCustom(ctx, answer)
	if err != nil {
		return CreatePuzzleResponse{}, err
	}
	return CreatePuzzleResponse{ID: id}, nil
}

// isFutureDate guards calendar-valid daily dates only: out-of-range
// month/day values still seed a puzzle and are let through.
func (s *Service) isFutureDate(id puzzle.ID) bool {
	date := time.Date(id.Year, time.Month(id.Month), id.Day, 0, 0, 0, 0, time.UTC)
	if date.Year() != id.Year || int(date.Month()) != id.Month || date.Day() != id.Day {
		return false
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return date.After(today)
}

func resultLabel(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
