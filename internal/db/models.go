package db

import "time"

// Attempt is one owner's cumulative progress against one puzzle. The
// (OwnerID, PuzzleID) pair is the primary key.
type Attempt struct {
	OwnerID   string
	PuzzleID  string
	Tries     int32
	Completed bool
	UpdatedAt time.Time
}

// CustomPuzzle is an externally supplied answer stored under an opaque id.
type CustomPuzzle struct {
	ID        string
	Answer    string
	CreatedAt time.Time
}

// AttemptAggregate is the single-row grouped aggregate over a puzzle's
// attempts. Rates follow the original scoring rules: success means completed
// within six tries, failed means completed in more than six.
type AttemptAggregate struct {
	TotalOwners    int64
	TotalAttempts  int64
	AvgTries       float64
	SuccessRate    float64
	FailedAttempts int64
	CompletionRate float64
}

// TriesCount is one bucket of the completed-attempt tries histogram.
type TriesCount struct {
	Tries int32
	Count int64
}
