package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Guess errors
	ErrCodePuzzleNotFound = "puzzle_not_found"
	ErrCodeInvalidGuess   = "invalid_guess"
	ErrCodeFuturePuzzle   = "future_puzzle"
	ErrCodeSubmitFailed   = "submit_failed"

	// History / stats errors
	ErrCodeHistoryFetchFailed = "history_fetch_failed"
	ErrCodeStatsFetchFailed   = "stats_fetch_failed"

	// Puzzle management errors
	ErrCodePuzzleCreationFailed = "puzzle_creation_failed"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
