package puzzle

// Status is the per-position verdict for one guessed color.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// FeedbackEntry is the verdict for a single guess position.
type FeedbackEntry struct {
	Letter Color  `json:"letter"`
	Status Status `json:"status"`
}

// Feedback is the full per-position verdict for a guess.
type Feedback []FeedbackEntry

// Correct reports whether every position matched exactly.
func (f Feedback) Correct() bool {
	for _, entry := range f {
		if entry.Status != StatusCorrect {
			return false
		}
	}
	return len(f) > 0
}

// Evaluate compares a guess to the answer using two passes. Pass one marks
// exact positional matches and consumes both positions. Pass two walks the
// remaining guess positions left to right; each may claim the leftmost
// unconsumed matching answer position as "present". A color is therefore
// credited at most as many times as it remains unmatched in the answer, and
// earlier guess positions claim matches before later ones.
//
// Both sequences are normalized before comparison, so mixed-case input is
// fine. Callers validate that the lengths match.
func Evaluate(guess, answer []Color) Feedback {
	guess = normalize(guess)
	answer = normalize(answer)

	feedback := make(Feedback, len(guess))
	usedGuess := make([]bool, len(guess))
	usedAnswer := make([]bool, len(answer))

	for i := range guess {
		if guess[i] == answer[i] {
			feedback[i] = FeedbackEntry{Letter: guess[i], Status: StatusCorrect}
			usedGuess[i] = true
			usedAnswer[i] = true
		}
	}

	for i := range guess {
		if usedGuess[i] {
			continue
		}
		entry := FeedbackEntry{Letter: guess[i], Status: StatusAbsent}
		for j := range answer {
			if !usedAnswer[j] && guess[i] == answer[j] {
				entry.Status = StatusPresent
				usedAnswer[j] = true
				break
			}
		}
		feedback[i] = entry
	}

	return feedback
}

func normalize(seq []Color) []Color {
	out := make([]Color, len(seq))
	for i, c := range seq {
		if norm, ok := NormalizeColor(string(c)); ok {
			out[i] = norm
		} else {
			out[i] = c
		}
	}
	return out
}
