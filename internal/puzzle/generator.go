package puzzle

// Linear congruential generator constants. Changing any of these changes
// every generated answer, so they are fixed for the life of the system.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Generate derives the answer for a seed: five successive LCG draws, each
// selecting one color from the alphabet. It is a pure function of the seed;
// identical seeds always yield identical answers. Duplicates may occur
// naturally.
func Generate(seed int64) []Color {
	state := seed % lcgModulus
	if state < 0 {
		state += lcgModulus
	}

	answer := make([]Color, AnswerLength)
	for i := range answer {
		state = (state*lcgMultiplier + lcgIncrement) % lcgModulus
		answer[i] = Alphabet[state%int64(len(Alphabet))]
	}
	return answer
}
