package puzzle

import "strings"

// AnswerLength is the fixed number of positions in every answer and guess.
const AnswerLength = 5

// Color is one letter of the fixed 8-color alphabet.
type Color string

// The full color alphabet. Order matters: the generator indexes into it.
const (
	ColorRed    Color = "R"
	ColorGreen  Color = "G"
	ColorBlue   Color = "B"
	ColorYellow Color = "Y"
	ColorPurple Color = "P"
	ColorOrange Color = "O"
	ColorWhite  Color = "W"
	ColorBlack  Color = "K"
)

// Alphabet lists every valid color in generator order.
var Alphabet = []Color{
	ColorRed, ColorGreen, ColorBlue, ColorYellow,
	ColorPurple, ColorOrange, ColorWhite, ColorBlack,
}

// NormalizeColor upper-cases a raw letter and reports whether it is part of
// the alphabet.
func NormalizeColor(raw string) (Color, bool) {
	c := Color(strings.ToUpper(raw))
	for _, valid := range Alphabet {
		if c == valid {
			return c, true
		}
	}
	return "", false
}

// NormalizeSequence converts raw letters into canonical colors. It returns
// false if any letter falls outside the alphabet; length is not checked here.
func NormalizeSequence(raw []string) ([]Color, bool) {
	seq := make([]Color, len(raw))
	for i, letter := range raw {
		c, ok := NormalizeColor(letter)
		if !ok {
			return nil, false
		}
		seq[i] = c
	}
	return seq, true
}

// SequenceString renders a color sequence as a compact letter string, used
// for storage and logging.
func SequenceString(seq []Color) string {
	var b strings.Builder
	for _, c := range seq {
		b.WriteString(string(c))
	}
	return b.String()
}

// ParseSequenceString is the inverse of SequenceString.
func ParseSequenceString(s string) ([]Color, bool) {
	letters := strings.Split(s, "")
	return NormalizeSequence(letters)
}
