package score

import (
	"strings"
	"unicode"
)

// Sentinel round outcomes.
const (
	// Invalid marks text with no parseable score. It doubles as the
	// "not yet parsed" value on stored entries.
	Invalid = -1

	// GameOver marks a score with no green square: the player ran out of
	// attempts. It is large enough that any real round count, including
	// multi-round sums, stays well below it.
	GameOver = 1000
)

// Square glyphs that encode one attempt each in share text.
const (
	GreenSquare  = "\U0001F7E9"
	YellowSquare = "\U0001F7E8"
	RedSquare    = "\U0001F7E5"
	BlackSquare  = "⬛"
	WhiteSquare  = "⬜"
)

var attemptSquares = []string{YellowSquare, RedSquare, BlackSquare, WhiteSquare}

// Round converts a normalized score into an integer outcome: the 1-based
// attempt at which the player succeeded, GameOver when no attempt
// succeeded, or Invalid when there is no score at all.
//
// A multi-line score is the sum of its valid lines, one round per line.
// When no line is valid the whole score is Invalid; summing zero lines to a
// round count of 0 would collide with real outcomes downstream.
func Round(normalized string) int {
	if !strings.Contains(normalized, "\n") {
		return roundOfLine(normalized)
	}

	total := 0
	valid := false
	for _, line := range strings.Split(normalized, "\n") {
		if r := roundOfLine(line); r != Invalid {
			total += r
			valid = true
		}
	}
	if !valid {
		return Invalid
	}
	return total
}

// roundOfLine scores a single line: everything before the first green
// square counts as one failed attempt per square, plus one for the
// successful guess itself.
func roundOfLine(line string) int {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	if clean == "" {
		return Invalid
	}

	green := strings.Index(clean, GreenSquare)
	if green < 0 {
		return GameOver
	}

	attempts := 1
	before := clean[:green]
	for _, sq := range attemptSquares {
		attempts += strings.Count(before, sq)
	}
	return attempts
}
