package playback

import (
	"unicode"
	"unicode/utf8"
)

// Cadence weights: how much longer (or shorter) a word holds the screen
// relative to the base dwell time.
const (
	weightSentenceEnd = 2.2
	weightClauseEnd   = 1.5
	weightShort       = 0.8
	weightLong        = 1.1
	weightNeutral     = 1.0
)

// CadenceWeight returns the dwell-time multiplier for a raw token.
// Trailing punctuation wins over length: sentence-ending punctuation gets
// the longest pause, clause punctuation a shorter one. Otherwise short
// words flash by faster and long words linger.
func CadenceWeight(token string) float64 {
	if token == "" {
		return weightNeutral
	}

	last, _ := utf8.DecodeLastRuneInString(token)
	switch last {
	case '.', '!', '?':
		return weightSentenceEnd
	case ',', ';', ':':
		return weightClauseEnd
	}

	switch n := strippedLen(token); {
	case n < 4:
		return weightShort
	case n > 8:
		return weightLong
	default:
		return weightNeutral
	}
}

// strippedLen counts the token's letters, digits, and cadence punctuation,
// ignoring everything else (quotes, dashes, brackets).
func strippedLen(token string) int {
	n := 0
	for _, r := range token {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			n++
		case r == '.' || r == ',' || r == '!' || r == '?' || r == ';' || r == ':':
			n++
		}
	}
	return n
}
