package domain

import (
	"strings"
	"unicode/utf8"
)

// estimatedCharsPerToken is the rough characters-per-token ratio used when a
// backend does not report usage. It is an approximation, not a count.
const estimatedCharsPerToken = 4

// EstimateTokens approximates the token count of text using the chars/4
// heuristic. Callers must tag the resulting usage as TokenCountEstimated.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text) / estimatedCharsPerToken
	if n == 0 {
		n = 1
	}
	return n
}

// CountWords returns the whitespace-separated word count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
