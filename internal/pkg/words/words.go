// Package words holds the field rules shared by every report entry route
// (direct upload, camera capture, draft commit, edit). Keep them here and
// nowhere else so the rules cannot drift between routes.
package words

import "strings"

const (
	TitleMinWords = 1
	TitleMaxWords = 10

	DescriptionMinWords = 30
	DescriptionMaxWords = 250
)

// Count returns the number of whitespace-separated words in s.
func Count(s string) int {
	return len(strings.Fields(s))
}

// TitleValid reports whether s contains 1 to 10 words.
func TitleValid(s string) bool {
	n := Count(s)
	return n >= TitleMinWords && n <= TitleMaxWords
}

// DescriptionValid reports whether s contains 30 to 250 words.
func DescriptionValid(s string) bool {
	n := Count(s)
	return n >= DescriptionMinWords && n <= DescriptionMaxWords
}

// Present reports whether s is non-empty after trimming.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}
