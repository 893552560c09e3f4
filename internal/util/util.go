// internal/util/util.go
package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// OneLine collapses all whitespace runs (including newlines) into single
// spaces so a chunk of document text can be shown inline.
func OneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Snippet renders text as a single truncated line, suitable for source
// previews and log payloads.
func Snippet(text string, maxRunes int) string {
	return TruncateRunes(OneLine(text), maxRunes)
}
