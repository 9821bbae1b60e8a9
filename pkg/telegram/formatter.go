package telegram

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength stays a little under Telegram's 4096 character cap.
const MaxMessageLength = 4090

// SplitMessage breaks text into parts no longer than maxLen runes, preferring
// to cut at line boundaries.
func SplitMessage(text string, maxLen int) []string {
	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			parts = append(parts, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		lineLen := utf8.RuneCountInString(line)
		if currentLen+lineLen <= maxLen {
			current.WriteString(line)
			currentLen += lineLen
			continue
		}
		flush()

		// A single line longer than the limit is cut by rune count.
		for lineLen > maxLen {
			runes := []rune(line)
			parts = append(parts, string(runes[:maxLen]))
			line = string(runes[maxLen:])
			lineLen -= maxLen
		}
		current.WriteString(line)
		currentLen = lineLen
	}
	flush()

	return parts
}
