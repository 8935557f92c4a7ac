package domain

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// MsgEmptyWord is shown when a search is triggered with a blank field.
	MsgEmptyWord = "Please enter a word to search"

	// MsgLookupFailed is shown when a failed lookup carries no message of its own.
	MsgLookupFailed = "Word not found, try another word"
)

// disallowedInput matches everything a user may not type into the search
// field: only ASCII letters, whitespace and hyphens survive. Whitespace is
// the browser's \s, which also covers \v, Unicode space separators, the
// line and paragraph separators and the byte order mark.
var disallowedInput = regexp.MustCompile(`[^A-Za-z\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}-]`)

// FilterInput strips disallowed characters from a live field value.
func FilterInput(value string) string {
	return disallowedInput.ReplaceAllString(value, "")
}

// PrepareWord trims the raw field value and rejects blank input.
func PrepareWord(raw string) (string, error) {
	word := strings.TrimFunc(raw, isSpace)
	if word == "" {
		return "", NewValidationError("word", MsgEmptyWord)
	}
	return word, nil
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
