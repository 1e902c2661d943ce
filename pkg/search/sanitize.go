package search

import "strings"

// allowedPunctuation lists the non-alphanumeric characters a search term may keep
const allowedPunctuation = "_./-@,#:;"

// Sanitize drops every character that is not an ASCII letter, an ASCII digit
// or one of "_./-@,#:;". Dropped characters are removed, not replaced.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isAllowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Trim removes leading and trailing whitespace
func Trim(text string) string {
	return strings.TrimSpace(text)
}

func isAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(allowedPunctuation, r)
}
