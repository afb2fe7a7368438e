package domain

import "strings"

// IsSingleWord reports whether the trimmed text is exactly one whitespace-delimited token.
func IsSingleWord(text string) bool {
	return len(strings.Fields(text)) == 1
}

// CleanWord prepares a word for audio and reference URLs:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - drops everything except ASCII letters and digits
func CleanWord(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PrimaryLanguage returns the primary subtag of a language code ("en-US" -> "en").
func PrimaryLanguage(code string) string {
	code = strings.TrimSpace(code)
	if i := strings.IndexFunc(code, func(r rune) bool { return r == '-' || r == '_' }); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

// Truncate returns at most n runes of text.
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
