package utils

import "strings"

// isDigitRune reports whether r is a Latin, Arabic-Indic or Eastern
// Arabic-Indic digit. Comment bodies must not contain any of these.
func isDigitRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= '٠' && r <= '٩': // ٠..٩
		return true
	case r >= '۰' && r <= '۹': // ۰..۹
		return true
	}
	return false
}

// StripDigits removes every digit character from s, covering the Latin and
// both Arabic-Indic ranges used by the app's supported scripts.
func StripDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDigitRune(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsDigits reports whether s still carries any digit character.
func ContainsDigits(s string) bool {
	for _, r := range s {
		if isDigitRune(r) {
			return true
		}
	}
	return false
}

// TruncateRunes shortens s to at most n runes. Truncation is rune based so
// multi-byte Arabic or Turkish text is never cut mid-character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
