// Package textnorm folds user utterances into a stable ASCII-ish form so
// keyword tables can stay diacritic-free. Vietnamese input arrives with
// and without tone marks interchangeably.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics replaces accented letters with their base Latin form.
// đ/Đ do not decompose under NFD and are mapped by hand.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	out = strings.ReplaceAll(out, "đ", "d") // đ
	out = strings.ReplaceAll(out, "Đ", "D") // Đ
	return out
}

// Fold normalizes an utterance for pattern matching: lowercase, trimmed,
// terminal punctuation dropped, diacritics stripped. Folding an already
// folded string is a no-op, and word boundaries are preserved.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, "?!.")
	s = strings.TrimSpace(s)
	return StripDiacritics(s)
}

// HasAlphanumeric reports whether s contains at least one letter or digit.
func HasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
