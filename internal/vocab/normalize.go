package vocab

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTerm canonicalizes a word or answer for comparison: Unicode
// NFC (composed) form, lower case, surrounding whitespace removed.
// Kazakh Cyrillic typed on different keyboards can arrive decomposed,
// so byte equality without NFC is unreliable.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// SameTerm reports whether two terms are equal after normalization.
// Comparison is exact match only; no typo or synonym tolerance.
func SameTerm(a, b string) bool {
	return NormalizeTerm(a) == NormalizeTerm(b)
}
