package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize maps a folder name or catalog title to its comparable form.
// The result is safe to compare with ==; it carries no other meaning.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	// cases.Caser keeps state, so each call gets its own.
	folded := cases.Fold().String(norm.NFKC.String(value))
	return strings.TrimSpace(folded)
}

// SameTitle reports whether two titles are equal after normalization.
// Two empty inputs never match.
func SameTitle(a, b string) bool {
	na := Normalize(a)
	if na == "" {
		return false
	}
	return na == Normalize(b)
}
