package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reWhitespace = regexp.MustCompile(`\s+`)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean collapses any whitespace run (tabs, newlines included) into a single
// space and trims the ends. Strict patterns assume cleaned input so they never
// have to account for irregular spacing.
func Clean(s string) string {
	return reWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Fold lowercases and strips diacritics (e.g. "Pondérée" -> "ponderee").
// Used only for keyword comparison, never for value extraction, so accented
// source text does not block fallback matching nor corrupt captured values.
func Fold(s string) string {
	result, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// CleanLines splits raw text on newlines and cleans each line individually,
// preserving document order for the keyword fallback.
func CleanLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = Clean(l)
	}
	return lines
}
