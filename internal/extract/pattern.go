package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Normalizer maps a raw captured value to its canonical form. A failing
// normalizer rejects the candidate without aborting the rest of the search.
type Normalizer func(raw string) (string, error)

// Pattern describes how one metric is pulled out of free text. Strict
// expressions are tried in priority order against the cleaned full text; the
// keyword vocabulary drives the per-line fallback when none of them match.
type Pattern struct {
	Name      string
	Strict    []*regexp.Regexp // each captures (?P<value>...)
	Unit      string
	Normalize Normalizer
	Keywords  []string
}

// snippetContext is the amount of surrounding text kept on each side of a
// strict match to justify the captured value.
const snippetContext = 60

var (
	reNumberToken = regexp.MustCompile(`[0-9]+(?:[\.,][0-9]+)?`)
	reNumericOnly = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?$`)
)

var lineSeparators = []string{":", "=", "-", "→"}

// Search runs the two-tier match and returns the canonical value together
// with the snippet that justifies it. The strict phase short-circuits on its
// first successful expression; the fallback phase only runs when no strict
// expression matched and both lines and keywords are available.
func (p *Pattern) Search(text string, lines []string) (value, snippet string, ok bool) {
	for _, re := range p.Strict {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		vi := re.SubexpIndex("value")
		if vi < 0 || loc[2*vi] < 0 {
			continue
		}
		raw := strings.ReplaceAll(text[loc[2*vi]:loc[2*vi+1]], ",", ".")
		val := raw
		if p.Normalize != nil {
			v, err := p.Normalize(raw)
			if err != nil {
				// this expression is non-matching, try the next one
				continue
			}
			val = v
		}
		return val, contextWindow(text, loc[0], loc[1]), true
	}
	if len(lines) > 0 && len(p.Keywords) > 0 {
		return p.searchWithKeywords(lines)
	}
	return "", "", false
}

// searchWithKeywords scores each line by the number of folded keywords it
// contains and keeps the best-scoring line that yields a candidate value.
// Equal scores keep the earliest line in document order.
func (p *Pattern) searchWithKeywords(lines []string) (string, string, bool) {
	folded := make([]string, len(p.Keywords))
	for i, kw := range p.Keywords {
		folded[i] = Fold(kw)
	}

	var bestValue, bestSnippet string
	bestScore := 0
	for _, line := range lines {
		if line == "" {
			continue
		}
		foldedLine := Fold(line)
		score := 0
		for _, kw := range folded {
			if strings.Contains(foldedLine, kw) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		candidate := extractValueFromLine(line, p.Unit)
		if candidate == "" {
			continue
		}
		numeric := strings.ReplaceAll(candidate, ",", ".")
		if !reNumericOnly.MatchString(numeric) {
			numeric = strings.TrimSpace(candidate)
		}
		if score > bestScore {
			bestScore = score
			bestValue = numeric
			bestSnippet = strings.TrimSpace(line)
		}
	}
	if bestScore == 0 {
		return "", "", false
	}
	if p.Normalize != nil {
		v, err := p.Normalize(bestValue)
		if err != nil {
			// unlike the strict phase there is no next candidate to try
			return "", "", false
		}
		bestValue = v
	}
	return bestValue, bestSnippet, true
}

// extractValueFromLine is the best-effort heuristic of the fallback phase:
// unit-adjacent numeric token first, then any numeric token, then the
// right-hand side of a key/value separator (truncated at the unit if one is
// expected). It never validates ranges.
func extractValueFromLine(line, unit string) string {
	cleaned := strings.TrimSpace(line)
	if cleaned == "" {
		return ""
	}
	if unit != "" {
		q := regexp.QuoteMeta(strings.ToLower(unit))
		before := regexp.MustCompile(`(?i)([0-9]+(?:[\.,][0-9]+)?)\s*` + q)
		if m := before.FindStringSubmatch(cleaned); m != nil {
			return m[1]
		}
		after := regexp.MustCompile(`(?i)` + q + `\s*([0-9]+(?:[\.,][0-9]+)?)`)
		if m := after.FindStringSubmatch(cleaned); m != nil {
			return m[1]
		}
	}
	if m := reNumberToken.FindString(cleaned); m != "" {
		return m
	}
	for _, sep := range lineSeparators {
		idx := strings.Index(cleaned, sep)
		if idx < 0 {
			continue
		}
		candidate := strings.TrimSpace(cleaned[idx+len(sep):])
		if unit != "" {
			if ui := strings.Index(strings.ToLower(candidate), strings.ToLower(unit)); ui >= 0 {
				candidate = strings.TrimSpace(candidate[:ui])
			}
		}
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// contextWindow clips ~60 characters of context around a strict match,
// backing offsets up to rune boundaries so multi-byte text never splits.
func contextWindow(text string, start, end int) string {
	s := start - snippetContext
	if s < 0 {
		s = 0
	}
	for s > 0 && !utf8.RuneStart(text[s]) {
		s--
	}
	e := end + snippetContext
	if e > len(text) {
		e = len(text)
	}
	for e < len(text) && !utf8.RuneStart(text[e]) {
		e++
	}
	return Clean(text[s:e])
}
