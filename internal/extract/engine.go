// Package extract identifies ergonomic-assessment metrics in recognized
// document text. Each supported method (Garg, Kodak, RSST) owns an ordered
// list of patterns; a pattern matches either through a strict regular
// expression over the cleaned full text or, failing that, through a
// keyword-scored per-line heuristic. Every captured value is returned with a
// text snippet proving where it came from.
package extract

import "github.com/tomless5599/TP2/constants"

// ExtractMetrics parses text and returns one Result per method that produced
// at least one metric, in catalog order. Methods with zero matches are
// omitted. The engine is stateless: callers may run extractions concurrently
// on their own inputs.
func ExtractMetrics(text string) []*Result {
	cleaned := Clean(text)
	lines := CleanLines(text)

	var results []*Result
	for _, method := range constants.Methods {
		result := NewResult(method)
		for _, pattern := range PatternsFor(method) {
			if value, snippet, ok := pattern.Search(cleaned, lines); ok {
				result.Add(pattern.Name, value, snippet)
			}
		}
		if len(result.Metrics) > 0 {
			results = append(results, result)
		}
	}
	return results
}
