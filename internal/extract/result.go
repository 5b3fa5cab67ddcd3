package extract

// Result holds the metrics extracted for one assessment method. Metrics and
// Snippets always share the same key set; names preserves pattern evaluation
// order for deterministic export.
type Result struct {
	Method   string
	Metrics  map[string]string
	Snippets map[string]string

	names []string
}

func NewResult(method string) *Result {
	return &Result{
		Method:   method,
		Metrics:  map[string]string{},
		Snippets: map[string]string{},
	}
}

// Add records a matched metric with the snippet that justifies it.
func (r *Result) Add(name, value, snippet string) {
	if _, seen := r.Metrics[name]; !seen {
		r.names = append(r.names, name)
	}
	r.Metrics[name] = value
	r.Snippets[name] = snippet
}

// Names returns metric names in insertion order.
func (r *Result) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// ToRow flattens the result into a single-level row for tabular export.
func (r *Result) ToRow() map[string]string {
	row := map[string]string{"method": r.Method}
	for name, value := range r.Metrics {
		row[name] = value
	}
	return row
}

// MergeFrom copies the other result's metrics and snippets into r,
// overwriting on name collisions. Used by the export-side merge step.
func (r *Result) MergeFrom(other *Result) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		r.Add(name, other.Metrics[name], other.Snippets[name])
	}
}
