package stats

import "pulseboard/internal/airtable"

// PickField returns the first candidate field name that any record carries
// with a usable (non-nil, non-empty) value. Falls back to the first
// candidate so breakdowns still produce a well-formed "(empty)" bucket when
// no record carries any of them.
//
// This makes the "which field means X" policy explicit: callers declare an
// ordered candidate list per logical metric instead of guessing inline
// across schema variants.
func PickField(records []airtable.Record, candidates ...string) string {
	if len(candidates) == 0 {
		return ""
	}
	for _, name := range candidates {
		for _, rec := range records {
			v, ok := rec.Fields[name]
			if !ok || v == nil {
				continue
			}
			if s, isStr := v.(string); isStr && s == "" {
				continue
			}
			return name
		}
	}
	return candidates[0]
}
