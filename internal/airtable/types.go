package airtable

import "time"

// Record is one row of a table as returned by the tabular store. Fields is
// an open bag; all value coercion happens at the aggregation boundary, not
// here. Records are never mutated after being fetched.
type Record struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime string         `json:"createdTime,omitempty"`
}

// SortSpec orders results by one field.
type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // "asc" or "desc"
}

// Options narrows a table fetch. All fields are optional.
type Options struct {
	// Fields restricts the returned field set.
	Fields []string
	// FilterByFormula is a server-side filter expression, passed through opaquely.
	FilterByFormula string
	// MaxRecords caps the total number of records returned.
	MaxRecords int
	// Sort is applied server-side in order.
	Sort []SortSpec
	// View selects a server-side saved view.
	View string
	// CacheTTL overrides the client default when non-nil. A zero duration
	// disables caching for this call.
	CacheTTL *time.Duration
}

// pageResponse is one page of the upstream list-records endpoint.
type pageResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// errorResponse is the upstream error envelope; the message is carried into
// error context on permanent failures.
type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
