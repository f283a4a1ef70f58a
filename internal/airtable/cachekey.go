package airtable

import (
	"sort"
	"strconv"
	"strings"

	pstrings "pulseboard/pkg/platform/strings"
)

// cacheKey builds a deterministic key from the resolved table ID and a
// canonical encoding of every query option. Two logically identical queries
// must produce the same key; any differing option must produce a different
// one. The field list is deduped and order-normalized so fields=[A,B] and
// fields=[B,A] share a slot.
func cacheKey(tableID string, opts Options) string {
	fields := pstrings.DedupeAndTrim(opts.Fields)
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)

	sorts := make([]string, 0, len(opts.Sort))
	for _, s := range opts.Sort {
		sorts = append(sorts, s.Field+":"+s.Direction)
	}

	var b strings.Builder
	b.WriteString("airtable:")
	b.WriteString(tableID)
	b.WriteString("|f=")
	b.WriteString(strings.Join(sorted, ","))
	b.WriteString("|q=")
	b.WriteString(opts.FilterByFormula)
	b.WriteString("|m=")
	b.WriteString(strconv.Itoa(opts.MaxRecords))
	b.WriteString("|s=")
	b.WriteString(strings.Join(sorts, ";"))
	b.WriteString("|v=")
	b.WriteString(opts.View)
	return b.String()
}
