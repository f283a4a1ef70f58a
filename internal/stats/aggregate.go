// Package stats holds the pure aggregation functions that turn raw record
// sets into dashboard KPI shapes. All coercion of the open field bags
// (string→number, string→date) lives here; absent, empty, or unparseable
// values contribute nothing and never error.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"pulseboard/internal/airtable"
)

// EmptyBucket collects records whose field is absent or empty in CountByField.
const EmptyBucket = "(empty)"

// NoDateBucket collects records with a missing or unparseable date in GroupByMonth.
const NoDateBucket = "(no date)"

// CountByField builds a breakdown of distinct field values to record counts.
// Sequence values count every element, supporting multi-valued fields.
func CountByField(records []airtable.Record, field string) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		v, ok := rec.Fields[field]
		if !ok || v == nil {
			counts[EmptyBucket]++
			continue
		}
		if elems, isSeq := asStrings(v); isSeq {
			if len(elems) == 0 {
				counts[EmptyBucket]++
				continue
			}
			for _, e := range elems {
				counts[e]++
			}
			continue
		}
		s := stringify(v)
		if s == "" {
			counts[EmptyBucket]++
			continue
		}
		counts[s]++
	}
	return counts
}

// SumField sums numeric-coercible values of field across records.
// Non-numeric and missing values are skipped, never an error.
func SumField(records []airtable.Record, field string) float64 {
	var sum float64
	for _, rec := range records {
		if n, ok := asNumber(rec.Fields[field]); ok {
			sum += n
		}
	}
	return sum
}

// AvgField returns the mean of numeric-coercible values of field, counting
// only the records that contributed a valid number. Returns 0 when none do.
func AvgField(records []airtable.Record, field string) float64 {
	var sum float64
	var count int
	for _, rec := range records {
		if n, ok := asNumber(rec.Fields[field]); ok {
			sum += n
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// FilterRecords keeps records whose field equals value exactly, or whose
// field sequence contains value.
func FilterRecords(records []airtable.Record, field, value string) []airtable.Record {
	var out []airtable.Record
	for _, rec := range records {
		v, ok := rec.Fields[field]
		if !ok || v == nil {
			continue
		}
		if elems, isSeq := asStrings(v); isSeq {
			for _, e := range elems {
				if e == value {
					out = append(out, rec)
					break
				}
			}
			continue
		}
		if stringify(v) == value {
			out = append(out, rec)
		}
	}
	return out
}

// GroupByMonth buckets records by the calendar month of dateField, keyed
// "YYYY-MM". Records with a missing or unparseable date land in NoDateBucket.
func GroupByMonth(records []airtable.Record, dateField string) map[string][]airtable.Record {
	groups := make(map[string][]airtable.Record)
	for _, rec := range records {
		t, ok := parseDate(rec.Fields[dateField])
		if !ok {
			groups[NoDateBucket] = append(groups[NoDateBucket], rec)
			continue
		}
		key := fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
		groups[key] = append(groups[key], rec)
	}
	return groups
}

// CurrentMonthRecords keeps records whose dateField falls within the same
// calendar month as now. Unparseable dates are excluded.
func CurrentMonthRecords(records []airtable.Record, dateField string, now time.Time) []airtable.Record {
	var out []airtable.Record
	for _, rec := range records {
		t, ok := parseDate(rec.Fields[dateField])
		if ok && t.Year() == now.Year() && t.Month() == now.Month() {
			out = append(out, rec)
		}
	}
	return out
}

// RecentRecords keeps records whose dateField falls within the last `days`
// days before now. Unparseable dates are excluded.
func RecentRecords(records []airtable.Record, dateField string, days int, now time.Time) []airtable.Record {
	cutoff := now.AddDate(0, 0, -days)
	var out []airtable.Record
	for _, rec := range records {
		t, ok := parseDate(rec.Fields[dateField])
		if ok && !t.Before(cutoff) && !t.After(now) {
			out = append(out, rec)
		}
	}
	return out
}

// Pct returns part/total as a percentage rounded to one decimal place.
// A zero total yields 0, never a division by zero.
func Pct(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(part/total*1000) / 10
}

// FormatCurrency renders a number rounded to the nearest integer with
// thousands separators and a currency prefix. NaN and infinities render as zero.
func FormatCurrency(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	v := int64(math.Round(n))
	negative := v < 0
	if negative {
		v = -v
	}

	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-€" + b.String()
	}
	return "€" + b.String()
}

// dateLayouts are the accepted date formats, tried in order. Parsing is
// locale-independent.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// asNumber coerces a field value to a float64. JSON numbers arrive as
// float64; numeric strings are accepted as schema drift.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if n == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// asStrings reports whether v is a sequence and returns its elements
// stringified. Scalars return false.
func asStrings(v any) ([]string, bool) {
	switch seq := v.(type) {
	case []string:
		return seq, true
	case []any:
		out := make([]string, 0, len(seq))
		for _, e := range seq {
			out = append(out, stringify(e))
		}
		return out, true
	default:
		return nil, false
	}
}

// stringify renders any scalar value as a mapping key.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		// Whole numbers render without a decimal point.
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
