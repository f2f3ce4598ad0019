package odata

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Row is one record returned by the entity-query service: a mapping from
// field name to value. The field set varies per entity set and no field is
// guaranteed to be present or populated.
type Row map[string]any

// Float returns the named field as a float64. Absent, null, or unparseable
// values yield 0 rather than an error.
func (r Row) Float(field string) float64 {
	v, ok := r[field]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int returns the named field as an int, truncating fractional values.
// Absent, null, or unparseable values yield 0.
func (r Row) Int(field string) int {
	return int(r.Float(field))
}

// String returns the named field as a string, or "" when absent or null.
func (r Row) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
