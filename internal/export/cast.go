package export

import (
	"strconv"
	"strings"
	"time"

	"metricsync/internal/registry"
)

// ── Type Caster ────────────────────────────────────────────
// Coerces declared fields to their semantic type. Individual values
// that fail to parse degrade to null; a cast never aborts a field or
// a record. Fields missing from the schema pass through unchanged,
// fields missing from a record stay missing.

// dateLayouts are tried in order when parsing date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// CastTypes applies the collection schema to the record set in place.
func CastTypes(rs RecordSet, schema []registry.FieldSpec) {
	for _, spec := range schema {
		if !rs.HasColumn(spec.Name) {
			continue
		}
		for _, r := range rs {
			v, ok := r.Get(spec.Name)
			if !ok {
				continue
			}
			switch spec.Type {
			case registry.TypeInt:
				r.Set(spec.Name, castInt(v))
			case registry.TypeFloat:
				r.Set(spec.Name, castFloat(v))
			case registry.TypeDate:
				r.Set(spec.Name, castDate(v))
			default:
				// Schema-default fallback: unconditional string coercion,
				// nulls included. Never yields nil.
				r.Set(spec.Name, Stringify(v))
			}
		}
	}
}

// castInt parses a numeric value and truncates it toward zero.
// Returns int64 or nil.
func castInt(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
		return nil
	default:
		return nil
	}
}

// castFloat parses a numeric value. Returns float64 or nil.
func castFloat(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
		return nil
	default:
		return nil
	}
}

// castDate normalizes a date value to YYYY-MM-DD, discarding any
// time-of-day. Returns string or nil.
func castDate(v any) any {
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006-01-02")
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02")
			}
		}
		return nil
	default:
		return nil
	}
}
