package export

import (
	"fmt"
	"strings"
)

// ── Sanitizer ──────────────────────────────────────────────
// Strips control characters and non-printable-ASCII bytes from text
// columns so the output is safe for a columnar query engine.
//
// A column is treated as text when any of its present values is a
// string or bool, or when it holds nothing but nulls. Purely numeric
// or datetime columns pass through untouched.

// Sanitize cleans every text column of the record set in place.
// Each value in a text column (null included) is coerced to its string
// form, then \r, \n and \t are replaced by a single space and any rune
// outside printable ASCII (0x20-0x7E) is deleted.
func Sanitize(rs RecordSet) {
	for _, col := range rs.Columns() {
		if !textColumn(rs, col) {
			continue
		}
		for _, r := range rs {
			if v, ok := r.Get(col); ok {
				r.Set(col, CleanText(Stringify(v)))
			}
		}
	}
}

// textColumn decides whether a column is text-like.
func textColumn(rs RecordSet, col string) bool {
	sawValue := false
	for _, r := range rs {
		v, ok := r.Get(col)
		if !ok {
			continue
		}
		switch v.(type) {
		case string, bool:
			return true
		case nil:
		default:
			sawValue = true
		}
	}
	// All-null columns have no type of their own; treat them as text.
	return !sawValue
}

// CleanText replaces \r, \n and \t with a single space and removes
// every rune outside the printable ASCII range.
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			b.WriteByte(' ')
		case r >= 0x20 && r <= 0x7E:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Stringify renders any value in its plain text form. Nulls become
// Go's textual nil form; this is the schema-default fallback the
// caster relies on for string-typed fields.
func Stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
