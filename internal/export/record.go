package export

// ── Record ─────────────────────────────────────────────────
// Common intermediate data format: one database document after
// identifier removal. Field order follows document order, so the
// serialized output mirrors what the database returned.

// Record is a single document flowing through the pipeline.
// Values are loosely typed: string, int64, float64, bool, time.Time,
// nested map/slice, or nil.
type Record struct {
	fields []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores a value, appending the field to the order on first set.
func (r *Record) Set(name string, v any) {
	if _, ok := r.values[name]; !ok {
		r.fields = append(r.fields, name)
	}
	r.values[name] = v
}

// Get returns the value and whether the field is present.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the field is present.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Fields returns field names in insertion order.
func (r *Record) Fields() []string {
	return r.fields
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// RecordSet is the ordered set of records for one collection.
type RecordSet []*Record

// Columns returns the union of field names across all records,
// in first-seen order.
func (rs RecordSet) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range rs {
		for _, f := range r.fields {
			if !seen[f] {
				seen[f] = true
				cols = append(cols, f)
			}
		}
	}
	return cols
}

// HasColumn reports whether any record carries the field.
func (rs RecordSet) HasColumn(name string) bool {
	for _, r := range rs {
		if r.Has(name) {
			return true
		}
	}
	return false
}
