package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ── Serializer ─────────────────────────────────────────────
// Newline-delimited JSON: one compact object per record, one record
// per line, fields in record order. HTML escaping is disabled so any
// non-ASCII content the sanitizer let through lands as literal UTF-8
// bytes rather than \u escapes.

// WriteNDJSON serializes the record set to w and returns the number
// of bytes written.
func WriteNDJSON(w io.Writer, rs RecordSet) (int64, error) {
	var written int64
	var line bytes.Buffer
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)

	// encode renders one JSON value without the trailing newline
	// json.Encoder appends.
	encode := func(v any) ([]byte, error) {
		scratch.Reset()
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return bytes.TrimRight(scratch.Bytes(), "\n"), nil
	}

	for i, r := range rs {
		line.Reset()
		line.WriteByte('{')
		for j, name := range r.Fields() {
			if j > 0 {
				line.WriteByte(',')
			}
			k, err := encode(name)
			if err != nil {
				return written, fmt.Errorf("record %d: encode key %q: %w", i, name, err)
			}
			line.Write(k)
			line.WriteByte(':')
			v, _ := r.Get(name)
			b, err := encode(v)
			if err != nil {
				return written, fmt.Errorf("record %d: encode field %q: %w", i, name, err)
			}
			line.Write(b)
		}
		line.WriteByte('}')
		line.WriteByte('\n')

		n, err := w.Write(line.Bytes())
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("record %d: write: %w", i, err)
		}
	}
	return written, nil
}
