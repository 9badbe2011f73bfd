package export_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"metricsync/internal/export"
)

func TestWriteNDJSON_OneObjectPerLine(t *testing.T) {
	rs := export.RecordSet{
		record("postId", "a1", "views", int64(10)),
		record("postId", "b2", "views", int64(20)),
	}

	var buf bytes.Buffer
	n, err := export.WriteNDJSON(&buf, rs)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	for _, line := range lines {
		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Fatalf("line %q is not valid JSON: %v", line, err)
		}
	}
}

func TestWriteNDJSON_FieldOrderPreserved(t *testing.T) {
	rs := export.RecordSet{record("z", "1", "a", "2", "m", "3")}

	var buf bytes.Buffer
	if _, err := export.WriteNDJSON(&buf, rs); err != nil {
		t.Fatal(err)
	}

	want := `{"z":"1","a":"2","m":"3"}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteNDJSON_NonASCIIKeptLiteral(t *testing.T) {
	rs := export.RecordSet{record("caption", "café ☕")}

	var buf bytes.Buffer
	if _, err := export.WriteNDJSON(&buf, rs); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "café ☕") {
		t.Fatalf("non-ASCII was escaped: %q", buf.String())
	}
	if strings.Contains(buf.String(), `\u`) {
		t.Fatalf("found escape sequence: %q", buf.String())
	}
}

func TestWriteNDJSON_NoHTMLEscaping(t *testing.T) {
	rs := export.RecordSet{record("url", "https://x.test/a?b=1&c=<2>")}

	var buf bytes.Buffer
	if _, err := export.WriteNDJSON(&buf, rs); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `&`) || strings.Contains(buf.String(), `<`) {
		t.Fatalf("HTML escaping applied: %q", buf.String())
	}
}

func TestWriteNDJSON_NullAndMissingFields(t *testing.T) {
	rs := export.RecordSet{
		record("postId", "a1", "engagement", nil),
		record("postId", "b2"), // no engagement key at all
	}

	var buf bytes.Buffer
	if _, err := export.WriteNDJSON(&buf, rs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if lines[0] != `{"postId":"a1","engagement":null}` {
		t.Errorf("null field: got %q", lines[0])
	}
	if strings.Contains(lines[1], "engagement") {
		t.Errorf("missing field serialized: %q", lines[1])
	}
}

func TestWriteNDJSON_RoundTrip(t *testing.T) {
	rs := export.RecordSet{
		record("postId", "a1", "views", int64(10), "engagement", 0.05, "datePosted", "2024-05-17"),
		record("postId", "b2", "views", nil),
	}

	var buf bytes.Buffer
	if _, err := export.WriteNDJSON(&buf, rs); err != nil {
		t.Fatal(err)
	}

	var parsed []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(sc.Bytes(), &obj); err != nil {
			t.Fatal(err)
		}
		parsed = append(parsed, obj)
	}
	if len(parsed) != len(rs) {
		t.Fatalf("got %d records back, want %d", len(parsed), len(rs))
	}
	if parsed[0]["postId"] != "a1" || parsed[0]["views"] != 10.0 {
		t.Errorf("record 0 mismatch: %v", parsed[0])
	}
	if parsed[0]["engagement"] != 0.05 || parsed[0]["datePosted"] != "2024-05-17" {
		t.Errorf("record 0 mismatch: %v", parsed[0])
	}
	if parsed[1]["views"] != nil {
		t.Errorf("record 1 views: %v", parsed[1]["views"])
	}
}
