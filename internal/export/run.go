package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"metricsync/internal/registry"
)

// ── Engine ─────────────────────────────────────────────────
// Orchestrates: read → sanitize → cast → serialize → publish for each
// configured collection, one at a time. A failure in one collection is
// reported and never prevents the others from running.

// Reader fetches all documents of a collection as loosely typed
// records, with the identifier field removed. An empty collection is a
// valid result, not an error.
type Reader interface {
	ReadAll(ctx context.Context, collection string) (RecordSet, error)
}

// Publisher uploads a staged file to bucket/key. No retries; the error
// propagates as the collection's failure.
type Publisher interface {
	Upload(ctx context.Context, bucket, key, path string) error
}

// Run statuses.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// RunReport is the outcome of exporting one collection.
type RunReport struct {
	Collection string        `json:"collection"`
	Status     string        `json:"status"`
	Records    int           `json:"records"`
	Bytes      int64         `json:"bytes"`
	Key        string        `json:"key,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
}

// Engine runs the export pipeline over a collection registry.
type Engine struct {
	Reader      Reader
	Publisher   Publisher
	Bucket      string
	Collections []registry.Collection

	// StageDir is where NDJSON files are staged before upload.
	// Defaults to os.TempDir().
	StageDir string
}

// Run exports every configured collection and returns one report per
// collection. It never fails as a whole; per-collection errors are
// logged and carried in the reports.
func (e *Engine) Run(ctx context.Context) []RunReport {
	reports := make([]RunReport, 0, len(e.Collections))
	for _, col := range e.Collections {
		log.Printf("export: processing collection %s", col.Name)
		report := e.runCollection(ctx, col)
		switch report.Status {
		case StatusSuccess:
			log.Printf("export: %s done: %d record(s), %d bytes -> s3://%s/%s",
				col.Name, report.Records, report.Bytes, e.Bucket, report.Key)
		case StatusSkipped:
			log.Printf("export: %s is empty, skipping", col.Name)
		case StatusError:
			log.Printf("export: %s failed: %s", col.Name, report.Error)
		}
		reports = append(reports, report)
	}
	return reports
}

func (e *Engine) runCollection(ctx context.Context, col registry.Collection) RunReport {
	report := RunReport{Collection: col.Name, StartedAt: time.Now()}
	fail := func(err error) RunReport {
		report.Status = StatusError
		report.Error = err.Error()
		report.FinishedAt = time.Now()
		report.Duration = report.FinishedAt.Sub(report.StartedAt)
		return report
	}
	finish := func(status string) RunReport {
		report.Status = status
		report.FinishedAt = time.Now()
		report.Duration = report.FinishedAt.Sub(report.StartedAt)
		return report
	}

	records, err := e.Reader.ReadAll(ctx, col.Name)
	if err != nil {
		return fail(fmt.Errorf("fetch: %w", err))
	}
	report.Records = len(records)
	if len(records) == 0 {
		return finish(StatusSkipped)
	}

	Sanitize(records)
	CastTypes(records, col.Schema)

	stageDir := e.StageDir
	if stageDir == "" {
		stageDir = os.TempDir()
	}
	path := filepath.Join(stageDir, col.FileName())
	f, err := os.Create(path)
	if err != nil {
		return fail(fmt.Errorf("stage %s: %w", path, err))
	}
	n, err := WriteNDJSON(f, records)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fail(fmt.Errorf("serialize: %w", err))
	}
	report.Bytes = n

	key := col.Key()
	report.Key = key
	if err := e.Publisher.Upload(ctx, e.Bucket, key, path); err != nil {
		// The staged file is intentionally left behind on upload failure.
		return fail(fmt.Errorf("upload s3://%s/%s: %w", e.Bucket, key, err))
	}
	if err := os.Remove(path); err != nil {
		log.Printf("export: remove staged file %s: %v", path, err)
	}

	return finish(StatusSuccess)
}
