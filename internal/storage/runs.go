package storage

import (
	"github.com/google/uuid"

	"metricsync/internal/export"
)

// RunStore persists export run reports, one row per collection per run.
type RunStore struct {
	db *DB
}

// NewRunStore creates a RunStore.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// CreateRun inserts a run report and returns its generated id.
func (s *RunStore) CreateRun(report export.RunReport) (string, error) {
	id := uuid.New().String()
	_, err := s.db.conn.Exec(
		`INSERT INTO export_runs (id, collection_name, status, records, bytes, object_key, started_at, finished_at, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.Collection, report.Status, report.Records, report.Bytes,
		report.Key, report.StartedAt, report.FinishedAt, report.Error,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns the most recent reports for a collection, newest first.
func (s *RunStore) ListRuns(collection string, limit int) ([]export.RunReport, error) {
	rows, err := s.db.conn.Query(
		`SELECT collection_name, status, records, bytes, object_key, started_at, finished_at, error
		 FROM export_runs WHERE collection_name = ? ORDER BY started_at DESC LIMIT ?`,
		collection, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []export.RunReport
	for rows.Next() {
		var r export.RunReport
		if err := rows.Scan(&r.Collection, &r.Status, &r.Records, &r.Bytes, &r.Key, &r.StartedAt, &r.FinishedAt, &r.Error); err != nil {
			return nil, err
		}
		r.Duration = r.FinishedAt.Sub(r.StartedAt)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
