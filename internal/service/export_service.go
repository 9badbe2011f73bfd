package service

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"metricsync/internal/export"
	"metricsync/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Export service — runs the engine and records run history
// ─────────────────────────────────────────────────────────────

// ExportService executes exports once or on a cron schedule and
// persists per-collection run reports. The run store is optional;
// with a nil store history is simply not kept.
type ExportService struct {
	engine *export.Engine
	runs   *storage.RunStore

	sched *cron.Cron
}

// NewExportService creates an ExportService ready for use.
func NewExportService(engine *export.Engine, runs *storage.RunStore) *ExportService {
	return &ExportService{engine: engine, runs: runs}
}

// RunOnce executes a full export over all configured collections and
// persists the reports. It never returns an error: per-collection
// failures live inside the reports.
func (s *ExportService) RunOnce(ctx context.Context) []export.RunReport {
	reports := s.engine.Run(ctx)
	if s.runs != nil {
		for _, r := range reports {
			if _, err := s.runs.CreateRun(r); err != nil {
				log.Printf("export: record run for %s: %v", r.Collection, err)
			}
		}
	}
	return reports
}

// Schedule registers the export under the given cron expression and
// starts the scheduler. The export keeps running periodically until
// Stop is called.
func (s *ExportService) Schedule(ctx context.Context, expr string) error {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		log.Printf("export cron: running scheduled export")
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	c.Start()
	s.sched = c
	log.Printf("export cron: scheduled with %q", expr)
	return nil
}

// Stop halts the scheduler if one is running. Safe to call repeatedly.
func (s *ExportService) Stop() {
	if s.sched != nil {
		s.sched.Stop()
		s.sched = nil
	}
}
