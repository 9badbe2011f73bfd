package config_test

import (
	"strings"
	"testing"

	"metricsync/internal/config"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB", "metrics")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bucket != "my-bucket" {
		t.Errorf("bucket default: %s", cfg.Bucket)
	}
	if cfg.RunLogPath != "export-runs.db" {
		t.Errorf("runlog default: %s", cfg.RunLogPath)
	}
	if cfg.Schedule != "" || cfg.RegistryPath != "" {
		t.Errorf("optional values not empty: %+v", cfg)
	}
	if cfg.StageDir == "" {
		t.Error("stage dir default missing")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BUCKET_NAME", "analytics-landing")
	t.Setenv("EXPORT_SCHEDULE", "0 3 * * *")
	t.Setenv("EXPORT_RUNLOG", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bucket != "analytics-landing" {
		t.Errorf("bucket: %s", cfg.Bucket)
	}
	if cfg.Schedule != "0 3 * * *" {
		t.Errorf("schedule: %s", cfg.Schedule)
	}
	// Explicit empty string disables run history.
	if cfg.RunLogPath != "" {
		t.Errorf("runlog: %q", cfg.RunLogPath)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB", "metrics")
	if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "MONGODB_URI") {
		t.Errorf("expected MONGODB_URI error, got %v", err)
	}

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB", "")
	if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "MONGODB_DB") {
		t.Errorf("expected MONGODB_DB error, got %v", err)
	}
}
