package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-provided settings for one process run.
type Config struct {
	MongoURI string // MONGODB_URI (required)
	MongoDB  string // MONGODB_DB (required)
	Bucket   string // BUCKET_NAME, default "my-bucket"

	RegistryPath string // EXPORT_REGISTRY: optional YAML collection table
	Schedule     string // EXPORT_SCHEDULE: optional cron expression
	RunLogPath   string // EXPORT_RUNLOG: sqlite run history, "" disables
	StageDir     string // EXPORT_STAGE_DIR, default os.TempDir()
}

// Load reads configuration from the environment. A local .env file is
// applied first if present.
func Load() (*Config, error) {
	// Best effort — running without a .env file is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:     os.Getenv("MONGODB_URI"),
		MongoDB:      os.Getenv("MONGODB_DB"),
		Bucket:       getenv("BUCKET_NAME", "my-bucket"),
		RegistryPath: os.Getenv("EXPORT_REGISTRY"),
		Schedule:     os.Getenv("EXPORT_SCHEDULE"),
		RunLogPath:   getenv("EXPORT_RUNLOG", "export-runs.db"),
		StageDir:     getenv("EXPORT_STAGE_DIR", os.TempDir()),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.MongoDB == "" {
		return nil, fmt.Errorf("MONGODB_DB is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
