package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/aws/session"

	"metricsync/internal/config"
	"metricsync/internal/dbclient"
	"metricsync/internal/export"
	"metricsync/internal/publish"
	"metricsync/internal/registry"
	"metricsync/internal/service"
	"metricsync/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	collections := registry.Default()
	if cfg.RegistryPath != "" {
		collections, err = registry.LoadFile(cfg.RegistryPath)
		if err != nil {
			log.Fatalf("registry: %v", err)
		}
	}

	reader, err := dbclient.NewMongoReader(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer reader.Close()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	publisher := publish.NewS3Publisher(sess)

	var runs *storage.RunStore
	if cfg.RunLogPath != "" {
		db, err := storage.New(cfg.RunLogPath)
		if err != nil {
			log.Printf("run history disabled: %v", err)
		} else {
			defer db.Close()
			runs = storage.NewRunStore(db)
		}
	}

	engine := &export.Engine{
		Reader:      reader,
		Publisher:   publisher,
		Bucket:      cfg.Bucket,
		Collections: collections,
		StageDir:    cfg.StageDir,
	}
	svc := service.NewExportService(engine, runs)

	ctx := context.Background()

	if cfg.Schedule == "" {
		// One-shot mode. Per-collection failures are logged and recorded;
		// the process still exits 0.
		svc.RunOnce(ctx)
		return
	}

	if err := svc.Schedule(ctx, cfg.Schedule); err != nil {
		log.Fatalf("schedule: %v", err)
	}
	defer svc.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Printf("shutting down")
}
