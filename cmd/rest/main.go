package main

import (
	"context"
	"log"
	"os"

	"rag-kb-be/internal/bootstrap"
	"rag-kb-be/internal/config"
	"rag-kb-be/internal/server"
	"rag-kb-be/internal/tracer"
	"rag-kb-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	// Uploads land here before the consumer picks them up.
	if err := os.MkdirAll(cfg.Ingest.UploadDir, 0o755); err != nil {
		log.Panicf("Unable to create upload directory: %v", err)
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Ingestion runs off the request path; the consumer owns the pipeline.
	if err := container.IngestService.Consume(context.Background()); err != nil {
		log.Panicf("Unable to start ingest consumer: %v", err)
	}

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
