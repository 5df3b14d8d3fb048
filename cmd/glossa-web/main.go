// Command glossa-web serves the Glossa analysis API for the workbench
// frontend.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glossahq/glossa/internal/config"
	"github.com/glossahq/glossa/internal/server"
	"github.com/glossahq/glossa/internal/storage"
	"github.com/glossahq/glossa/internal/storage/postgres"
	"github.com/glossahq/glossa/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default: env-only configuration)")
	flag.Parse()

	if *configPath == "" {
		*configPath = os.Getenv("GLOSSA_CONFIG")
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the report store
	store, err := openReportStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize report store: %v", err)
	}
	defer store.Close()

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, _ := server.Start(ctx, cfg, store)
	log.Printf("Glossa analysis API running at http://%s", addr)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	time.Sleep(1 * time.Second) // Give time for connections to close
}

// openReportStore picks the store backend from configuration.
func openReportStore(cfg *config.Config) (storage.ReportStore, error) {
	switch cfg.Storage.StorageEngine {
	case "postgres":
		return postgres.NewReportStore(cfg.Storage.PostgresDSN)
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, err
		}
		return sqlite.NewReportStore(cfg.Storage.DataPath + "/glossa.db")
	}
}
