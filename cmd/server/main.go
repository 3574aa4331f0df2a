package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/light-bringer/procat-admin/internal/config"
	"github.com/light-bringer/procat-admin/internal/services"
	"github.com/light-bringer/procat-admin/internal/transport/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	// 1. Load configuration from file and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Starting Product Catalog Admin...")
	log.Printf("Product API: %s", cfg.API.BaseURL)
	log.Printf("Listen address: %s", cfg.UI.ListenAddr)
	log.Printf("Page size: %d", cfg.UI.PageSize)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	if !serviceOpts.Session.IsAuthenticated() {
		log.Printf("No valid API token configured; the UI will show the signed-out page")
	}

	// 3. Initial load; a failure leaves an empty list that can be refreshed later
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	if err := serviceOpts.Store.Load(loadCtx); err != nil {
		log.Printf("Initial product load failed: %v", err)
	}
	cancel()

	// 4. Start HTTP server in background
	app := web.NewApp(serviceOpts.WebHandler, true)
	go func() {
		log.Printf("HTTP server listening on %s", cfg.UI.ListenAddr)
		if err := app.Listen(cfg.UI.ListenAddr); err != nil {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// 5. Graceful shutdown handling
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Shutting down gracefully...")
				return app.ShutdownWithContext(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}
