package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"graphcanvas/infrastructure/config"
	"graphcanvas/infrastructure/di"
	"graphcanvas/interfaces/http/rest"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Hot-reload the editor when the canvas file changes. Editing state
	// and graph content are discarded; a reloaded schema means the old
	// graph may no longer validate against it.
	if cfg.WatchCanvas {
		container.Watcher.OnChange(func(canvas *config.CanvasConfig) {
			ed, err := di.BuildEditor(canvas, container.Hub, container.Logger)
			if err != nil {
				container.Logger.Error("Canvas reload produced no editor", zap.Error(err))
				return
			}
			container.Host.Replace(ed)
			container.Logger.Info("Editor rebuilt from reloaded canvas")
		})
		container.Watcher.Start()
		defer container.Watcher.Stop()
	}

	// Create router
	router := rest.NewRouter(
		container.Host,
		container.Hub,
		cfg,
		container.Logger,
	)

	// Setup routes
	handler := router.Setup()

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("canvas", cfg.CanvasPath),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	container.Hub.Close()

	// Clean up resources
	if err := container.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
