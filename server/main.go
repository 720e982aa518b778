package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phambaophuc/pdf-watermark/internal/config"
	"github.com/phambaophuc/pdf-watermark/internal/http/handlers"
	"github.com/phambaophuc/pdf-watermark/internal/http/routes"
	"github.com/phambaophuc/pdf-watermark/internal/services/processor"
	"github.com/phambaophuc/pdf-watermark/internal/services/queue"
	"github.com/phambaophuc/pdf-watermark/internal/services/storage"
	"github.com/phambaophuc/pdf-watermark/internal/services/watermark"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Render the watermark artifact once, before serving anything
	stamper := watermark.New(cfg.Watermark, logger)
	if err := stamper.Init(); err != nil {
		logger.Fatal("Failed to initialize watermark", zap.Error(err))
	}

	// Initialize services
	store, err := storage.NewStorageService(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}
	defer store.Close()

	documents := processor.NewDocumentProcessor(stamper, store, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var jobQueue handlers.JobQueue
	queueService, err := queue.NewQueueService(cfg.RabbitMQ.URL, documents, store, logger)
	if err != nil {
		logger.Warn("Failed to initialize queue service", zap.Error(err))
		// Continue without queue service for synchronous uploads
	} else {
		defer queueService.Close()
		for i := 1; i <= cfg.RabbitMQ.Workers; i++ {
			if err := queueService.StartWorker(ctx, i); err != nil {
				logger.Fatal("Failed to start worker", zap.Int("worker_id", i), zap.Error(err))
			}
		}
		jobQueue = queueService
	}

	// Initialize handlers
	documentHandler := handlers.NewDocumentHandler(documents, store, jobQueue, logger, cfg)

	router := routes.NewRouter(documentHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
