package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promo-admin/internal/config"
	"promo-admin/internal/database"
	"promo-admin/internal/handler"
	"promo-admin/internal/repository"
	"promo-admin/internal/router"
	"promo-admin/internal/service"
	"promo-admin/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting promo-admin server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	promoRepo := repository.NewPromoRepository(pool, logger)
	menuRepo := repository.NewMenuRepository(pool, logger)

	// Initialize image store: local directory, mirrored to S3 when enabled
	localStore := storage.NewLocalStore(cfg.Upload.Dir, logger)
	var imageStore storage.Store

	if cfg.S3.Enabled {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 store, falling back to local file system only")
			imageStore = localStore
		} else {
			imageStore = storage.NewMirrorStore(localStore, s3Store, logger)
		}
	} else {
		// S3 disabled, use local file system only
		imageStore = localStore
		logger.Info().Str("dir", cfg.Upload.Dir).Msg("using local file system for images (S3 disabled)")
	}

	// Initialize services
	promoService := service.NewPromoService(promoRepo, imageStore, cfg.Upload.CleanupPath, logger)
	menuService := service.NewMenuService(menuRepo, logger)

	// Initialize HTTP handlers
	views, err := handler.NewViews()
	if err != nil {
		return fmt.Errorf("failed to load views: %w", err)
	}
	promoHandler := handler.NewPromoHandler(promoService, views, cfg.Upload.MaxBytes, logger)
	menuHandler := handler.NewMenuHandler(menuService, logger)

	// Initialize router
	mux := router.New(promoHandler, menuHandler, cfg.Upload.Dir, cfg.Auth.APIKey, cfg.Upload.MaxBytes, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
