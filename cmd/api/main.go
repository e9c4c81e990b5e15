package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aura-bijoux/internal/config"
	"aura-bijoux/internal/database"
	"aura-bijoux/internal/handler"
	"aura-bijoux/internal/repository"
	"aura-bijoux/internal/router"
	"aura-bijoux/internal/seed"
	"aura-bijoux/internal/store"
	"aura-bijoux/internal/task"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting aura-bijoux API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalogue seed: local files, optionally fetched from S3 first
	fileLoader := seed.NewFileLoader(logger)
	var seedLoader seed.Loader = fileLoader
	if cfg.S3.Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			seedLoader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
		}
	} else if len(cfg.Seed.Files) > 0 {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
	}

	products, err := seed.LoadCatalog(ctx, seedLoader, cfg.Seed.Files, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}

	// Optional audit archive
	var (
		auditSink store.AuditSink
		archive   handler.Archive
	)
	if cfg.Archive.Enabled {
		pool, err := database.Open(ctx, cfg.Archive.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize audit archive: %w", err)
		}
		defer pool.Close()

		auditRepo := repository.NewAuditRepository(pool, logger)
		auditSink, archive = auditRepo, auditRepo
	}

	var ids store.IDGenerator = store.UUIDGenerator{}
	if cfg.Store.IDStrategy == "sequence" {
		ids = store.NewSequenceGenerator()
	}

	s, err := store.New(store.Options{
		IDs: ids,
		Admin: store.AdminAccount{
			Name:     cfg.Auth.AdminName,
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
		},
		Products:  products,
		Notifier:  store.NewLogNotifier(logger),
		AuditSink: auditSink,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	unsubscribe := s.Subscribe(func(snap store.Snapshot) {
		logger.Debug().
			Uint64("version", snap.Version).
			Int("cart_items", snap.Cart.Count).
			Int("critical_products", len(snap.CriticalProductIDs)).
			Msg("store state changed")
	})
	defer unsubscribe()

	interactions := store.NewInteractions(s, task.NewRunner(task.TimerDelay{}, logger), store.Delays{
		Checkout: cfg.Store.CheckoutDelay,
		Submit:   cfg.Store.SubmitDelay,
	})

	mux := router.New(router.Handlers{
		Catalog:  handler.NewCatalogHandler(s, interactions, logger),
		Cart:     handler.NewCartHandler(s, logger),
		Session:  handler.NewSessionHandler(s, logger),
		Orders:   handler.NewOrderHandler(s, interactions, logger),
		Admin:    handler.NewAdminHandler(s, archive, logger),
		Social:   handler.NewSocialHandler(s, logger),
		Settings: handler.NewSettingsHandler(s, interactions, logger),
	}, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("products", len(products)).
			Bool("archive", cfg.Archive.Enabled).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
