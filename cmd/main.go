/*
Package main is the entry point for the GameVault application.

It is responsible for loading configuration, initializing the global logging system,
connecting to the database, starting the catalog refresh loop and session manager,
and gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamevault/internal/app/account"
	"gamevault/internal/app/catalog"
	"gamevault/internal/app/db"
	"gamevault/internal/app/docstore"
	"gamevault/internal/app/notify"
	"gamevault/internal/app/profile"
	"gamevault/internal/app/rating"
	"gamevault/internal/app/session"
	"gamevault/internal/app/storage"
	"gamevault/internal/configs"
	"gamevault/internal/handler"
	"gamevault/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("catalog_api_url", cfg.CatalogAPIURL).
		Bool("thumbnail_mirror", cfg.ThumbnailMirrorEnabled()).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database and run pending migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to the database")
	}
	defer pool.Close()

	store := docstore.NewPostgres(pool)
	accounts := account.NewStore(pool)
	notifier := notify.NewHub()

	// Optional S3 thumbnail mirror
	var thumbnails storage.ThumbnailStore
	if cfg.ThumbnailMirrorEnabled() {
		thumbnails, err = storage.NewThumbnailStore(storage.ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			logx.Fatal(err, "Failed to initialize thumbnail mirror")
		}
	}

	// Start the catalog refresh loop
	catalogClient := catalog.NewClient(cfg.CatalogAPIURL, cfg.CatalogDevEmail, cfg.CatalogTimeout)
	catalogService := catalog.NewService(catalogClient, notifier, thumbnails, cfg.CatalogRefresh)
	go catalogService.Run(ctx)

	sessions := session.NewManager(store, notifier)

	deps := &handler.AppDeps{
		Config:   cfg,
		Catalog:  catalogService,
		Accounts: accounts,
		Profiles: profile.NewService(store),
		Ratings:  rating.NewService(store),
		Sessions: sessions,
		Notifier: notifier,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("GameVault Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	sessions.Shutdown()

	logx.Info("Server gracefully stopped.")
}
