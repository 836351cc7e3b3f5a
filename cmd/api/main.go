package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"covenant/api/internal/app"
	"covenant/api/internal/archive"
	"covenant/api/internal/config"
	"covenant/api/internal/gatecache"
	"covenant/api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	dataStore := store.NewPostgresStore(db)

	var cache *gatecache.RedisStore
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis compliance verdict cache")
		cache, err = gatecache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer cache.Close()
	}

	var snapshotArchive *archive.Archive
	if strings.TrimSpace(cfg.ArchiveEndpoint) != "" {
		snapshotArchive, err = archive.New(cfg.ArchiveEndpoint, cfg.ArchiveAccessKey, cfg.ArchiveSecretKey, cfg.ArchiveBucket, cfg.ArchiveUseSSL)
		if err != nil {
			log.Printf("WARNING: snapshot archive unavailable, continuing without it: %v", err)
			snapshotArchive = nil
		} else if err := snapshotArchive.EnsureBucket(ctx); err != nil {
			log.Printf("WARNING: snapshot archive bucket check failed, continuing without it: %v", err)
			snapshotArchive = nil
		}
	}

	// A nil *RedisStore must not reach the service as a typed-nil interface.
	var service *app.Service
	switch {
	case cache != nil:
		service = app.NewWithInfra(cfg, dataStore, cache, snapshotArchive)
	case snapshotArchive != nil:
		service = app.NewWithInfra(cfg, dataStore, nil, snapshotArchive)
	default:
		service = app.New(cfg, dataStore)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin, cfg.AdminToken)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Covenant API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
