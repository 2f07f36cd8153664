package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"formwizard/api/internal/app"
	"formwizard/api/internal/config"
	"formwizard/api/internal/schema"
	"formwizard/api/internal/search"
	"formwizard/api/internal/snapshot"
	"formwizard/api/internal/wizard"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	loader := schema.NewLoader(cfg.SchemaURL)
	sch, err := loader.Load(ctx)
	if err != nil {
		if errors.Is(err, schema.ErrSchemaUnavailable) {
			log.Fatalf("schema source unreachable: %v", err)
		}
		log.Fatalf("schema load failed: %v", err)
	}

	var store snapshot.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis for progress snapshots")
		redisStore, err := snapshot.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		store = redisStore
	} else if strings.TrimSpace(cfg.DatabaseURL) != "" {
		log.Printf("Using PostgreSQL for progress snapshots")
		pgStore, err := snapshot.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		store = pgStore
	} else {
		log.Fatalf("no snapshot backend configured: set REDIS_URL or DATABASE_URL")
	}
	defer store.Close()

	engine := wizard.NewEngine(store, cfg.SubmissionVersion)
	engine.Initialize(ctx, sch)

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
	}
	searchService := search.NewService(meiliClient, search.Records(sch))
	if meiliClient != nil {
		defer meiliClient.Close()
	}

	service := app.New(cfg, sch, engine, store, searchService)

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("FormWizard API listening on %s", cfg.Addr)
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
