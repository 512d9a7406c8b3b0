// Command api is the Ranking Padel API server.
//
// Usage:
//
//	ranking-padel-api
//	API_PORT=8080 ranking-padel-api

// @title Ranking Padel API
// @version 1.0.0
// @description Ladder ranking backend for a recreational padel doubles league: challenges, eligibility rules, set adjudication, slot swaps and push notifications.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/lidersalinas/ranking-padel-api/internal/api"
	"github.com/lidersalinas/ranking-padel-api/internal/auth"
	"github.com/lidersalinas/ranking-padel-api/internal/cache"
	"github.com/lidersalinas/ranking-padel-api/internal/config"
	"github.com/lidersalinas/ranking-padel-api/internal/db"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
	"github.com/lidersalinas/ranking-padel-api/internal/listener"
	"github.com/lidersalinas/ranking-padel-api/internal/maintenance"
	"github.com/lidersalinas/ranking-padel-api/internal/push"
	"github.com/lidersalinas/ranking-padel-api/internal/store/postgres"

	_ "github.com/lidersalinas/ranking-padel-api/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Wire the ladder service over the Postgres store and the push outbox
	store := postgres.New(pool)
	pushStore := push.NewStore(pool)
	notifier := push.NewOutboxNotifier(pushStore, logger)
	rules := ladder.Rules{
		MaxSlotGap:       cfg.MaxSlotGap,
		WeeklyMatchLimit: cfg.WeeklyMatchLimit,
		PromotionWindow:  cfg.PromotionWindow,
		ForfeitGrace:     cfg.ForfeitGrace(),
	}
	svc := ladder.NewService(store, notifier, rules, logger)

	authSvc := auth.New(pool, store, cfg.JWTSecret, cfg.JWTIssuer, cfg.MagicLinkBase,
		cfg.SessionTTL, cfg.MagicLinkTTL, logger)

	// Start push dispatch worker (if FCM is configured)
	fcmSender := push.NewFCMSender(cfg.FCMCredentialsFile, logger)
	worker := push.NewWorker(pushStore, fcmSender, logger,
		cfg.PushDispatchEvery, cfg.PushBatchSize, cfg.PushMaxAttempts)
	go worker.Run(ctx)
	if fcmSender == nil {
		logger.Info("FCM sender disabled (no FCM_CREDENTIALS_FILE); pushes are logged only")
	}

	// Wake the worker on enqueue instead of waiting for the next tick.
	go listener.Start(ctx, cfg.DatabaseURL, worker, logger)

	// Background walkover sweep and table hygiene.
	go maintenance.Start(ctx, pool.Pool, svc, maintenance.DefaultConfig(), logger)

	// Create router
	router := api.NewRouter(api.Deps{
		Pool:    pool,
		Store:   store,
		Service: svc,
		Push:    pushStore,
		Auth:    authSvc,
		Cache:   appCache,
		Config:  cfg,
		Logger:  logger,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Ranking Padel API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
