package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumiwell/lumi/internal/ai"
	"github.com/lumiwell/lumi/internal/bot"
	"github.com/lumiwell/lumi/internal/checkout"
	"github.com/lumiwell/lumi/internal/config"
	"github.com/lumiwell/lumi/internal/httpserver"
	"github.com/lumiwell/lumi/internal/logger"
	"github.com/lumiwell/lumi/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)
	log := logger.Log

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.StateSecret == "" {
		log.Fatal("CHECKOUT_STATE_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistent storage is best effort: without a database URI, or when
	// the database goes away, everything runs on the in-memory fallback.
	var primary storage.Store
	if cfg.DatabaseURI != "" {
		pg, err := storage.Open(ctx, cfg.DatabaseURI)
		if err != nil {
			log.WithError(err).Warn("Database unavailable, starting on in-memory storage")
		} else {
			defer pg.Close()
			if err := pg.Migrate(ctx); err != nil {
				log.WithError(err).Fatal("Failed to run migrations")
			}
			log.Info("Connected to database")
			primary = pg
		}
	} else {
		log.Warn("DATABASE_URI not set, state will not survive restarts")
	}
	if primary == nil {
		primary = storage.NewMemory()
	}
	store := storage.NewFallback(primary, log)

	var aiClient *ai.Client
	if cfg.AIAPIKey != "" {
		aiClient = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		log.WithField("model", cfg.AIModel).Info("AI client initialized")
	} else {
		log.Info("AI client not configured, personalized recipes disabled")
	}

	paypal := checkout.NewWithBaseURL(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalBaseURL)

	b, err := bot.New(cfg, store, paypal, aiClient, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create bot")
	}

	// Checkout return endpoints.
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpserver.New(b, cfg.StateSecret, log),
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("Shutting down...")
		srv.Shutdown(context.Background())
		cancel()
	}()

	log.Info("Starting bot...")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("Bot error")
	}
}
