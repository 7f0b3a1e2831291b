package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Raymond9734/loan-callback-service/internal/cache"
	"github.com/Raymond9734/loan-callback-service/internal/caller"
	"github.com/Raymond9734/loan-callback-service/internal/config"
	"github.com/Raymond9734/loan-callback-service/internal/handler"
	"github.com/Raymond9734/loan-callback-service/internal/service"
	"github.com/Raymond9734/loan-callback-service/internal/transliteration"
)

func main() {
	if err := run(); err != nil {
		slog.Error("loan callback API server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the server and blocks until shutdown, so every deferred close
// runs before the process exits
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.API.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("starting loan callback API server")

	// Transliteration memo store
	var store cache.Store
	if cfg.Cache.RedisURL != "" {
		store, err = cache.NewRedisStore(cache.RedisConfig{
			URL:       cfg.Cache.RedisURL,
			KeyPrefix: cfg.Cache.KeyPrefix,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis cache")
	} else {
		store = cache.NewMemoryStore()
		logger.Info("using in-memory transliteration cache")
	}
	defer store.Close()

	httpClient := &http.Client{Timeout: cfg.Calling.Timeout}

	// Transliteration model
	var generator transliteration.Generator
	if cfg.Gemini.APIKey != "" {
		switch cfg.Gemini.Transport {
		case config.TransportSDK:
			sdk, err := transliteration.NewSDKGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
			if err != nil {
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}
			defer sdk.Close()
			generator = sdk
		default:
			generator = transliteration.NewRESTGenerator(cfg.Gemini.GenerateContentURL(), cfg.Gemini.Model, cfg.Gemini.APIKey, httpClient)
		}
		logger.Info("transliteration enabled",
			slog.String("model", cfg.Gemini.Model),
			slog.String("transport", cfg.Gemini.Transport),
		)
	}

	// Initialize services
	translator := transliteration.NewClient(generator, store, cfg.Cache.TTL, logger)
	outbound := caller.NewHTTPClient(httpClient, logger)
	router := service.NewCampaignRouter(cfg.Calling.Campaigns, cfg.Calling.FromNumber)

	callbackSvc := service.NewCallbackService(
		service.Settings{
			APIURL:      cfg.Calling.APIURL,
			APIKey:      cfg.Calling.APIKey,
			CountryCode: cfg.Calling.CountryCode,
			Timezone:    cfg.Calling.Timezone,
			WebhookURL:  cfg.Calling.WebhookURL,
		},
		router,
		translator,
		outbound,
		outbound,
		logger,
	)

	// Initialize handlers
	callbackHandler := handler.NewCallbackHandler(callbackSvc, logger)
	healthHandler := handler.NewHealthHandler(store, translator, logger)

	var limiter *handler.RateLimiter
	if cfg.API.RateLimitPerMinute > 0 {
		limiter = handler.NewRateLimiter(cfg.API.RateLimitPerMinute, cfg.API.RateLimitBurst)
		defer limiter.Stop()
	}

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(handler.RecoveryMiddleware(logger))
	r.Use(handler.LoggingMiddleware(logger))
	r.Use(handler.CORSMiddleware)

	// Register routes
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/loan/derive", callbackHandler.Derive)

		r.Group(func(r chi.Router) {
			r.Use(handler.RateLimitMiddleware(limiter, logger))
			r.Post("/call", callbackHandler.RequestCall)
			r.Post("/submit", callbackHandler.SubmitForm)
		})
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Calling.Timeout*2 + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("server stopped gracefully")
	}

	return nil
}
