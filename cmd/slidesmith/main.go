// Package main is the entry point for the Slidesmith server.
// It loads configuration, connects to Valkey, wires the generation
// pipelines, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"slidesmith/internal/ai"
	"slidesmith/internal/artifact"
	"slidesmith/internal/config"
	"slidesmith/internal/deck"
	"slidesmith/internal/handlers"
	"slidesmith/internal/imagegen"
	"slidesmith/internal/middleware"
	"slidesmith/internal/router"
	"slidesmith/internal/session"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to Valkey (Redis-compatible session + image store).
	valkeyClient, err := session.Connect(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient, cfg.SessionTTL)

	// Transient artifact storage with timed deletion.
	artifactDir := cfg.ArtifactDir
	if artifactDir == "" {
		artifactDir = filepath.Join(os.TempDir(), "slidesmith-artifacts")
	}
	artifacts, err := artifact.NewStore(logger, artifactDir, cfg.ArtifactTTL)
	if err != nil {
		slog.Error("failed to initialize artifact store", "error", err)
		os.Exit(1)
	}
	defer artifacts.Close()

	// Initialize the text provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"gemini": {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"openai": {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Image generation degrades to placeholders without a Stability key.
	imageService := imagegen.NewService(logger,
		imagegen.NewStabilityClient(cfg.StabilityKey, cfg.StabilityEngine, cfg.StabilityBaseURL),
		imagegen.NewPlaceholderClient(cfg.PlaceholderBaseURL),
	)
	if !imageService.HasAPI() {
		slog.Warn("no STABILITY_API_KEY set, image generation degrades to placeholder images")
	}

	// Create handler groups with their dependencies.
	deckHandlers := handlers.NewDeck(logger, aiRegistry, deck.NewBuilder(logger), artifacts, sessionStore)
	imageHandlers := handlers.NewImages(logger, aiRegistry, imageService, sessionStore)

	// Rate-limit generation endpoints per client IP.
	limiter := middleware.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, limiter, deckHandlers, imageHandlers)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate endpoints that wait on LLM and image
	// API responses (typically 10-30s, up to 60s for complex prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
