// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Valkey (Redis-compatible session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Text-generation providers
	AIProvider    string // "gemini" or "openai"
	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Image-generation API (Stability-compatible)
	StabilityKey     string
	StabilityEngine  string
	StabilityBaseURL string

	// Public placeholder image service used when no image key is configured
	// or the image API rejects a request.
	PlaceholderBaseURL string

	// Deck artifact storage
	ArtifactDir string
	ArtifactTTL time.Duration

	// Session lifetime; generation history lives exactly this long.
	SessionTTL time.Duration
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults for development where appropriate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment")
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:    envOrDefault("AI_PROVIDER", "gemini"),
		GeminiKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		StabilityKey:     os.Getenv("STABILITY_API_KEY"),
		StabilityEngine:  envOrDefault("STABILITY_ENGINE", "stable-diffusion-xl-1024-v1-0"),
		StabilityBaseURL: envOrDefault("STABILITY_BASE_URL", "https://api.stability.ai"),

		PlaceholderBaseURL: envOrDefault("PLACEHOLDER_BASE_URL", "https://picsum.photos"),

		ArtifactDir: envOrDefault("ARTIFACT_DIR", ""),
		ArtifactTTL: durationOrDefault("ARTIFACT_TTL", 5*time.Minute),
		SessionTTL:  durationOrDefault("SESSION_TTL", 24*time.Hour),
	}

	if cfg.Env == "production" {
		if cfg.GeminiKey == "" && cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("at least one of GEMINI_API_KEY or OPENAI_API_KEY must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey connection address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationOrDefault reads a Go duration string from the environment.
// Invalid values fall back silently so a typo never prevents startup.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
