// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"
)

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	// Set every variable Load reads to "" so envOrDefault falls through
	// to the defaults regardless of the host environment.
	envVars := []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"AI_PROVIDER",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"STABILITY_API_KEY", "STABILITY_ENGINE", "STABILITY_BASE_URL",
		"PLACEHOLDER_BASE_URL",
		"ARTIFACT_DIR", "ARTIFACT_TTL", "SESSION_TTL",
	}
	for _, key := range envVars {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("ValkeyHost", cfg.ValkeyHost, "localhost")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("ValkeyPassword", cfg.ValkeyPassword, "")
	check("AIProvider", cfg.AIProvider, "gemini")
	check("GeminiModel", cfg.GeminiModel, "gemini-2.0-flash")
	check("OpenAIModel", cfg.OpenAIModel, "gpt-4o")
	check("StabilityEngine", cfg.StabilityEngine, "stable-diffusion-xl-1024-v1-0")
	check("StabilityBaseURL", cfg.StabilityBaseURL, "https://api.stability.ai")
	check("PlaceholderBaseURL", cfg.PlaceholderBaseURL, "https://picsum.photos")

	if cfg.ArtifactTTL != 5*time.Minute {
		t.Errorf("ArtifactTTL = %v, want %v", cfg.ArtifactTTL, 5*time.Minute)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 24*time.Hour)
	}
}

// TestLoad_EnvOverrides verifies that environment variables properly
// override the default values.
func TestLoad_EnvOverrides(t *testing.T) {
	overrides := map[string]string{
		"APP_HOST":             "127.0.0.1",
		"APP_PORT":             "9090",
		"APP_ENV":              "testing",
		"VALKEY_HOST":          "cache.example.com",
		"VALKEY_PORT":          "6380",
		"VALKEY_PASSWORD":      "cachepass",
		"AI_PROVIDER":          "openai",
		"GEMINI_API_KEY":       "gemini-test-key",
		"GEMINI_MODEL":         "gemini-pro",
		"OPENAI_API_KEY":       "sk-test-key",
		"OPENAI_MODEL":         "gpt-4-turbo",
		"STABILITY_API_KEY":    "sk-stability",
		"STABILITY_ENGINE":     "stable-diffusion-v1-6",
		"STABILITY_BASE_URL":   "https://stability.example.com",
		"PLACEHOLDER_BASE_URL": "https://images.example.com",
		"ARTIFACT_TTL":         "90s",
		"SESSION_TTL":          "1h",
	}
	for key, val := range overrides {
		t.Setenv(key, val)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "127.0.0.1")
	check("Port", cfg.Port, "9090")
	check("Env", cfg.Env, "testing")
	check("ValkeyHost", cfg.ValkeyHost, "cache.example.com")
	check("ValkeyPort", cfg.ValkeyPort, "6380")
	check("ValkeyPassword", cfg.ValkeyPassword, "cachepass")
	check("AIProvider", cfg.AIProvider, "openai")
	check("GeminiKey", cfg.GeminiKey, "gemini-test-key")
	check("GeminiModel", cfg.GeminiModel, "gemini-pro")
	check("OpenAIKey", cfg.OpenAIKey, "sk-test-key")
	check("OpenAIModel", cfg.OpenAIModel, "gpt-4-turbo")
	check("StabilityKey", cfg.StabilityKey, "sk-stability")
	check("StabilityEngine", cfg.StabilityEngine, "stable-diffusion-v1-6")
	check("StabilityBaseURL", cfg.StabilityBaseURL, "https://stability.example.com")
	check("PlaceholderBaseURL", cfg.PlaceholderBaseURL, "https://images.example.com")

	if cfg.ArtifactTTL != 90*time.Second {
		t.Errorf("ArtifactTTL = %v, want %v", cfg.ArtifactTTL, 90*time.Second)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, time.Hour)
	}
}

// TestLoad_ProductionRequiresTextKey verifies that production mode refuses
// to start without any text-generation credential, since every generation
// action depends on one.
func TestLoad_ProductionRequiresTextKey(t *testing.T) {
	t.Run("rejects missing keys", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() should return an error when production has no text-generation key")
		}
		if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
			t.Errorf("error should mention GEMINI_API_KEY, got: %v", err)
		}
	})

	t.Run("accepts gemini key", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("GEMINI_API_KEY", "gk-test")
		t.Setenv("OPENAI_API_KEY", "")

		if _, err := Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
	})

	t.Run("accepts openai key", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		if _, err := Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
	})
}

// TestLoad_DevelopmentAllowsMissingKeys ensures missing credentials do not
// prevent startup outside of production; affected actions degrade at runtime.
func TestLoad_DevelopmentAllowsMissingKeys(t *testing.T) {
	for _, env := range []string{"development", "testing", ""} {
		t.Run("env="+env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)
			t.Setenv("GEMINI_API_KEY", "")
			t.Setenv("OPENAI_API_KEY", "")

			if _, err := Load(); err != nil {
				t.Fatalf("Load() should not error in %q mode without keys, got: %v", env, err)
			}
		})
	}
}

// TestAddr verifies the server listen address format.
func TestAddr(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     string
		expected string
	}{
		{name: "default", host: "0.0.0.0", port: "8080", expected: "0.0.0.0:8080"},
		{name: "localhost with custom port", host: "127.0.0.1", port: "3000", expected: "127.0.0.1:3000"},
		{name: "empty host", host: "", port: "8080", expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Host: tt.host, Port: tt.port}
			if got := cfg.Addr(); got != tt.expected {
				t.Errorf("Addr() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestIsDev verifies the IsDev method for various environment modes.
func TestIsDev(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		expected bool
	}{
		{name: "development mode", env: "development", expected: true},
		{name: "production mode", env: "production", expected: false},
		{name: "testing mode", env: "testing", expected: false},
		{name: "empty string", env: "", expected: false},
		{name: "dev shorthand", env: "dev", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDev(); got != tt.expected {
				t.Errorf("IsDev() = %v, want %v (env=%q)", got, tt.expected, tt.env)
			}
		})
	}
}

// TestDurationOrDefault verifies duration parsing falls back on bad input.
func TestDurationOrDefault(t *testing.T) {
	t.Run("valid duration wins", func(t *testing.T) {
		t.Setenv("ARTIFACT_TTL", "2m30s")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if cfg.ArtifactTTL != 2*time.Minute+30*time.Second {
			t.Errorf("ArtifactTTL = %v, want 2m30s", cfg.ArtifactTTL)
		}
	})

	t.Run("invalid duration uses default", func(t *testing.T) {
		t.Setenv("ARTIFACT_TTL", "five minutes")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if cfg.ArtifactTTL != 5*time.Minute {
			t.Errorf("ArtifactTTL = %v, want default 5m", cfg.ArtifactTTL)
		}
	})
}
