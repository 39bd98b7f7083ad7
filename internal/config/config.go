// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the server needs. Components receive it via
// dependency injection instead of reading the environment themselves.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret signs access tokens. Required.
	JWTSecret string

	// LLMProvider selects the completion backend: "groq" or "gemini".
	LLMProvider string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string

	// LLMTemperature applies to the first, tool-selecting completion.
	// The synthesis completion always runs at a low fixed temperature.
	LLMTemperature float32
	LLMMaxTokens   int
	LLMTimeout     time.Duration

	AmadeusAPIKey    string
	AmadeusAPISecret string
	AmadeusBaseURL   string

	// ToolTimeout bounds each individual tool execution.
	ToolTimeout time.Duration

	// ChatHistoryLimit caps how many recent messages feed the planner.
	ChatHistoryLimit int
}

// Load reads configuration from the environment, consulting a local .env
// file first when one exists. Returns an error naming any required
// variables that are not set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LLMProvider:      getEnv("LLM_PROVIDER", "groq"),
		LLMAPIKey:        os.Getenv("LLM_API_KEY"),
		LLMBaseURL:       os.Getenv("LLM_BASE_URL"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		LLMTemperature:   getEnvFloat("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:     getEnvInt("LLM_MAX_TOKENS", 4096),
		LLMTimeout:       getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		AmadeusAPIKey:    os.Getenv("AMADEUS_API_KEY"),
		AmadeusAPISecret: os.Getenv("AMADEUS_API_SECRET"),
		AmadeusBaseURL:   getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		ToolTimeout:      getEnvDuration("TOOL_TIMEOUT", 15*time.Second),
		ChatHistoryLimit: getEnvInt("CHAT_HISTORY_LIMIT", 50),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
