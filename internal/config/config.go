// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP settings
	BindAddr       string
	RequestTimeout time.Duration

	// LLM settings
	LLMProvider   string // "openai" or "gemini"
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string

	// AI usage limits
	MaxAIRequestsPerDay     int     // 0 = unlimited
	MaxOpenAIRequestsPerDay int     // 0 = unlimited
	MaxGeminiRequestsPerDay int     // 0 = unlimited
	AIRequestsPerSecond     float64 // 0 = unthrottled
	AIRequestsBurst         int

	// Scraper settings
	FetchTimeout   time.Duration
	BrowserEnabled bool
	BrowserTimeout time.Duration
	BrowserWait    time.Duration // settle time after navigation

	// Cache settings
	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	// Hot topics
	FeedsConfigPath string

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		BindAddr:             ":8080",
		RequestTimeout:       45 * time.Second,
		LLMProvider:          "openai",
		GeminiModel:          "gemini-1.5-flash",
		AIRequestsBurst:      5,
		FetchTimeout:         15 * time.Second,
		BrowserEnabled:       true,
		BrowserTimeout:       30 * time.Second,
		BrowserWait:          3 * time.Second,
		CacheTTL:             30 * time.Minute,
		CacheCleanupInterval: 10 * time.Minute,
		FeedsConfigPath:      "configs/feeds.yaml",
	}

	cfg.BindAddr = getEnvOrDefault("BIND_ADDR", cfg.BindAddr)
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.LLMProvider = strings.ToLower(getEnvOrDefault("LLM_PROVIDER", cfg.LLMProvider))
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)

	cfg.RequestTimeout = getEnvDurationOrDefault("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.FetchTimeout = getEnvDurationOrDefault("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.BrowserTimeout = getEnvDurationOrDefault("BROWSER_TIMEOUT", cfg.BrowserTimeout)
	cfg.BrowserWait = getEnvDurationOrDefault("BROWSER_WAIT", cfg.BrowserWait)
	cfg.CacheTTL = getEnvDurationOrDefault("CACHE_TTL", cfg.CacheTTL)
	cfg.CacheCleanupInterval = getEnvDurationOrDefault("CACHE_CLEANUP_INTERVAL", cfg.CacheCleanupInterval)

	cfg.MaxAIRequestsPerDay = getEnvIntOrDefault("MAX_AI_REQUESTS_PER_DAY", 0)
	cfg.MaxOpenAIRequestsPerDay = getEnvIntOrDefault("MAX_OPENAI_REQUESTS_PER_DAY", 0)
	cfg.MaxGeminiRequestsPerDay = getEnvIntOrDefault("MAX_GEMINI_REQUESTS_PER_DAY", 0)
	cfg.AIRequestsBurst = getEnvIntOrDefault("AI_REQUESTS_BURST", cfg.AIRequestsBurst)
	if v := os.Getenv("AI_REQUESTS_PER_SECOND"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val >= 0 {
			cfg.AIRequestsPerSecond = val
		}
	}

	if v := os.Getenv("BROWSER_ENABLED"); v != "" {
		if val, err := strconv.ParseBool(v); err == nil {
			cfg.BrowserEnabled = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// Validate only rejects settings that cannot work. Missing API keys are
// allowed: the affected endpoints answer with a configuration error and the
// speech endpoints fall back to demo mode.
func (c *Config) Validate() error {
	if c.BindAddr == "" {
		return fmt.Errorf("BIND_ADDR must not be empty")
	}
	if c.LLMProvider != "openai" && c.LLMProvider != "gemini" {
		return fmt.Errorf("LLM_PROVIDER must be 'openai' or 'gemini'")
	}
	if c.MaxAIRequestsPerDay < 0 {
		return fmt.Errorf("MAX_AI_REQUESTS_PER_DAY must not be negative")
	}
	if c.MaxOpenAIRequestsPerDay < 0 || c.MaxGeminiRequestsPerDay < 0 {
		return fmt.Errorf("per-provider request limits must not be negative")
	}
	if c.AIRequestsBurst < 1 {
		return fmt.Errorf("AI_REQUESTS_BURST must be at least 1")
	}
	return nil
}
