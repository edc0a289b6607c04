package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// SSOT: every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port   string
	Env    string // development, staging, production
	Server ServerConfig

	// Pipeline
	Quote    QuoteConfig
	Cache    CacheConfig
	Strategy StrategyConfig

	// Scheduler
	WarmSchedule string

	// Logging
	LogLevel  string
	LogFormat string
}

// ServerConfig holds HTTP server timeouts.
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// QuoteConfig holds upstream quote provider configuration.
type QuoteConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	RequestsPerSec float64
}

// CacheConfig holds price cache configuration.
type CacheConfig struct {
	TTL time.Duration
}

// StrategyConfig holds momentum strategy configuration.
type StrategyConfig struct {
	LookbackMonths int
	UniverseFile   string // empty means built-in default universe
}

// Load reads configuration from environment variables.
// SSOT: only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Server: ServerConfig{
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "60s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},

		Quote: QuoteConfig{
			BaseURL:        getEnv("QUOTE_BASE_URL", "https://stooq.com"),
			RequestTimeout: getEnvAsDuration("QUOTE_REQUEST_TIMEOUT", "30s"),
			MaxRetries:     getEnvAsInt("QUOTE_MAX_RETRIES", 3),
			InitialDelay:   getEnvAsDuration("QUOTE_RETRY_INITIAL_DELAY", "1s"),
			MaxDelay:       getEnvAsDuration("QUOTE_RETRY_MAX_DELAY", "10s"),
			RequestsPerSec: getEnvAsFloat("QUOTE_REQUESTS_PER_SEC", 2.0),
		},

		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", "4h"),
		},

		Strategy: StrategyConfig{
			LookbackMonths: getEnvAsInt("STRATEGY_LOOKBACK_MONTHS", 12),
			UniverseFile:   getEnv("STRATEGY_UNIVERSE_FILE", ""),
		},

		WarmSchedule: getEnv("WARM_SCHEDULE", "0 15 * * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Quote.BaseURL == "" {
		return fmt.Errorf("QUOTE_BASE_URL is required")
	}

	if c.Quote.MaxRetries < 0 {
		return fmt.Errorf("QUOTE_MAX_RETRIES must be >= 0")
	}

	if c.Strategy.LookbackMonths <= 0 {
		return fmt.Errorf("STRATEGY_LOOKBACK_MONTHS must be > 0")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
