// Package config は環境変数と任意の .env ファイルから設定を読み込みます。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"stbr_web/internal/platform/externalapi/stbr"
	"stbr_web/internal/shared/debounce"
)

// Config holds all configuration for the web client, TUI and tools.
type Config struct {
	Backend stbr.Config

	// Search
	DebounceWait    time.Duration
	SearchRateLimit int // remote lookups per minute, 0 disables
	TickerCacheTTL  time.Duration

	// Redis (optional shared ticker cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	ServerAddr string

	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	return &Config{
		Backend: stbr.Config{
			BaseURL: getEnvOrDefault("STBR_BACKEND_URL", "http://localhost:5001"),
			Timeout: getEnvDurationOrDefault("STBR_HTTP_TIMEOUT", 10*time.Second),
		},
		DebounceWait:    time.Duration(getEnvIntOrDefault("SEARCH_DEBOUNCE_MS", int(debounce.DefaultWait/time.Millisecond))) * time.Millisecond,
		SearchRateLimit: getEnvIntOrDefault("SEARCH_RATE_LIMIT", 0),
		TickerCacheTTL:  getEnvDurationOrDefault("TICKER_CACHE_TTL", time.Hour),
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ServerAddr:      getEnvOrDefault("SERVER_ADDR", ":8080"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:         getEnvOrDefault("LOG_FILE", "logs/stbr.log"),
	}
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "value", val)
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using default", "key", key, "value", val)
	}
	return defaultVal
}
