package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port               string
	PostgresURL        string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	GinMode            string
	CookieSecure       bool
	SessionReapEvery   time.Duration
	LogLevel           string
	LogDev             bool
	PriceCacheTTL      time.Duration
	BinanceBaseURL     string
	BlockCypherBaseURL string
	UpstreamTimeout    time.Duration
}

// Load reads a .env file when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "3000"),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 5),
		GinMode:            getEnv("GIN_MODE", "release"),
		CookieSecure:       getEnvBool("COOKIE_SECURE", getEnv("ENV", "development") == "production"),
		SessionReapEvery:   getEnvDuration("SESSION_REAP_INTERVAL", 15*time.Minute),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogDev:             getEnvBool("LOG_DEV", false),
		PriceCacheTTL:      getEnvDuration("PRICE_CACHE_TTL", 24*time.Hour),
		BinanceBaseURL:     getEnv("BINANCE_BASE_URL", "https://api.binance.com"),
		BlockCypherBaseURL: getEnv("BLOCKCYPHER_BASE_URL", "https://api.blockcypher.com"),
		UpstreamTimeout:    getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
