package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	CORS      CORSConfig      `toml:"cors"`
	Log       LogConfig       `toml:"log"`
	Quote     QuoteConfig     `toml:"quote"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `toml:"port"`
	Host string `toml:"host"`
	Addr string `toml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// QuoteConfig configures the price providers and the resolver.
//
// Provider selects the primary quote provider:
//   - "chart": direct Yahoo Finance HTTP client (default)
//   - "yfinance": go-yfinance backed client
type QuoteConfig struct {
	Provider            string `toml:"provider"`
	YahooBaseURL        string `toml:"yahoo_base_url"`
	NaverBaseURL        string `toml:"naver_base_url"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
	CacheTTLSeconds     int    `toml:"cache_ttl_seconds"`
	NaverRateLimit      int    `toml:"naver_rate_limit"`
	FallbackConcurrency int    `toml:"fallback_concurrency"`
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	Enabled          bool   `toml:"enabled"`
	SnapshotSchedule string `toml:"snapshot_schedule"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Path: "./data/stock_portfolio.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
		Quote: QuoteConfig{
			Provider:            "chart",
			YahooBaseURL:        "https://query1.finance.yahoo.com",
			NaverBaseURL:        "https://finance.naver.com",
			TimeoutSeconds:      10,
			CacheTTLSeconds:     60,
			NaverRateLimit:      5,
			FallbackConcurrency: 4,
		},
		Scheduler: SchedulerConfig{
			Enabled:          true,
			SnapshotSchedule: "0 0 * * * *",
		},
	}
}

// Load reads configuration from an optional TOML file, the .env file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	config.Server.Port = getEnv("SERVER_PORT", config.Server.Port)
	config.Server.Host = getEnv("SERVER_HOST", config.Server.Host)
	config.Database.Path = getEnv("DB_PATH", config.Database.Path)
	config.CORS.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", config.CORS.AllowedOrigins)
	config.Log.Level = getEnv("LOG_LEVEL", config.Log.Level)
	config.Log.Pretty = getEnvBool("LOG_PRETTY", config.Log.Pretty)

	config.Quote.Provider = getEnv("QUOTE_PROVIDER", config.Quote.Provider)
	config.Quote.YahooBaseURL = getEnv("YAHOO_BASE_URL", config.Quote.YahooBaseURL)
	config.Quote.NaverBaseURL = getEnv("NAVER_BASE_URL", config.Quote.NaverBaseURL)
	config.Quote.TimeoutSeconds = getEnvInt("QUOTE_TIMEOUT_SECONDS", config.Quote.TimeoutSeconds)
	config.Quote.CacheTTLSeconds = getEnvInt("QUOTE_CACHE_TTL_SECONDS", config.Quote.CacheTTLSeconds)
	config.Quote.NaverRateLimit = getEnvInt("NAVER_RATE_LIMIT", config.Quote.NaverRateLimit)
	config.Quote.FallbackConcurrency = getEnvInt("QUOTE_FALLBACK_CONCURRENCY", config.Quote.FallbackConcurrency)

	config.Scheduler.Enabled = getEnvBool("SNAPSHOT_ENABLED", config.Scheduler.Enabled)
	config.Scheduler.SnapshotSchedule = getEnv("SNAPSHOT_SCHEDULE", config.Scheduler.SnapshotSchedule)

	if err := config.validate(); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Quote.Provider {
	case "chart", "yfinance":
	default:
		return fmt.Errorf("unknown quote provider %q", c.Quote.Provider)
	}
	if c.Quote.FallbackConcurrency < 1 {
		return fmt.Errorf("quote fallback concurrency must be at least 1, got %d", c.Quote.FallbackConcurrency)
	}
	if c.Quote.NaverRateLimit < 1 {
		return fmt.Errorf("naver rate limit must be at least 1 request per second, got %d", c.Quote.NaverRateLimit)
	}
	if c.Quote.TimeoutSeconds < 1 {
		return fmt.Errorf("quote timeout must be at least 1 second, got %d", c.Quote.TimeoutSeconds)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
