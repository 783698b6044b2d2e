package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Upstream draft data source
	SleeperBaseURL   string
	UpstreamTimeout  time.Duration
	FetchConcurrency int
	DefaultSeason    string

	// Response cache. RedisURL is optional; the in-process cache is used when empty.
	CacheTTL time.Duration
	RedisURL string

	// Aggregation
	DefaultTeams int
}

// Load loads configuration from environment variables.
// It returns an error if a value is present but unusable.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		SleeperBaseURL:   getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"),
		UpstreamTimeout:  getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 8),
		DefaultSeason:    getEnv("DEFAULT_SEASON", strconv.Itoa(time.Now().Year())),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		RedisURL: getEnv("REDIS_URL", ""),

		DefaultTeams: getEnvInt("DEFAULT_TEAMS", 12),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if cfg.DefaultTeams <= 0 {
		return nil, fmt.Errorf("DEFAULT_TEAMS must be positive, got %d", cfg.DefaultTeams)
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 1
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production logging.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
