// Package config loads runtime settings from the environment and .env files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ZackKanter/a16z-library/internal/catalog"
	"github.com/ZackKanter/a16z-library/internal/platform/goodreads"
)

type Config struct {
	InputPath   string // BOOKS_INPUT (default "books.md")
	MarkdownOut string // BOOKS_MARKDOWN_OUT (default "books_ratings.md")
	CSVOut      string // BOOKS_CSV_OUT (default "books_ratings.csv")
	LinkColumn  int    // BOOKS_LINK_COLUMN, zero-based (default 3)
	FieldSet    string // BOOKS_FIELDS: "full" or "ratings" (default "full")

	GoodreadsBaseURL  string        // GOODREADS_BASE_URL
	UserAgent         string        // GOODREADS_USER_AGENT
	RequestTimeout    time.Duration // GOODREADS_TIMEOUT (default 15s)
	RequestsPerSecond float64       // GOODREADS_RPS, 0 means unlimited (default 0)
	MaxRetries        int           // GOODREADS_MAX_RETRIES (default 0)

	LogLevel      string // LOG_LEVEL: debug, info, warn, error (default "info")
	DBDSN         string // DB_DSN: run history is only stored when set
	MigrationsDir string // MIGRATIONS_DIR (default "db/migrations")
}

// LoadEnvFiles reads .env and .env.local from the working directory.
// Variables already present in the environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from environment variables, falling back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		InputPath:        getEnv("BOOKS_INPUT", "books.md"),
		MarkdownOut:      getEnv("BOOKS_MARKDOWN_OUT", "books_ratings.md"),
		CSVOut:           getEnv("BOOKS_CSV_OUT", "books_ratings.csv"),
		FieldSet:         getEnv("BOOKS_FIELDS", catalog.FieldSetFull),
		GoodreadsBaseURL: getEnv("GOODREADS_BASE_URL", goodreads.DefaultBaseURL),
		UserAgent:        getEnv("GOODREADS_USER_AGENT", "bookratings/1.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBDSN:            os.Getenv("DB_DSN"),
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "db/migrations"),
	}

	var err error
	if cfg.LinkColumn, err = getEnvInt("BOOKS_LINK_COLUMN", 3); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = getEnvInt("GOODREADS_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.RequestsPerSecond, err = getEnvFloat("GOODREADS_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("GOODREADS_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags or the environment may have broken.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if c.MarkdownOut == "" || c.CSVOut == "" {
		return fmt.Errorf("both output paths are required")
	}
	if c.LinkColumn < 0 {
		return fmt.Errorf("link column must not be negative, got %d", c.LinkColumn)
	}
	if _, err := catalog.FieldSet(c.FieldSet); err != nil {
		return err
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %v", c.RequestsPerSecond)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
