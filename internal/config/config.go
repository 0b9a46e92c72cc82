// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config is the full runtime configuration. Every field maps to one
// environment variable; see Load for names and defaults.
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	Environment string `validate:"oneof=production development test"`
	Debug       bool
	LogFile     string

	StorageDriver string `validate:"oneof=sqlite mongo"`
	SQLitePath    string `validate:"required_if=StorageDriver sqlite"`
	MongoURI      string `validate:"required_if=StorageDriver mongo"`
	MongoDatabase string `validate:"required_if=StorageDriver mongo"`

	SpotifyAPIURL      string        `validate:"required,url"`
	Market             string        `validate:"required,len=2"`
	CatalogTimeout     time.Duration `validate:"gt=0"`
	MaxRetries         int           `validate:"min=1"`
	RetryBackoff       time.Duration `validate:"gt=0"`
	RateLimitPerSecond float64       `validate:"gt=0"`
	Concurrency        int           `validate:"min=1"`
	GenreKeywordsPath  string
	FallbackGenre      string `validate:"required"`
	MoodifyURL         string `validate:"omitempty,url"`
}

// IsProduction reports whether diagnostics must be hidden from callers.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load reads the configuration through lookupEnv, which has the same
// signature as os.LookupEnv, applies defaults and validates the result.
func Load(lookupEnv func(string) (string, bool)) (Config, error) {
	env := func(name, def string) string {
		if v, ok := lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	var errs []error
	intVar := func(name string, def int) int {
		raw := env(name, "")
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", name, err))
			return def
		}
		return v
	}
	floatVar := func(name string, def float64) float64 {
		raw := env(name, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", name, err))
			return def
		}
		return v
	}
	durationVar := func(name string, def time.Duration) time.Duration {
		raw := env(name, "")
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", name, err))
			return def
		}
		return v
	}
	boolVar := func(name string) bool {
		raw := env(name, "")
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", name, err))
			return false
		}
		return v
	}

	cfg := Config{
		Port:               intVar("PORT", 8080),
		Environment:        env("CADENCE_ENV", EnvDevelopment),
		Debug:              boolVar("CADENCE_DEBUG"),
		LogFile:            env("CADENCE_LOG_FILE", ""),
		StorageDriver:      env("STORAGE_DRIVER", "sqlite"),
		SQLitePath:         env("SQLITE_PATH", "cadence.db"),
		MongoURI:           env("MONGO_URI", ""),
		MongoDatabase:      env("MONGO_DATABASE", "cadence"),
		SpotifyAPIURL:      env("SPOTIFY_API_URL", "https://api.spotify.com/v1"),
		Market:             env("SPOTIFY_MARKET", "US"),
		CatalogTimeout:     durationVar("SPOTIFY_TIMEOUT", 10*time.Second),
		MaxRetries:         intVar("SPOTIFY_MAX_RETRIES", 3),
		RetryBackoff:       time.Duration(intVar("SPOTIFY_RETRY_BACKOFF_MS", 500)) * time.Millisecond,
		RateLimitPerSecond: floatVar("SPOTIFY_RATE_LIMIT", 10),
		Concurrency:        intVar("CADENCE_CONCURRENCY", 4),
		GenreKeywordsPath:  env("GENRE_KEYWORDS_PATH", ""),
		FallbackGenre:      strings.ToLower(env("FALLBACK_GENRE", "electronic")),
		MoodifyURL:         env("MOODIFY_URL", ""),
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
