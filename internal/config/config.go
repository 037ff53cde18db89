// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Amadeus  AmadeusConfig
	Timeouts TimeoutConfig
	Retry    RetryConfig
	Session  SessionConfig
	Display  DisplayConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// AmadeusConfig holds the upstream flight-offers API settings.
// Credentials are never logged.
type AmadeusConfig struct {
	ClientID     string `env:"AMADEUS_CLIENT_ID"`
	ClientSecret string `env:"AMADEUS_CLIENT_SECRET"`
	AuthBaseURL  string `env:"AMADEUS_AUTH_BASE_URL" envDefault:"https://test.api.amadeus.com/v1"`
	SearchURL    string `env:"AMADEUS_SEARCH_URL" envDefault:"https://test.api.amadeus.com/v2/shopping/flight-offers"`
}

// TimeoutConfig holds timeout settings for flight search operations.
type TimeoutConfig struct {
	GlobalSearch  time.Duration `env:"TIMEOUT_GLOBAL_SEARCH" envDefault:"15s"`
	AuthRequest   time.Duration `env:"TIMEOUT_AUTH_REQUEST" envDefault:"5s"`
	SearchRequest time.Duration `env:"TIMEOUT_SEARCH_REQUEST" envDefault:"10s"`
}

// RetryConfig bounds retries of transient upstream failures.
type RetryConfig struct {
	MaxAttempts  int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"2"`
	InitialDelay time.Duration `env:"RETRY_INITIAL_DELAY" envDefault:"200ms"`
}

// SessionConfig holds in-memory search session settings.
type SessionConfig struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`
}

// DisplayConfig controls how instants are rendered to clients.
type DisplayConfig struct {
	Timezone string `env:"DISPLAY_TIMEZONE" envDefault:"UTC"`
}

// Location returns the configured display location, falling back to UTC.
func (d DisplayConfig) Location() *time.Location {
	loc, err := timeutil.GetLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if err := validateAmadeus(cfg.Amadeus); err != nil {
		return err
	}
	if err := validateTimeouts(cfg.Timeouts); err != nil {
		return err
	}

	if cfg.Retry.MaxAttempts < 1 || cfg.Retry.MaxAttempts > 2 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be 1 or 2, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.InitialDelay < 0 {
		return fmt.Errorf("RETRY_INITIAL_DELAY must not be negative")
	}

	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.Session.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}

	if _, err := timeutil.GetLocation(cfg.Display.Timezone); err != nil {
		return fmt.Errorf("DISPLAY_TIMEZONE is not a known IANA zone: %q", cfg.Display.Timezone)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

func validateAmadeus(a AmadeusConfig) error {
	if a.ClientID == "" {
		return fmt.Errorf("AMADEUS_CLIENT_ID is required")
	}
	if a.ClientSecret == "" {
		return fmt.Errorf("AMADEUS_CLIENT_SECRET is required")
	}
	if err := validateURL("AMADEUS_AUTH_BASE_URL", a.AuthBaseURL); err != nil {
		return err
	}
	if err := validateURL("AMADEUS_SEARCH_URL", a.SearchURL); err != nil {
		return err
	}
	return nil
}

func validateTimeouts(t TimeoutConfig) error {
	if t.GlobalSearch <= 0 {
		return fmt.Errorf("TIMEOUT_GLOBAL_SEARCH must be positive")
	}
	if t.AuthRequest <= 0 {
		return fmt.Errorf("TIMEOUT_AUTH_REQUEST must be positive")
	}
	if t.SearchRequest <= 0 {
		return fmt.Errorf("TIMEOUT_SEARCH_REQUEST must be positive")
	}
	if t.AuthRequest >= t.GlobalSearch {
		return fmt.Errorf("TIMEOUT_AUTH_REQUEST (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			t.AuthRequest, t.GlobalSearch)
	}
	if t.SearchRequest >= t.GlobalSearch {
		return fmt.Errorf("TIMEOUT_SEARCH_REQUEST (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			t.SearchRequest, t.GlobalSearch)
	}
	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
