package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultAPIURL      = "https://comp4107-spring2024.azurewebsites.net/api"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultSelfAlias   = "dummy"
)

// Config holds all configuration for the client
type Config struct {
	Environment string
	APIURL      string
	HTTPTimeout time.Duration
	// SelfAlias fills the {self} segment of /volunteers/{self} when the
	// session token carries no subject.
	SelfAlias string
	// Token optionally seeds the session with a previously issued bearer token.
	Token string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on the real environment only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		APIURL:      strings.TrimRight(os.Getenv("EVENTS_API_URL"), "/"),
		HTTPTimeout: DefaultHTTPTimeout,
		SelfAlias:   os.Getenv("EVENTS_SELF_ALIAS"),
		Token:       os.Getenv("EVENTS_TOKEN"),
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.SelfAlias == "" {
		cfg.SelfAlias = DefaultSelfAlias
	}
	if s := os.Getenv("EVENTS_HTTP_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid EVENTS_HTTP_TIMEOUT %q: %w", s, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("EVENTS_HTTP_TIMEOUT must be positive, got %s", d)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}
