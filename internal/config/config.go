// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWKSURL is where federated signing keys are fetched from when no
// override is configured.
const DefaultJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// devSessionSecret signs local session tokens when SESSION_SECRET is
// unset. Development only.
const devSessionSecret = "dev-secret-change-in-production"

// FederatedConfig holds identity provider configuration for federated
// login.
type FederatedConfig struct {
	ClientID    string        // audience expected in federated tokens
	JWKSURL     string        // where to fetch signing keys (default: Google's certs)
	KeyCacheTTL time.Duration // signing key cache duration (default: 1h)
}

// Enabled reports whether federated login is configured.
func (f *FederatedConfig) Enabled() bool {
	return f.ClientID != ""
}

// Config holds the configuration for the HTTP API.
type Config struct {
	DBPath     string // path to the SQLite file (default "architech.sqlite")
	ListenAddr string // HTTP listen address (default ":8080")
	LogLevel   string // log level: debug, info, warn, error (default "info")
	Env        string // environment: "development" (default) or "production"

	// SessionSecret signs locally issued session tokens.
	SessionSecret string

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Federated holds identity provider configuration.
	Federated FederatedConfig

	// Warnings collects non-fatal warnings generated during config
	// loading. These are logged by the caller after the logger is
	// initialised.
	Warnings []string
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

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:        os.Getenv("DB_PATH"),
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Env:           os.Getenv("ENV"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	cfg.Federated = FederatedConfig{
		ClientID: os.Getenv("FEDERATED_CLIENT_ID"),
		JWKSURL:  os.Getenv("FEDERATED_JWKS_URL"),
	}
	if v := os.Getenv("FEDERATED_KEY_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Federated.KeyCacheTTL = d
		}
	}

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "architech.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.Federated.JWKSURL == "" {
		cfg.Federated.JWKSURL = DefaultJWKSURL
	}
	if cfg.Federated.KeyCacheTTL == 0 {
		cfg.Federated.KeyCacheTTL = time.Hour
	}
	if !cfg.Federated.Enabled() {
		cfg.Warnings = append(cfg.Warnings, "federated login is not configured — set FEDERATED_CLIENT_ID")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = devSessionSecret
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET not set — using insecure default. Set SESSION_SECRET in production!")
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.SessionSecret == devSessionSecret {
			return nil, fmt.Errorf("SESSION_SECRET must be set in production (ENV=production)")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Environment variables take precedence over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
