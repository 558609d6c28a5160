package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN)
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Base URL used when printing share links
	ServerURL string

	// Maximum database connection pool size
	MaxDBConnections int

	// Enable debug logging
	Debug bool

	// Upper bound on a single storage read during share resolution
	StorageTimeout time.Duration

	// Session lifetime for login and share sessions
	SessionDuration time.Duration

	// Sharing policy switches
	Sharing SharingConfig

	// User policy switches
	Users UsersConfig
}

// SharingConfig holds the deployment-wide sharing policy.
//
// Enabled gates the public sharing feature entirely: when off, every sharing
// key resolves as if it did not exist.
//
// PasswordRequired forces password verification on every share, including
// shares created without a password of their own. It is independent of
// per-share passwords: a share that carries a password enforces it even when
// PasswordRequired is off.
type SharingConfig struct {
	Enabled          bool
	PasswordRequired bool

	// Share cache tuning. CacheSize 0 disables the cache.
	CacheSize int
	CacheTTL  time.Duration
}

// UsersConfig holds user-facing policy switches.
type UsersConfig struct {
	// AuthenticationRequired controls whether gallery routes demand a login.
	// When off, anonymous visitors get a synthetic admin identity. The public
	// sharing route is unaffected by this switch.
	AuthenticationRequired bool
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "pixfolio.db"),
		ServerAddr:       getEnv("SERVER_ADDR", "localhost:8080"),
		ServerURL:        getEnv("SERVER_URL", "http://localhost:8080"),
		MaxDBConnections: getEnvInt("MAX_DB_CONNECTIONS", 25),
		Debug:            getEnvBool("DEBUG", false),
		StorageTimeout:   getEnvDuration("STORAGE_TIMEOUT", 5*time.Second),
		SessionDuration:  getEnvDuration("SESSION_DURATION", 12*time.Hour),
		Sharing: SharingConfig{
			Enabled:          getEnvBool("SHARING_ENABLED", true),
			PasswordRequired: getEnvBool("SHARING_PASSWORD_REQUIRED", false),
			CacheSize:        getEnvInt("SHARE_CACHE_SIZE", 256),
			CacheTTL:         getEnvDuration("SHARE_CACHE_TTL", 30*time.Second),
		},
		Users: UsersConfig{
			AuthenticationRequired: getEnvBool("AUTHENTICATION_REQUIRED", true),
		},
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SERVER_URL is required")
	}

	if cfg.StorageTimeout <= 0 {
		return nil, fmt.Errorf("STORAGE_TIMEOUT must be positive")
	}

	if cfg.SessionDuration <= 0 {
		return nil, fmt.Errorf("SESSION_DURATION must be positive")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
