package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Store   StoreConfig
	Seed    SeedConfig
	S3      S3Config
	Archive ArchiveConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level   string
	Format  string // "json" or "console"
	Service string
}

// AuthConfig holds the back-office credentials.
type AuthConfig struct {
	APIKey        string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// StoreConfig tunes the in-memory store.
type StoreConfig struct {
	IDStrategy    string // "uuid" or "sequence"
	CheckoutDelay time.Duration
	SubmitDelay   time.Duration
}

// SeedConfig lists the catalogue files loaded at start-up.
type SeedConfig struct {
	Files []string
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "seeds/")
}

// ArchiveConfig controls the PostgreSQL audit archive.
type ArchiveConfig struct {
	Enabled  bool
	Database DatabaseConfig
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
			Service: getEnv("SERVICE_NAME", "aura-bijoux"),
		},
		Auth: AuthConfig{
			APIKey:        getEnv("API_KEY", ""),
			AdminName:     getEnv("ADMIN_NAME", "Admin"),
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@aurabijoux.pt"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Store: StoreConfig{
			IDStrategy:    getEnv("ID_STRATEGY", "uuid"),
			CheckoutDelay: getEnvAsMillis("CHECKOUT_DELAY_MS", 1500),
			SubmitDelay:   getEnvAsMillis("SUBMIT_DELAY_MS", 800),
		},
		Seed: SeedConfig{
			Files: getEnvAsList("SEED_FILES"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "eu-west-1"),
			Prefix:  getEnv("S3_PREFIX", "seeds/"),
		},
		Archive: ArchiveConfig{
			Enabled: getEnvAsBool("ARCHIVE_ENABLED", false),
			Database: DatabaseConfig{
				Host:            getEnv("DB_HOST", "localhost"),
				Port:            getEnvAsInt("DB_PORT", 5432),
				User:            getEnv("DB_USER", "postgres"),
				Password:        getEnv("DB_PASSWORD", ""),
				Database:        getEnv("DB_NAME", "aurabijoux"),
				MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
				MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
				MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Auth.AdminEmail == "" {
		return fmt.Errorf("admin email is required")
	}

	if len(c.Auth.AdminPassword) < 6 {
		return fmt.Errorf("admin password must have at least 6 characters")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Store.IDStrategy != "uuid" && c.Store.IDStrategy != "sequence" {
		return fmt.Errorf("invalid id strategy: %s (must be uuid or sequence)", c.Store.IDStrategy)
	}

	if c.Store.CheckoutDelay < 0 || c.Store.SubmitDelay < 0 {
		return fmt.Errorf("interaction delays must not be negative")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Archive.Enabled {
		if err := c.Archive.Database.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the connection settings.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue)) * time.Millisecond
}

// getEnvAsList splits a comma-separated variable, dropping empty items.
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
