package config

import (
	"fmt"
	"os"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	ShareLink ShareLinkConfig
	Jobs      JobsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ShareLinkConfig holds the fernet key used to mint document share tokens.
// When SHARE_LINK_KEY is unset a random key is generated at startup,
// invalidating outstanding tokens across restarts.
type ShareLinkConfig struct {
	Key *fernet.Key
}

// JobsConfig holds schedules for background jobs.
type JobsConfig struct {
	ExpiryScanSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/backoffice.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Jobs: JobsConfig{
			ExpiryScanSchedule: getEnv("EXPIRY_SCAN_SCHEDULE", "0 2 * * *"),
		},
	}

	key, err := loadShareLinkKey()
	if err != nil {
		return nil, err
	}
	config.ShareLink.Key = key

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

func loadShareLinkKey() (*fernet.Key, error) {
	if encoded := os.Getenv("SHARE_LINK_KEY"); encoded != "" {
		key, err := fernet.DecodeKey(encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid SHARE_LINK_KEY: %w", err)
		}
		return key, nil
	}

	var key fernet.Key
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("failed to generate share link key: %w", err)
	}
	return &key, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
