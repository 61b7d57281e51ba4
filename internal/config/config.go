// Package config loads runtime configuration from environment
// variables. A .env file is honored when present (loaded by the CLI
// entry point); nothing here reads files directly.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	Web      WebConfig
}

type StorageConfig struct {
	DataDir string // root directory for filesystem project storage
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL; empty selects filesystem storage
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type WebConfig struct {
	Host string
	Port int
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// defaultDataDir returns ~/.memoprint, falling back to a relative
// directory when the home directory cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".memoprint"
	}
	return filepath.Join(home, ".memoprint")
}

func Load() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: envString("MEMOPRINT_DATA_DIR", defaultDataDir()),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Web: WebConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
	}
}
