package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration, loaded from a .env file
// with real environment variables taking precedence.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Yahoo   YahooConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port      string
	StaticDir string
}

type StorageConfig struct {
	SQLitePath string
}

type YahooConfig struct {
	Host string
}

type LoggingConfig struct {
	Level       string
	Format      string
	FileEnabled bool
	FilePath    string
}

// Load loads configuration from .env and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			StaticDir: getEnv("STATIC_DIR", "interface"),
		},
		Storage: StorageConfig{
			SQLitePath: getEnv("DB_PATH", "data/stocks.db"),
		},
		Yahoo: YahooConfig{
			Host: getEnv("YAHOO_HOST", ""),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "pretty"),
			FileEnabled: getEnv("LOG_FILE_ENABLED", "false") == "true",
			FilePath:    getEnv("LOG_FILE_PATH", "logs"),
		},
	}

	return config, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
