package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Favorites storage configuration. Driver is "sqlite" (default) or
	// "postgres".
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Recipe text generation provider
	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string

	// Image generation provider
	ImageAPIKey string
	ImageAPIURL string

	// Generation defaults
	RecipeBatchSize int
}

// LoadConfig creates a new Config instance from environment variables,
// resolving *_FILE indirections for secrets.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "forkcast.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "forkcast"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		LLMAPIURL: getEnv("LLM_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		LLMModel:  getEnv("LLM_MODEL", "deepseek-chat"),

		ImageAPIURL: getEnv("IMAGE_API_URL", "https://api.openai.com/v1/images/generations"),

		RecipeBatchSize: 6,
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.RedisDB = n
		}
	}

	if n := os.Getenv("RECIPE_BATCH_SIZE"); n != "" {
		size, err := strconv.Atoi(n)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid RECIPE_BATCH_SIZE: %q", n)
		}
		cfg.RecipeBatchSize = size
	}

	var err error
	if cfg.LLMAPIKey, err = readKey("LLM_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.ImageAPIKey, err = readKey("IMAGE_API_KEY"); err != nil {
		return nil, err
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER: %q", cfg.DBDriver)
	}

	return cfg, nil
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisAddr returns the host:port pair for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// readKey resolves NAME or NAME_FILE. Keys are required outside the test
// environment.
func readKey(name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}

	if file := os.Getenv(name + "_FILE"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s_FILE: %w", name, err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("%s_FILE is empty", name)
		}
		return key, nil
	}

	if IsTest() {
		return "", nil
	}
	return "", fmt.Errorf("%s or %s_FILE must be set", name, name)
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
