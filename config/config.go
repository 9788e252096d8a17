package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Assets   AssetsConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	RateLimitRPS   float64
	RateLimitBurst int
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

type AssetsConfig struct {
	Bucket string
	Region string
	Prefix string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	CatalogPath string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 25),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 50),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		},
		Assets: AssetsConfig{
			Bucket: getEnv("ASSETS_BUCKET", ""),
			Region: getEnv("ASSETS_REGION", "us-east-1"),
			Prefix: getEnv("ASSETS_PREFIX", "assets/icons"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CatalogPath: getEnv("CATALOG_PATH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
