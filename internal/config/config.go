package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends for the menu service.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// DefaultGenerationEndpoint is the DashScope text-generation endpoint the proxy forwards to.
const DefaultGenerationEndpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// Config holds all configuration for both services.
// Every value comes from the environment and falls back to a development default.
type Config struct {
	Server     ServerConfig
	Store      string
	Mongo      MongoConfig
	Generation GenerationConfig
	LogLevel   string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type MongoConfig struct {
	URI              string
	Database         string
	Collection       string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

// GenerationConfig describes the upstream generation API the proxy talks to.
type GenerationConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 45),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Store: strings.ToLower(getEnv("MENU_STORE", StoreMongo)),
		Mongo: MongoConfig{
			URI:              getEnv("MONGODB_URI", "mongodb://localhost:27017/restaurant_db"),
			Database:         getEnv("DATABASE_NAME", "restaurant_db"),
			Collection:       getEnv("COLLECTION_NAME", "dishes"),
			ConnectTimeout:   getEnvAsSeconds("MONGODB_CONNECT_TIMEOUT", 10),
			OperationTimeout: getEnvAsSeconds("MONGODB_OPERATION_TIMEOUT", 10),
		},
		Generation: GenerationConfig{
			APIKey:   getEnv("QWEN_API_KEY", "sk-local-development"),
			Endpoint: getEnv("QWEN_ENDPOINT", DefaultGenerationEndpoint),
			Timeout:  getEnvAsSeconds("QWEN_TIMEOUT", 30),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Store != StoreMongo && c.Store != StoreMemory {
		return fmt.Errorf("invalid menu store: %s (must be %s or %s)", c.Store, StoreMongo, StoreMemory)
	}

	if c.Store == StoreMongo {
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return fmt.Errorf("DATABASE_NAME and COLLECTION_NAME are required")
		}
	}

	if c.Generation.Endpoint == "" {
		return fmt.Errorf("QWEN_ENDPOINT is required")
	}

	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("QWEN_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

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
		return defaultValue
	}
	return value
}

func getEnvAsSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
