package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port           string
	MongoDBURI     string
	RedisAddr      string
	RedisPassword  string
	EventsAPIURL   string
	EventsAPIToken string
	JWKSURL        string
	Environment    string
	LogLevel       string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnvWithDefault("PORT", "8080"),
		MongoDBURI:     os.Getenv("MONGODB_URI"),
		RedisAddr:      getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		EventsAPIURL:   os.Getenv("EVENTS_API_URL"),
		EventsAPIToken: os.Getenv("EVENTS_API_TOKEN"),
		JWKSURL:        os.Getenv("JWKS_URL"),
		Environment:    getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.EventsAPIURL == "" {
		return nil, fmt.Errorf("EVENTS_API_URL is required")
	}
	if cfg.JWKSURL == "" {
		return nil, fmt.Errorf("JWKS_URL is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
