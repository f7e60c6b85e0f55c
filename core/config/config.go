package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	URI      string
	Database string
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	IsProduction    bool
}

type Config struct {
	Mongo      MongoConfig
	Server     ServerConfig
	SessionTTL time.Duration
}

// Load reads configuration from the environment, loading a .env file first
// when one exists. Missing optional values fall back to development defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "tracker"),
		},
		Server: ServerConfig{
			Addr:         getEnv("SERVER_ADDR", ":8080"),
			IsProduction: getEnv("APP_ENV", "development") == "production",
		},
	}

	shutdownSecs, err := getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.Server.ShutdownTimeout = time.Duration(shutdownSecs) * time.Second

	sessionHours, err := getEnvInt("SESSION_TTL_HOURS", 7*24)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = time.Duration(sessionHours) * time.Hour

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}
