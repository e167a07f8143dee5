package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GinMode         string
	ModelPath       string
	ConsultationLog string
	PredictOnLoad   bool
	DatabaseURL     string
	EnableDB        bool
	LogLevel        string
	LogFormat       string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		ModelPath:       getEnv("MODEL_PATH", "model_tree.json"),
		ConsultationLog: getEnv("CONSULTATION_LOG", "consultations.csv"),
		PredictOnLoad:   strings.EqualFold(getEnv("PREDICT_ON_LOAD", "false"), "true"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		EnableDB:        strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("MODEL_PATH must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
