package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	ModelPath          string
	VectorizerPath     string
	RedisUrl           string
	RateLimitPerMinute int
	AdminToken         string
	MaxUploadMB        int64
	DbUrl              string
}

func Load() (*Config, error) {
	godotenv.Load()

	rateLimit, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return nil, err
	}
	maxUpload, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", maxUpload)
	}

	return &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		ModelPath:          getEnvOrDefault("MODEL_PATH", "model.gob"),
		VectorizerPath:     getEnvOrDefault("VECTORIZER_PATH", "vectorizer.gob"),
		RedisUrl:           os.Getenv("REDIS_URL"),
		RateLimitPerMinute: rateLimit,
		AdminToken:         os.Getenv("ADMIN_TOKEN"),
		MaxUploadMB:        int64(maxUpload),
		DbUrl:              os.Getenv("DB_URL"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
