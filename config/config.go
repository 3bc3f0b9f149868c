package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                string
	JWTSecret           string
	JWTExpiry           int // in hours
	LogLevel            string
	MaxMessageLength    int
	GeneralHistoryLimit int
	PrivateHistoryLimit int
	HistoryRetention    int // append-side cap per history log
	StaticDir           string
}

func Load() Config {
	return Config{
		Port:                getEnv("PORT", "8081"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-super-secret-change-me"),
		JWTExpiry:           getEnvAsInt("JWT_EXPIRY", 24),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		MaxMessageLength:    getEnvAsInt("MAX_MESSAGE_LENGTH", 1000),
		GeneralHistoryLimit: getEnvAsInt("GENERAL_HISTORY_LIMIT", 50),
		PrivateHistoryLimit: getEnvAsInt("PRIVATE_HISTORY_LIMIT", 100),
		HistoryRetention:    getEnvAsInt("HISTORY_RETENTION", 500),
		StaticDir:           getEnv("STATIC_DIR", "public"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
