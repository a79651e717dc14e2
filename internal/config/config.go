package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Converter ConverterConfig
	Cache     CacheConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type ConverterConfig struct {
	IndentUnit    int
	MaxDepth      int
	MaxTextLength int
}

type CacheConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	RedisPrefix     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Converter: ConverterConfig{
			IndentUnit:    getEnvAsInt("CONVERTER_INDENT_UNIT", 4),
			MaxDepth:      getEnvAsInt("CONVERTER_MAX_DEPTH", 64),
			MaxTextLength: getEnvAsInt("CONVERTER_MAX_TEXT_LENGTH", 2000),
		},
		Cache: CacheConfig{
			TTL:             getEnvAsDuration("MENTION_CACHE_TTL", time.Hour),
			CleanupInterval: getEnvAsDuration("MENTION_CACHE_CLEANUP", 10*time.Minute),
			RedisPrefix:     getEnv("MENTION_CACHE_PREFIX", "notemark:mention:"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
