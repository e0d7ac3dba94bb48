package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT      string
	DB_DRIVER string
	DB_URL    string

	JWT_SECRET string
	JWT_TTL    time.Duration

	CORS_ORIGIN        string
	TELEGRAM_BOT_TOKEN string

	TELLER_API_KEY     string
	TELLER_BASE_URL    string
	COINGECKO_BASE_URL string
	PRICE_CACHE_TTL    time.Duration

	REDIS_URL string
	LOCK_TTL  time.Duration

	RATE_LIMIT_RPS   float64
	RATE_LIMIT_BURST int

	LOG_LEVEL  string
	LOG_FORMAT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_DRIVER = getEnv("DB_DRIVER", "postgres")
	DB_URL = mustEnv("DB_URL")

	JWT_SECRET = mustEnv("JWT_SECRET")
	JWT_TTL = time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
	TELEGRAM_BOT_TOKEN = getEnv("TELEGRAM_BOT_TOKEN", "")

	TELLER_API_KEY = getEnv("TELLER_API_KEY", "demo_key")
	TELLER_BASE_URL = getEnv("TELLER_BASE_URL", "https://api.teller.io")
	COINGECKO_BASE_URL = getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
	PRICE_CACHE_TTL = time.Duration(getEnvInt("PRICE_CACHE_TTL_SECONDS", 60)) * time.Second

	REDIS_URL = getEnv("REDIS_URL", "")
	LOCK_TTL = time.Duration(getEnvInt("LOCK_TTL_SECONDS", 10)) * time.Second

	RATE_LIMIT_RPS = getEnvFloat("RATE_LIMIT_RPS", 5)
	RATE_LIMIT_BURST = getEnvInt("RATE_LIMIT_BURST", 10)

	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_FORMAT = getEnv("LOG_FORMAT", "json")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid number for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
