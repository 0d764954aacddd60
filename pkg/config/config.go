package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	CartFile    string
	CatalogURL  string
	HTTPTimeout int
}

func Load() Config {
	// optional .env for local runs; absence is fine
	_ = godotenv.Load()

	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CartFile:    getEnv("CART_FILE", "cart.json"),
		CatalogURL:  getEnv("CATALOG_URL", "http://localhost:3000"),
		HTTPTimeout: getEnvInt("HTTP_TIMEOUT_S", 10),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
