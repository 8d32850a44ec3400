package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// ConfigOr reads key from the environment and falls back to def when unset.
func ConfigOr(key, def string) string {
	if value := Config(key); value != "" {
		return value
	}
	return def
}
