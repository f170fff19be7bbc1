package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config returns the value of an environment variable, loading .env first
// so local development works without exporting anything.
func Config(key string) string {
	godotenv.Load(".env")
	return os.Getenv(key)
}

func ConfigInt(key string, fallback int) int {
	v := Config(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func ConfigBool(key string, fallback bool) bool {
	switch Config(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	default:
		return fallback
	}
}

func ConfigDuration(key string, fallback time.Duration) time.Duration {
	v := Config(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
