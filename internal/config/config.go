package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	DBPath       string
	RedisAddr    string
	MetricsPort  string
	NominatimURL string
	Workers      int
}

func Load() Config {
	return Config{
		DBPath:       getEnv("MACDIVE_DB", defaultDBPath()),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		MetricsPort:  getEnv("METRICS_PORT", ""),
		NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/reverse"),
		Workers:      getEnvInt("DECODE_WORKERS", 4),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "MacDive.sqlite"
	}
	return filepath.Join(home, "Library", "Application Support", "MacDive", "MacDive.sqlite")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
