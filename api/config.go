package api

import (
	"os"
	"strings"
	"time"
)

// Config holds API configuration loaded from environment variables.
type Config struct {
	HTTPAddr       string
	StaticDir      string
	DBPath         string
	TuningFile     string
	DevMode        bool
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		StaticDir:      getEnv("STATIC_DIR", "./public"),
		DBPath:         getEnv("DB_PATH", "maze-runs.db"),
		TuningFile:     getEnv("TUNING_FILE", ""),
		DevMode:        getEnv("DEV_MODE", "false") == "true",
		AllowedOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		ReadTimeout:    parseDuration(getEnv("API_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout:   parseDuration(getEnv("API_WRITE_TIMEOUT", "15s"), 15*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
