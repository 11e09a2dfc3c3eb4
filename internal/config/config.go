package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr         string
	SQLitePath   string
	SnapshotPath string
	Seed         bool
	TokenSecret  string
	TokenTTL     time.Duration
	ServerLog    *log.Logger
}

// Load reads a local .env file when present, then the environment, and
// returns a fully populated Config. SQLitePath selects the sqlite store;
// without it the in-memory store (optionally snapshotted to SnapshotPath)
// is used.
func Load() Config {
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("HIRELOOP_TOKEN_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	return Config{
		Addr:         envOrDefault("HIRELOOP_ADDR", ":8080"),
		SQLitePath:   strings.TrimSpace(os.Getenv("HIRELOOP_SQLITE_PATH")),
		SnapshotPath: strings.TrimSpace(os.Getenv("HIRELOOP_SNAPSHOT_PATH")),
		Seed:         strings.EqualFold(strings.TrimSpace(os.Getenv("HIRELOOP_SEED")), "true"),
		TokenSecret:  strings.TrimSpace(os.Getenv("HIRELOOP_TOKEN_SECRET")),
		TokenTTL:     ttl,
		ServerLog:    log.New(os.Stdout, "[hireloop-api] ", log.LstdFlags),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
