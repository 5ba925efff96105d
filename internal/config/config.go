package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort       string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMModel      string
	QdrantURL     string
	ConnectorURL  string
	DBPath        string
	SyncTimeout   time.Duration
	LogLevel      slog.Level
	LogFormat     string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the current directory or any parent (up to the module root)
// is loaded first; variables already set in the environment win.
//
// OPENAI_API_KEY may be empty: indexing and search then short-circuit to
// empty results, which is the documented degraded behavior rather than a
// startup failure.
func Load() (*Config, error) {
	loadDotenv()

	cfg := &Config{
		APIPort:       getEnv("API_PORT", "9000"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
		QdrantURL:     getEnv("QDRANT_URL", "http://localhost:6333"),
		ConnectorURL:  getEnv("CONNECTOR_URL", "http://localhost:7070"),
		DBPath:        getEnv("DB_PATH", "./data/dealbrief.db"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	timeoutStr := getEnv("SYNC_TIMEOUT_SECONDS", "120")
	timeoutSec, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSec <= 0 {
		return nil, fmt.Errorf("SYNC_TIMEOUT_SECONDS must be a positive integer, got %q", timeoutStr)
	}
	cfg.SyncTimeout = time.Duration(timeoutSec) * time.Second

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// The registry DB lives under ./data by default; make sure it exists.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadDotenv loads a .env file from the current directory or a parent.
func loadDotenv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
