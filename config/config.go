package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all environment-driven settings. Credentials for the
// external collaborators are required; everything else has defaults
// tuned to the upstream quotas.
type Config struct {
	Port          string
	YouTubeAPIKey string
	OpenAIAPIKey  string
	OpenAIModel   string

	// MaxConcurrentDownloads sizes the pipeline worker pool.
	MaxConcurrentDownloads int
	// SummarizeInterval is the minimum spacing between completion calls.
	SummarizeInterval time.Duration
	// PlaylistFetchTimeout bounds one /get_playlist request.
	PlaylistFetchTimeout time.Duration
}

// Load reads the configuration from the environment, loading a local
// .env file first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Log.Info(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		YouTubeAPIKey:          os.Getenv("YOUTUBE_API_KEY"),
		OpenAIAPIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MaxConcurrentDownloads: getEnvInt("MAX_CONCURRENT_DOWNLOADS", 2),
		SummarizeInterval:      getEnvDuration("SUMMARIZE_INTERVAL", 10*time.Second),
		PlaylistFetchTimeout:   getEnvDuration("PLAYLIST_FETCH_TIMEOUT", 30*time.Second),
	}

	if cfg.YouTubeAPIKey == "" {
		return nil, errors.New("YOUTUBE_API_KEY is not configured")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not configured")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		Log.Warnf("Ignoring invalid value for %s: %q", key, v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		Log.Warnf("Ignoring invalid value for %s: %q", key, v)
	}
	return fallback
}
