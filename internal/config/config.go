package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Server
	Port int

	// Remote synthesis provider (optional -- local engine is the fallback)
	SynthAPIURL     string
	SynthAPIKey     string
	SynthTimeout    time.Duration
	PromptInfluence float64

	// Market data
	MarketAPIURL  string
	MarketAPIKey  string
	MarketTimeout time.Duration
	HistoryDays   int

	// Engine
	Duration       time.Duration // clip length
	SampleRate     int
	PeakResolution int           // waveform peaks per clip
	LoopBlend      time.Duration // loop-seam crossfade length

	// Station
	Workers    int // concurrent render workers
	MaxMoments int // in-memory moment cap
}

// Load reads configuration from the environment with sane defaults.
// A .env file in the working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: envInt("MARKETWAVE_PORT", 8080),

		SynthAPIURL:     envStr("ELEVENLABS_API_URL", ""),
		SynthAPIKey:     envStr("ELEVENLABS_API_KEY", ""),
		SynthTimeout:    time.Duration(envInt("ELEVENLABS_TIMEOUT", 120)) * time.Second,
		PromptInfluence: envFloat("ELEVENLABS_PROMPT_INFLUENCE", 0.7),

		MarketAPIURL:  envStr("COINGECKO_API_URL", "https://api.coingecko.com/api/v3"),
		MarketAPIKey:  envStr("COINGECKO_API_KEY", ""),
		MarketTimeout: time.Duration(envInt("COINGECKO_TIMEOUT", 10)) * time.Second,
		HistoryDays:   envInt("MARKETWAVE_HISTORY_DAYS", 7),

		Duration:       time.Duration(envInt("MARKETWAVE_DURATION", 8)) * time.Second,
		SampleRate:     envInt("MARKETWAVE_SAMPLE_RATE", 44100),
		PeakResolution: envInt("MARKETWAVE_PEAK_RESOLUTION", 200),
		LoopBlend:      time.Duration(envInt("MARKETWAVE_LOOP_BLEND_MS", 20)) * time.Millisecond,

		Workers:    envInt("MARKETWAVE_WORKERS", 2),
		MaxMoments: envInt("MARKETWAVE_MAX_MOMENTS", 100),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
