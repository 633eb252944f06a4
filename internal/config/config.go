// Package config centralizes environment configuration. Callers are
// expected to run godotenv.Load() before FromEnv so a local .env file
// is honored the same way as real environment variables.
package config

import (
	"os"
	"time"
)

const (
	defaultAssemblyAIBase = "https://api.assemblyai.com/v2"
	defaultGeminiBase     = "https://generativelanguage.googleapis.com/v1beta"
	defaultPollInterval   = 2 * time.Second
	defaultPollTimeout    = 10 * time.Minute
)

type Config struct {
	// Transcription service. Key is required for any real run.
	AssemblyAIKey  string
	AssemblyAIBase string

	// Generation service. An empty key is valid: every request then
	// degrades straight to the template fallback note.
	GeminiKey  string
	GeminiBase string

	// Poll loop tuning for the transcription job state machine.
	PollInterval time.Duration
	PollTimeout  time.Duration

	Port string
}

func FromEnv() Config {
	return Config{
		AssemblyAIKey:  os.Getenv("ASSEMBLYAI_API_KEY"),
		AssemblyAIBase: envOr("ASSEMBLYAI_BASE_URL", defaultAssemblyAIBase),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiBase:     envOr("GEMINI_BASE_URL", defaultGeminiBase),
		PollInterval:   durationOr("POLL_INTERVAL", defaultPollInterval),
		PollTimeout:    durationOr("POLL_TIMEOUT", defaultPollTimeout),
		Port:           envOr("PORT", "8080"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationOr(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
