// Package lib provides process configuration for the bridge.
package lib

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// ServiceName and ServiceVersion identify the bridge in the service
	// descriptor endpoint.
	ServiceName    = "Tavus Bridge"
	ServiceVersion = "1.0.0"

	// DefaultTeacherAPIURL is the backend reached when TEACHER_API_URL is unset.
	DefaultTeacherAPIURL = "https://backend-teacher-production.up.railway.app"

	// DefaultPort is the listen port when PORT is unset.
	DefaultPort = "8080"

	// DefaultStreamWordDelay paces SSE word events.
	DefaultStreamWordDelay = 20 * time.Millisecond
)

// Config holds the externally visible configuration of the bridge. All values
// are environment-supplied with documented defaults.
type Config struct {
	// TeacherAPIURL is the base URL of the teacher backend (TEACHER_API_URL).
	TeacherAPIURL string

	// Port is the HTTP listen port (PORT).
	Port string

	// StreamWordDelay is the pacing delay between SSE word events
	// (STREAM_WORD_DELAY_MS, in milliseconds).
	StreamWordDelay time.Duration
}

// LoadFromEnv reads the bridge configuration from the environment, applying
// defaults for unset variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		TeacherAPIURL:   envOrDefault("TEACHER_API_URL", DefaultTeacherAPIURL),
		Port:            envOrDefault("PORT", DefaultPort),
		StreamWordDelay: DefaultStreamWordDelay,
	}

	if raw := os.Getenv("STREAM_WORD_DELAY_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid STREAM_WORD_DELAY_MS %q", raw)
		}
		cfg.StreamWordDelay = time.Duration(ms) * time.Millisecond
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
