// Package config provides configuration management for the gotbot chatbot.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the bot
type Config struct {
	AnthropicAPIKey string
	Model           string

	MaxIterations   int
	Temperature     float64
	MaxOutputTokens int64
	HistorySize     int

	ListenAddr string

	TelemetryEnabled  bool
	TelemetryEndpoint string
}

// Load loads configuration from environment variables, filling in defaults
// for everything that is unset
func Load() Config {
	config := Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:           os.Getenv("GOTBOT_MODEL"),

		MaxIterations:   4,
		Temperature:     0.7,
		MaxOutputTokens: 1024,
		HistorySize:     20,

		ListenAddr: ":8080",

		TelemetryEndpoint: os.Getenv("GOTBOT_TELEMETRY_ENDPOINT"),
	}

	if config.Model == "" {
		config.Model = "claude-sonnet-4-0"
	}
	if addr := os.Getenv("GOTBOT_LISTEN_ADDR"); addr != "" {
		config.ListenAddr = addr
	}
	if v := os.Getenv("GOTBOT_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.MaxIterations = n
		}
	}
	if v := os.Getenv("GOTBOT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			config.Temperature = f
		}
	}
	if v := os.Getenv("GOTBOT_MAX_TOKENS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			config.MaxOutputTokens = n
		}
	}
	if v := os.Getenv("GOTBOT_HISTORY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.HistorySize = n
		}
	}
	if v := os.Getenv("GOTBOT_TELEMETRY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.TelemetryEnabled = b
		}
	}

	return config
}

// Validate checks if the required configuration is present
func (c Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("missing required environment variable: ANTHROPIC_API_KEY")
	}
	return nil
}
