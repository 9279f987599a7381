package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the scheduling service configuration.
type Config struct {
	// Server settings
	Port        string `envconfig:"SERVER_PORT" default:"5000"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// Flat-file data directory
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// AI settings. Gemini is reached through its OpenAI-compatible endpoint.
	// An absent API key is allowed: every request then takes the
	// deterministic fallback path.
	AIBaseURL         string        `envconfig:"AI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	AIModel           string        `envconfig:"AI_MODEL" default:"gemini-2.5-flash-lite"`
	AITimeout         time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	AIMinCallInterval time.Duration `envconfig:"AI_MIN_CALL_INTERVAL" default:"4s"`
	AIAPIKey          string        `envconfig:"GEMINI_API_KEY"`

	// CORS
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load scheduling service config: %w", err)
	}

	log.Printf("Scheduling service configuration loaded:")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  Data Dir: %s", cfg.DataDir)
	log.Printf("  AI Base URL: %s", cfg.AIBaseURL)
	log.Printf("  AI Model: %s", cfg.AIModel)
	log.Printf("  AI Timeout: %v", cfg.AITimeout)
	log.Printf("  AI Min Call Interval: %v", cfg.AIMinCallInterval)
	if cfg.AIAPIKey != "" {
		log.Println("  AI API Key: [SET]")
	} else {
		log.Println("  AI API Key: [NOT SET - fallback scheduling only]")
	}

	return &cfg, nil
}
