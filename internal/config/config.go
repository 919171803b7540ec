package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the chat gateway service
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8080"`

	// Origins allowed to call the chat endpoints from a browser.
	// Defaults cover the local Vite dev server.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`

	// Anthropic reasoning-engine configuration
	AnthropicAPIKey    string `envconfig:"ANTHROPIC_API_KEY" required:"true"`
	AnthropicModel     string `envconfig:"ANTHROPIC_MODEL" default:"claude-haiku-4-5"`
	AnthropicMaxTokens int    `envconfig:"ANTHROPIC_MAX_TOKENS" default:"1024"`
	AnthropicTimeout   int    `envconfig:"ANTHROPIC_TIMEOUT" default:"60"` // seconds

	// WeatherAPI.com provider configuration
	WeatherAPIKey     string `envconfig:"WEATHERAPI_KEY" required:"true"`
	WeatherAPIBaseURL string `envconfig:"WEATHERAPI_BASE_URL" default:"http://api.weatherapi.com/v1"`
	WeatherAPITimeout int    `envconfig:"WEATHERAPI_TIMEOUT" default:"10"` // seconds

	// Conversation loop configuration
	MaxTurns     int `envconfig:"MAX_TURNS" default:"5"`     // Tool round trips before the loop gives up
	ForecastDays int `envconfig:"FORECAST_DAYS" default:"1"` // Outlook window when no date is requested

	// Resilience configuration for provider lookups
	RetryMaxAttempts           int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	RetryInitialBackoff        int `envconfig:"RETRY_INITIAL_BACKOFF" default:"100"`        // milliseconds
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`   // Failures before opening circuit
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // Seconds before attempting recovery

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables.
// It first attempts to load from .env file if it exists, then from environment.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments).
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHERAPI_KEY is required")
	}
	if cfg.MaxTurns < 1 {
		return nil, fmt.Errorf("MAX_TURNS must be at least 1, got %d", cfg.MaxTurns)
	}

	return &cfg, nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
