// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported move-suggestion providers.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// Config is the environment-level configuration surface. Delay and timeout
// values are milliseconds, matching the variable names.
type Config struct {
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        int    `env:"PORT" envDefault:"3001"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	AIProvider     string `env:"AI_PROVIDER" envDefault:"groq"`
	GroqAPIKey     string `env:"GROQ_API_KEY"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	GoogleAIAPIKey string `env:"GOOGLE_AI_API_KEY"`
	GroqModel      string `env:"GROQ_MODEL"`

	AITimeoutMS       int `env:"AI_TIMEOUT_MS" envDefault:"30000"`
	AIMaxRetries      int `env:"AI_MAX_RETRIES" envDefault:"3"`
	AIRetryDelayMS    int `env:"AI_RETRY_DELAY_MS" envDefault:"2000"`
	AIThinkingDelayMS int `env:"AI_THINKING_DELAY_MS" envDefault:"1000"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutMS) * time.Millisecond
}

func (c *Config) AIRetryDelay() time.Duration {
	return time.Duration(c.AIRetryDelayMS) * time.Millisecond
}

func (c *Config) AIThinkingDelay() time.Duration {
	return time.Duration(c.AIThinkingDelayMS) * time.Millisecond
}
