// Package config loads application settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/logger"
)

// Supported LLM providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
)

// DefaultAnthropicModel is the model identifier sent when none is configured.
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// ServerConfig configures the HTTP form server.
type ServerConfig struct {
	Port string
	// RequestTimeout bounds every HTTP request when positive.
	RequestTimeout time.Duration
	SessionTTL     time.Duration
}

// AIConfig configures the outbound review call.
type AIConfig struct {
	LLMProvider      string
	AnthropicAPIURL  string
	AnthropicAPIKey  string
	AnthropicVersion string
	GeneratorModel   string
	MaxTokens        int
	OllamaHost       string
	GeminiAPIKey     string
	// RequestTimeout is zero by default: the review call waits until the
	// remote service answers or the caller cancels.
	RequestTimeout time.Duration
}

// Config holds the application's configuration values.
type Config struct {
	Server     ServerConfig
	AI         AIConfig
	Logging    logger.Config
	MaxWorkers int
	QueueSize  int
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_REQUEST_TIMEOUT", "0s")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LLM_PROVIDER", ProviderAnthropic)
	v.SetDefault("ANTHROPIC_API_URL", "https://api.anthropic.com/v1/messages")
	v.SetDefault("ANTHROPIC_VERSION", "2023-06-01")
	v.SetDefault("GENERATOR_MODEL_NAME", DefaultAnthropicModel)
	v.SetDefault("MAX_TOKENS", 2000)
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("REQUEST_TIMEOUT", "0s")
	v.SetDefault("MAX_WORKERS", 5)
	v.SetDefault("QUEUE_SIZE", 100)
}

// NewViper returns a viper instance with defaults registered, the optional
// .env file read and environment lookup enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "error", err)
		}
	}
	return v
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets defaults, and validates the result.
func LoadConfig() (*Config, error) {
	return FromViper(NewViper())
}

// FromViper builds a validated Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			RequestTimeout: v.GetDuration("SERVER_REQUEST_TIMEOUT"),
			SessionTTL:     v.GetDuration("SESSION_TTL"),
		},
		AI: AIConfig{
			LLMProvider:      strings.ToLower(v.GetString("LLM_PROVIDER")),
			AnthropicAPIURL:  v.GetString("ANTHROPIC_API_URL"),
			AnthropicAPIKey:  v.GetString("ANTHROPIC_API_KEY"),
			AnthropicVersion: v.GetString("ANTHROPIC_VERSION"),
			GeneratorModel:   v.GetString("GENERATOR_MODEL_NAME"),
			MaxTokens:        v.GetInt("MAX_TOKENS"),
			OllamaHost:       v.GetString("OLLAMA_HOST"),
			GeminiAPIKey:     v.GetString("GEMINI_API_KEY"),
			RequestTimeout:   v.GetDuration("REQUEST_TIMEOUT"),
		},
		Logging: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		MaxWorkers: v.GetInt("MAX_WORKERS"),
		QueueSize:  v.GetInt("QUEUE_SIZE"),
	}

	// Gemini does not serve Claude models; swap the default for a Gemini one.
	if cfg.AI.LLMProvider == ProviderGemini && cfg.AI.GeneratorModel == DefaultAnthropicModel {
		cfg.AI.GeneratorModel = "gemini-2.5-flash"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT must be set")
	}
	if c.AI.GeneratorModel == "" {
		return fmt.Errorf("GENERATOR_MODEL_NAME must be set")
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.AI.MaxTokens)
	}
	if c.AI.RequestTimeout < 0 || c.Server.RequestTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.MaxWorkers < 0 || c.QueueSize < 0 {
		return fmt.Errorf("MAX_WORKERS and QUEUE_SIZE must not be negative")
	}

	switch c.AI.LLMProvider {
	case ProviderAnthropic:
		if c.AI.AnthropicAPIURL == "" {
			return fmt.Errorf("ANTHROPIC_API_URL must be set for the anthropic provider")
		}
	case ProviderOllama:
		if c.AI.OllamaHost == "" {
			return fmt.Errorf("OLLAMA_HOST must be set for the ollama provider")
		}
	case ProviderGemini:
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.AI.LLMProvider)
	}
	return nil
}
