package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMinConns  int32  `envconfig:"LL_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"LL_DB_MAX_CONNS" default:"8"`

	DeepLAPIKey   string `envconfig:"DEEPL_API_KEY" default:""`
	DeepLEndpoint string `envconfig:"DEEPL_ENDPOINT" default:"https://api-free.deepl.com"`

	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIEndpoint string `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1"`

	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiEndpoint string `envconfig:"GEMINI_ENDPOINT" default:"https://generativelanguage.googleapis.com"`

	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("LL_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("LL_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("LL_DB_MIN_CONNS (%d) cannot exceed LL_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.ProviderTimeout < time.Second {
		return fmt.Errorf("PROVIDER_TIMEOUT must be >= 1s")
	}
	if strings.TrimSpace(c.DeepLEndpoint) == "" {
		return fmt.Errorf("DEEPL_ENDPOINT is required")
	}
	if strings.TrimSpace(c.OpenAIEndpoint) == "" {
		return fmt.Errorf("OPENAI_ENDPOINT is required")
	}
	if strings.TrimSpace(c.GeminiEndpoint) == "" {
		return fmt.Errorf("GEMINI_ENDPOINT is required")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
