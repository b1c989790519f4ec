// internal/config/config.go
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the collector.
type Config struct {
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	DBURL        string `mapstructure:"DB_URL"`
	GithubToken  string `mapstructure:"GITHUB_TOKEN"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	APIBaseURL   string `mapstructure:"API_BASE_URL"`
	HealthAddr   string `mapstructure:"HEALTH_ADDR"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:3001")
	viper.SetDefault("HEALTH_ADDR", ":3003")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields. GITHUB_TOKEN and OPENAI_API_KEY are optional:
	// the GitHub client falls back to unauthenticated requests and the AI job
	// skips itself when no key is configured.
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}

	return &cfg, nil
}
