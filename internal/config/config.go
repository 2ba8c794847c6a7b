// Package config loads server configuration: YAML file first, environment
// overrides second.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Port   int    `yaml:"port" env:"STATECRAFT_PORT"`
	DBPath string `yaml:"db_path" env:"STATECRAFT_DB"`

	// AnthropicAPIKey enables the optional text-generation collaborator.
	// Empty key = deterministic text only.
	AnthropicAPIKey string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	// TextGeneration turns the collaborator on even when a key is present,
	// so operators can hold a key and still run deterministic.
	TextGeneration bool `yaml:"text_generation" env:"STATECRAFT_TEXT_GENERATION"`

	LogLevel string `yaml:"log_level" env:"STATECRAFT_LOG_LEVEL"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Port:     8080,
		DBPath:   "data/statecraft.db",
		LogLevel: "info",
	}
}

// Load reads the YAML file at path (optional: a missing file is fine) and
// then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Config file is optional.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
