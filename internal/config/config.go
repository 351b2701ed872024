// Package config loads executor settings from a YAML file with
// environment variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full serve-time configuration.
type Config struct {
	Listen     string          `yaml:"listen"`
	LogLevel   string          `yaml:"log_level"`
	TickBudget int             `yaml:"tick_budget"`
	MaxRounds  int             `yaml:"max_rounds"`
	Redis      RedisConfig     `yaml:"redis"`
	Extractor  ExtractorConfig `yaml:"extractor"`
}

// RedisConfig configures the optional Redis session store and locker.
// An empty Address keeps sessions in memory.
type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// ExtractorConfig configures the LLM extractor. An empty BaseURL together
// with an empty APIKey selects the offline extractor.
type ExtractorConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
	}
}

// Load reads a YAML config file. A missing path returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets secrets come from the environment instead of the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("CLARITA_REDIS_ADDRESS"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("CLARITA_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("CLARITA_LLM_BASE_URL"); v != "" {
		c.Extractor.BaseURL = v
	}
	if v := os.Getenv("CLARITA_LLM_API_KEY"); v != "" {
		c.Extractor.APIKey = v
	}
	if v := os.Getenv("CLARITA_LLM_MODEL"); v != "" {
		c.Extractor.Model = v
	}
}
