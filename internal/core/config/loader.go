package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultModel is the scoring model used when none is configured.
const DefaultModel = "lucas2024/mistral-nemo-japanese-instruct-2408:q8_0"

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with every default applied, for runs
// without a config file.
func Default() *AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Archive.Path == "" {
		cfg.Archive.Path = "tweets.js"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "results.json"
	}

	if cfg.Scoring.Model == "" {
		cfg.Scoring.Model = DefaultModel
	}
	if cfg.Scoring.Endpoint == "" {
		cfg.Scoring.Endpoint = "http://localhost:11434/v1"
	}
	if cfg.Scoring.APIKey == "" {
		cfg.Scoring.APIKey = "ollama"
	}
	if cfg.Scoring.Concurrency == 0 {
		cfg.Scoring.Concurrency = 5
	}
	if cfg.Scoring.MaxAttempts == 0 {
		cfg.Scoring.MaxAttempts = 5
	}
	if cfg.Scoring.ScoreMax == 0 {
		cfg.Scoring.ScoreMax = 10
	}
	if cfg.Scoring.RequestTimeout == 0 {
		cfg.Scoring.RequestTimeout = Duration(120 * time.Second)
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = Duration(24 * time.Hour)
	}
	if cfg.Events.Subject == "" {
		cfg.Events.Subject = "flamescan.outcomes"
	}
}
