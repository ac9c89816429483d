package config

import (
	"github.com/vietddude/flamescan/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Archive ArchiveConfig `yaml:"archive"`
	Store   StoreConfig   `yaml:"store"`
	Scoring ScoringConfig `yaml:"scoring"`
	Cache   CacheConfig   `yaml:"cache"`
	Events  EventsConfig  `yaml:"events"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ArchiveConfig points at the tweet archive export.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig selects where outcomes are persisted. The JSON file is
// the default; setting database.url switches to PostgreSQL.
type StoreConfig struct {
	Path     string          `yaml:"path"`
	Database postgres.Config `yaml:"database"`
}

// ScoringConfig holds backend and retry settings.
type ScoringConfig struct {
	Model          string   `yaml:"model"`
	Endpoint       string   `yaml:"endpoint"`
	APIKey         string   `yaml:"api_key"`
	Prompt         string   `yaml:"prompt"` // empty = built-in instruction
	Concurrency    int      `yaml:"concurrency"`
	MaxAttempts    int      `yaml:"max_attempts"`
	ScoreMin       float64  `yaml:"score_min"`
	ScoreMax       float64  `yaml:"score_max"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

// CacheConfig holds the optional Redis response cache settings. An
// empty URL disables caching.
type CacheConfig struct {
	URL      string   `yaml:"url"`
	Password string   `yaml:"password"`
	TTL      Duration `yaml:"ttl"`
}

// EventsConfig holds optional NATS outcome publishing settings.
type EventsConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ServerConfig holds HTTP server settings. Port 0 disables the server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
