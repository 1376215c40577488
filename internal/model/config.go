package model

import "time"

// Config holds the complete Veridict configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Ingest  IngestConfig  `yaml:"ingest" mapstructure:"ingest"`
	Explain ExplainConfig `yaml:"explain" mapstructure:"explain"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr              string  `yaml:"addr" mapstructure:"addr"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// HTTPConfig configures outbound HTTP for feed ingestion
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// CacheConfig configures the verdict cache backing Summary()
type CacheConfig struct {
	VerdictTTL      time.Duration `yaml:"verdict_ttl" mapstructure:"verdict_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// IngestConfig configures statement feed ingestion
type IngestConfig struct {
	Category      string `yaml:"category" mapstructure:"category"`
	RespectRobots bool   `yaml:"respect_robots" mapstructure:"respect_robots"`
	MaxStatements int    `yaml:"max_statements" mapstructure:"max_statements"`
}

// ExplainConfig configures the optional LLM narrative.
// The narrative never affects any score.
type ExplainConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // empty disables
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			RequestsPerSecond: 10,
			Burst:             20,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Veridict/0.2 (+https://github.com/veridict/veridict)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			VerdictTTL:      24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Ingest: IngestConfig{
			Category:      "ingested",
			RespectRobots: true,
			MaxStatements: 200,
		},
		Explain: ExplainConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 600,
		},
	}
}
