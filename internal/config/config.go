package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the outreach service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Completion CompletionConfig `yaml:"completion"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RetrievalConfig holds candidate store and ranking settings.
type RetrievalConfig struct {
	Backend          string  `yaml:"backend"` // lexical, sqlite, redis (default: lexical)
	TopK             int     `yaml:"top_k"`
	FallbackDistance float64 `yaml:"fallback_distance"`
	TemplatesPath    string  `yaml:"templates_path"`
	PortfolioPath    string  `yaml:"portfolio_path"`
	SQLitePath       string  `yaml:"sqlite_path"`
}

// DatabaseConfig holds Redis connection settings, used by the redis backend.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider            string `yaml:"provider"` // openai, hash
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url"`
	Model               string `yaml:"model"`
	Dimensions          int    `yaml:"dimensions"`
	AllowHashEmbeddings bool   `yaml:"allow_hash_embeddings"`
}

// CompletionConfig holds chat completion provider settings.
type CompletionConfig struct {
	APIKey            string  `yaml:"api_key"`
	BaseURL           string  `yaml:"base_url"`
	Model             string  `yaml:"model"`
	Temperature       float32 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
	RequestsPerMinute int     `yaml:"requests_per_minute"`
}

// Load reads config/<env>.yaml, expands ${VAR} references, applies defaults
// and validates. CONFIG_DIR overrides the config directory.
func Load(env string) (Config, error) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	path := filepath.Join(dir, env+".yaml")

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Retrieval.Backend == "" {
		c.Retrieval.Backend = "lexical"
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 2
	}
	if c.Retrieval.FallbackDistance <= 0 {
		c.Retrieval.FallbackDistance = 0.8
	}
	if c.Retrieval.TemplatesPath == "" {
		c.Retrieval.TemplatesPath = "data/email_templates.json"
	}
	if c.Retrieval.PortfolioPath == "" {
		c.Retrieval.PortfolioPath = "data/my_portfolio.csv"
	}
	if c.Retrieval.SQLitePath == "" {
		c.Retrieval.SQLitePath = "data/outreach.db"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 1536
	}
	if c.Completion.Model == "" {
		c.Completion.Model = "gpt-4o-mini"
	}
	if c.Completion.Temperature <= 0 {
		c.Completion.Temperature = 0.7
	}
	if c.Completion.MaxTokens <= 0 {
		c.Completion.MaxTokens = 1024
	}
	if c.Completion.RequestsPerMinute <= 0 {
		c.Completion.RequestsPerMinute = 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Retrieval.Backend {
	case "lexical", "sqlite", "redis":
	default:
		return fmt.Errorf(
			"retrieval.backend must be \"lexical\", \"sqlite\" or \"redis\", got %q",
			c.Retrieval.Backend,
		)
	}
	if c.Retrieval.FallbackDistance > 2 {
		return fmt.Errorf("retrieval.fallback_distance must be at most 2, got %g", c.Retrieval.FallbackDistance)
	}
	if c.Retrieval.Backend == "redis" && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required for the redis backend")
	}
	switch c.Embedding.Provider {
	case "openai", "hash":
	default:
		return fmt.Errorf(
			"embedding.provider must be \"openai\" or \"hash\", got %q",
			c.Embedding.Provider,
		)
	}
	if c.Embedding.Provider == "hash" && !c.Embedding.AllowHashEmbeddings {
		return fmt.Errorf("embedding.provider \"hash\" requires embedding.allow_hash_embeddings: true")
	}
	return nil
}

// expandEnvVars resolves ${VAR} and ${VAR:-default} references against the
// process environment.
func expandEnvVars(data []byte) []byte {
	return []byte(os.Expand(string(data), func(expr string) string {
		name, def, hasDefault := strings.Cut(expr, ":-")
		if val := os.Getenv(name); val != "" {
			return val
		}
		if hasDefault {
			return def
		}
		return ""
	}))
}
