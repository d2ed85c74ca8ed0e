package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the content engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Redis configuration (optional, calendar recent-topic cache)
	Redis RedisConfig `yaml:"redis"`

	// LLM completion endpoint configuration
	LLM LLMConfig `yaml:"llm"`

	// Pipeline thresholds and retry bounds
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Publishing collaborator webhook
	Publisher PublisherConfig `yaml:"publisher"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"contenthub"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"content_hub"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// RedisConfig holds optional Redis configuration.
// An empty host disables the calendar cache entirely.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// LLMConfig holds configuration for the OpenAI-compatible completion endpoint.
type LLMConfig struct {
	Endpoint       string  `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model          string  `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4o"`
	APIKey         string  `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
	Temperature    float64 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.7"`
	TimeoutSeconds int     `yaml:"timeout_seconds" env:"LLM_TIMEOUT_SECONDS" env-default:"45"`
}

// Timeout returns the configured per-call timeout as a duration.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PipelineConfig holds quality-gate thresholds and retry bounds.
// The publish threshold gates first-time publication; the repair threshold is
// the bounded-retry fallback used by repair flows.
//
// These fields carry no env-default tags: cleanenv backfills a default over
// any zero value after parsing, which would rewrite an explicit
// `draft_attempts: 0` to 2 before validate() could reject it. Defaults are
// seeded in LoadFrom instead, so a written zero survives to validation.
type PipelineConfig struct {
	PublishThreshold int `yaml:"publish_threshold" env:"PIPELINE_PUBLISH_THRESHOLD"`
	RepairThreshold  int `yaml:"repair_threshold" env:"PIPELINE_REPAIR_THRESHOLD"`
	// DraftAttempts is the total number of drafting attempts per cycle
	// (initial attempt plus retries on malformed completions or timeouts).
	DraftAttempts int `yaml:"draft_attempts" env:"PIPELINE_DRAFT_ATTEMPTS"`
	// MaxRevisions bounds the verify-revise cycle for the primary flow.
	MaxRevisions int `yaml:"max_revisions" env:"PIPELINE_MAX_REVISIONS"`
}

// DefaultPipelineConfig returns the production pipeline bounds.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		PublishThreshold: 85,
		RepairThreshold:  70,
		DraftAttempts:    2,
		MaxRevisions:     1,
	}
}

// PublisherConfig holds the publishing collaborator webhook settings.
// An empty URL disables notifications.
type PublisherConfig struct {
	WebhookURL     string `yaml:"webhook_url" env:"PUBLISHER_WEBHOOK_URL" env-default:""`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"PUBLISHER_TIMEOUT_SECONDS" env-default:"10"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	return LoadFrom("config.yaml", version)
}

// LoadFrom reads configuration from the given YAML path with environment
// variable overrides. Exposed separately so tests can load fixture files.
func LoadFrom(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
		// Seeded before parsing: YAML keys that are present overwrite these,
		// absent keys leave them, and an explicit zero is preserved for
		// validate() to reject.
		Pipeline: DefaultPipelineConfig(),
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// validate rejects configurations that would silently degrade the quality gate.
func (c *Config) validate() error {
	if c.Pipeline.PublishThreshold < 0 || c.Pipeline.PublishThreshold > 100 {
		return fmt.Errorf("publish_threshold must be in [0,100], got %d", c.Pipeline.PublishThreshold)
	}
	if c.Pipeline.RepairThreshold < 0 || c.Pipeline.RepairThreshold > 100 {
		return fmt.Errorf("repair_threshold must be in [0,100], got %d", c.Pipeline.RepairThreshold)
	}
	if c.Pipeline.RepairThreshold > c.Pipeline.PublishThreshold {
		return fmt.Errorf("repair_threshold (%d) must not exceed publish_threshold (%d)",
			c.Pipeline.RepairThreshold, c.Pipeline.PublishThreshold)
	}
	if c.Pipeline.DraftAttempts < 1 {
		return fmt.Errorf("draft_attempts must be at least 1, got %d", c.Pipeline.DraftAttempts)
	}
	if c.Pipeline.MaxRevisions < 0 {
		return fmt.Errorf("max_revisions must not be negative, got %d", c.Pipeline.MaxRevisions)
	}
	if c.LLM.TimeoutSeconds < 1 {
		return fmt.Errorf("llm timeout_seconds must be at least 1, got %d", c.LLM.TimeoutSeconds)
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
