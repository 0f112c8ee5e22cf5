package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for askdata-engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (API keys,
// database passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"3000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	AI       AIConfig       `yaml:"ai"`
	Vector   VectorConfig   `yaml:"vector"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Database DatabaseConfig `yaml:"database"`
	Query    QueryConfig    `yaml:"query"`
}

// AIConfig holds model endpoints and credentials.
type AIConfig struct {
	// Provider selects the chat backend: "openai" (any OpenAI-compatible
	// endpoint, including Ollama and vLLM) or "anthropic".
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`

	LLMBaseURL  string  `yaml:"llm_base_url" env:"AI_LLM_BASE_URL" env-default:"http://localhost:11434/v1"`
	LLMModel    string  `yaml:"llm_model" env:"AI_LLM_MODEL" env-default:"llama3.2"`
	LLMAPIKey   string  `yaml:"-" env:"AI_LLM_API_KEY"` // Secret - not in YAML
	Temperature float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.7"`

	// SQL generation runs at a lower temperature for consistent output.
	SQLTemperature float64 `yaml:"sql_temperature" env:"AI_SQL_TEMPERATURE" env-default:"0.1"`

	EmbeddingBaseURL string `yaml:"embedding_base_url" env:"AI_EMBEDDING_BASE_URL" env-default:""` // Falls back to LLMBaseURL
	EmbeddingModel   string `yaml:"embedding_model" env:"AI_EMBEDDING_MODEL" env-default:"nomic-embed-text"`
	EmbeddingAPIKey  string `yaml:"-" env:"AI_EMBEDDING_API_KEY"` // Secret - not in YAML
}

// EffectiveEmbeddingBaseURL returns the embedding endpoint, falling back to
// the chat endpoint when no dedicated one is configured.
func (c *AIConfig) EffectiveEmbeddingBaseURL() string {
	if c.EmbeddingBaseURL != "" {
		return c.EmbeddingBaseURL
	}
	return c.LLMBaseURL
}

// EffectiveEmbeddingAPIKey returns the embedding credential, falling back to
// the chat credential.
func (c *AIConfig) EffectiveEmbeddingAPIKey() string {
	if c.EmbeddingAPIKey != "" {
		return c.EmbeddingAPIKey
	}
	return c.LLMAPIKey
}

// VectorConfig holds vector index settings.
type VectorConfig struct {
	// Path is the SQLite database file backing the vector index.
	// ":memory:" is accepted for tests.
	Path       string `yaml:"path" env:"VECTOR_PATH" env-default:"askdata.db"`
	Collection string `yaml:"collection" env:"VECTOR_COLLECTION" env-default:"documents"`
}

// ChunkingConfig controls the text splitter.
type ChunkingConfig struct {
	Size    int `yaml:"size" env:"CHUNK_SIZE" env-default:"1000"`
	Overlap int `yaml:"overlap" env:"CHUNK_OVERLAP" env-default:"200"`
}

// ScraperConfig controls web ingestion.
type ScraperConfig struct {
	// RequestDelayMs is the fixed pause between URLs in a batch.
	RequestDelayMs int `yaml:"request_delay_ms" env:"SCRAPER_REQUEST_DELAY_MS" env-default:"1000"`
	// RenderTimeoutSec bounds a single headless-browser navigation.
	RenderTimeoutSec int `yaml:"render_timeout_sec" env:"SCRAPER_RENDER_TIMEOUT_SEC" env-default:"30"`
	// MaxURLsPerBatch caps one scrape request.
	MaxURLsPerBatch int    `yaml:"max_urls_per_batch" env:"SCRAPER_MAX_URLS" env-default:"10"`
	UserAgent       string `yaml:"user_agent" env:"SCRAPER_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
}

// DatabaseConfig holds the MySQL target for natural-language queries.
// The engine assumes a single active database connection per process.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"MYSQL_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"MYSQL_PORT" env-default:"3306"`
	User     string `yaml:"user" env:"MYSQL_USER" env-default:""`
	Password string `yaml:"-" env:"MYSQL_PASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"MYSQL_DATABASE" env-default:""`
}

// Configured reports whether a query target has been provided at all.
func (c *DatabaseConfig) Configured() bool {
	return c.User != "" && c.Database != ""
}

// QueryConfig holds SQL generation defaults.
type QueryConfig struct {
	// ReadOnly enforces SELECT-only generation and blocks execution.
	ReadOnly bool `yaml:"read_only" env:"QUERY_READ_ONLY" env-default:"true"`
	// MaxRows is the row ceiling requested from the model.
	MaxRows int `yaml:"max_rows" env:"QUERY_MAX_ROWS" env-default:"1000"`
}

// Load reads configuration from config.yaml (if present) and the
// environment. The version string is stamped by the build.
func Load(version string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	}

	cfg.Version = version

	if cfg.Chunking.Overlap >= cfg.Chunking.Size {
		return nil, fmt.Errorf("chunk overlap (%d) must be less than chunk size (%d)",
			cfg.Chunking.Overlap, cfg.Chunking.Size)
	}

	return &cfg, nil
}
