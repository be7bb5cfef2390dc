// Package config loads and validates the service configuration.
package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RetrievalConfig holds the process-wide relevance decision parameters.
// They are deployment configuration, never user-supplied per query.
type RetrievalConfig struct {
	TopK                int     `yaml:"top_k"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// IngestConfig configures chunk extraction.
type IngestConfig struct {
	ChunkSize int `yaml:"chunk_size"` // max characters per plain-text chunk
}

// OllamaConfig points at the local model server.
type OllamaConfig struct {
	Host           string `yaml:"host"`
	EmbeddingModel string `yaml:"embedding_model"`
	LLMModel       string `yaml:"llm_model"`
}

// StoreConfig selects the vector store implementation.
type StoreConfig struct {
	Type string `yaml:"type"` // memory | sqlite
	Path string `yaml:"path"` // data directory for sqlite
}

// WatchConfig configures the optional drop-in documents directory.
type WatchConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// GateConfig configures consent gate housekeeping.
type GateConfig struct {
	IdleTTLMinutes int `yaml:"idle_ttl_minutes"`
}

// LogConfig configures the event sink.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Ollama    OllamaConfig    `yaml:"ollama"`
	Store     StoreConfig     `yaml:"store"`
	Watch     WatchConfig     `yaml:"watch"`
	Gate      GateConfig      `yaml:"gate"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads a config file, applies defaults and env overrides, and
// validates. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that would silently distort the relevance
// decision. Validation failures are fatal at startup.
func (c *Config) Validate() error {
	if c.Retrieval.ConfidenceThreshold <= 0 || c.Retrieval.ConfidenceThreshold > 1 {
		return &entities.ConfigurationError{
			Field:  "retrieval.confidence_threshold",
			Reason: "must be in (0, 1]",
		}
	}
	if c.Retrieval.TopK < 1 {
		return &entities.ConfigurationError{
			Field:  "retrieval.top_k",
			Reason: "must be at least 1",
		}
	}
	if c.Ingest.ChunkSize < 1 {
		return &entities.ConfigurationError{
			Field:  "ingest.chunk_size",
			Reason: "must be at least 1",
		}
	}
	if c.Store.Type != "memory" && c.Store.Type != "sqlite" {
		return &entities.ConfigurationError{
			Field:  "store.type",
			Reason: "must be memory or sqlite",
		}
	}
	if c.Gate.IdleTTLMinutes < 1 {
		return &entities.ConfigurationError{
			Field:  "gate.idle_ttl_minutes",
			Reason: "must be at least 1",
		}
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server:    ServerConfig{Addr: ":8080"},
		Retrieval: RetrievalConfig{TopK: 5, ConfidenceThreshold: 0.45},
		Ingest:    IngestConfig{ChunkSize: 1000},
		Ollama: OllamaConfig{
			Host:           "http://localhost:11434",
			EmbeddingModel: "nomic-embed-text",
			LLMModel:       "llama3.2",
		},
		Store: StoreConfig{Type: "sqlite", Path: "./data"},
		Watch: WatchConfig{Enabled: false, Dir: "./documents"},
		Gate:  GateConfig{IdleTTLMinutes: 30},
		Log:   LogConfig{Level: "info"},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "sqlite"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./data"
	}
	if cfg.Gate.IdleTTLMinutes == 0 {
		cfg.Gate.IdleTTLMinutes = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// applyEnvOverrides lets deployments override the most common knobs
// without editing the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FINWISE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Ollama.Host = v
	}
	if v := os.Getenv("FINWISE_STORE"); v != "" {
		cfg.Store.Type = v
	}
	if v := os.Getenv("FINWISE_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Retrieval.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("FINWISE_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			cfg.Retrieval.TopK = k
		}
	}
}
