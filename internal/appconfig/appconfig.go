// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests to local services.
	defaultRequestTimeout = 600 * time.Second
	// defaultEmbedBatchSize caps how many chunks are sent per embedding request.
	defaultEmbedBatchSize = 32
)

// ErrInvalidConfig indicates the configuration failed validation. Fatal at startup.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the top-level application configuration.
// It is constructed once at process start and read-only thereafter.
type Config struct {
	OllamaURL      string `json:"ollamaURL" mapstructure:"ollamaURL"`
	QdrantURL      string `json:"qdrantURL" mapstructure:"qdrantURL"`
	QdrantAPIKey   string `json:"qdrantAPIKey,omitempty" mapstructure:"qdrantAPIKey"`
	EmbeddingModel string `json:"embeddingModel" mapstructure:"embeddingModel"`
	ChatModel      string `json:"chatModel" mapstructure:"chatModel"`
	Collection     string `json:"collection" mapstructure:"collection"`
	ChunkSize      int    `json:"chunkSize" mapstructure:"chunkSize"`
	ChunkOverlap   int    `json:"chunkOverlap" mapstructure:"chunkOverlap"`
	TopK           int    `json:"topK" mapstructure:"topK"`
	EmbedBatchSize int    `json:"embedBatchSize,omitempty" mapstructure:"embedBatchSize"`
	DataDir        string `json:"dataDir,omitempty" mapstructure:"dataDir"`
	DocumentsDir   string `json:"documentsDir,omitempty" mapstructure:"documentsDir"`
	TimeoutSeconds int    `json:"timeout,omitempty" mapstructure:"timeout"`
	LogFile        string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// Defaults returns the built-in configuration, matching a stock local
// Ollama + Qdrant install.
func Defaults() Config {
	return Config{
		OllamaURL:      "http://localhost:11434",
		QdrantURL:      "http://localhost:6333",
		EmbeddingModel: "nomic-embed-text",
		ChatModel:      "llama3.1:8b",
		Collection:     "localmind_docs",
		ChunkSize:      1024,
		ChunkOverlap:   200,
		TopK:           5,
		EmbedBatchSize: defaultEmbedBatchSize,
		DataDir:        "data",
		TimeoutSeconds: int(defaultRequestTimeout.Seconds()),
	}
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BatchSize returns the embedding batch cap, applying the default if not set.
func (c Config) BatchSize() int {
	if c.EmbedBatchSize <= 0 {
		return defaultEmbedBatchSize
	}
	return c.EmbedBatchSize
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "localmind.log"
}

// DocumentsPath returns the default documents directory used when ingest is
// called with no arguments.
func (c Config) DocumentsPath() string {
	if strings.TrimSpace(c.DocumentsDir) != "" {
		return c.DocumentsDir
	}
	return filepath.Join(c.DataDir, "documents")
}

// Validate checks the semantic constraints the JSON schema cannot express.
// An overlap that reaches the chunk size would make chunking non-terminating,
// so it is rejected before any pipeline runs.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunkSize must be greater than zero, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunkOverlap must be zero or greater, got %d", ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunkOverlap (%d) must be smaller than chunkSize (%d)", ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: topK must be greater than zero, got %d", ErrInvalidConfig, c.TopK)
	}
	if strings.TrimSpace(c.OllamaURL) == "" {
		return fmt.Errorf("%w: ollamaURL is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.QdrantURL) == "" {
		return fmt.Errorf("%w: qdrantURL is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Collection) == "" {
		return fmt.Errorf("%w: collection is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.EmbeddingModel) == "" {
		return fmt.Errorf("%w: embeddingModel is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ChatModel) == "" {
		return fmt.Errorf("%w: chatModel is required", ErrInvalidConfig)
	}
	return nil
}

// configSchema constrains the shape and types of the merged settings map.
const configSchema = `{
  "type": "object",
  "properties": {
    "ollamaURL":      {"type": "string"},
    "qdrantURL":      {"type": "string"},
    "qdrantAPIKey":   {"type": "string"},
    "embeddingModel": {"type": "string"},
    "chatModel":      {"type": "string"},
    "collection":     {"type": "string"},
    "chunkSize":      {"type": "integer", "minimum": 1},
    "chunkOverlap":   {"type": "integer", "minimum": 0},
    "topK":           {"type": "integer", "minimum": 1},
    "embedBatchSize": {"type": "integer", "minimum": 1},
    "dataDir":        {"type": "string"},
    "documentsDir":   {"type": "string"},
    "timeout":        {"type": "integer", "minimum": 1},
    "logFile":        {"type": "string"},
    "debug":          {"type": "boolean"}
  }
}`

// ValidateSettings checks a merged settings map (file, env, and flags already
// applied) against the embedded JSON schema. It reports all violations as a
// single error.
func ValidateSettings(settings map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewGoLoader(settings),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if result.Valid() {
		return nil
	}
	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}
