// Package config manages aimemo configuration. Settings come from
// environment variables with the AIMEMO_ prefix, optionally overridden by a
// JSON or YAML file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ContextMode selects what GetContext assembles.
type ContextMode string

const (
	// ContextModeSearch retrieves ranked memories from the store.
	ContextModeSearch ContextMode = "search"
	// ContextModeWorking uses only the in-process working memory.
	ContextModeWorking ContextMode = "working"
	// ContextModeBoth prepends working memory to the searched context.
	ContextModeBoth ContextMode = "both"
)

// Config holds all aimemo settings.
type Config struct {
	// DBPath is the SQLite database location.
	// Env var: AIMEMO_DB_PATH (default: ~/.aimemo/memory.db)
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxContextMemories caps memories injected as context.
	// Env var: AIMEMO_MAX_CONTEXT (default: 5)
	MaxContextMemories int `json:"max_context_memories" yaml:"max_context_memories"`

	// EnableExtraction toggles write-time entity extraction.
	// Env var: AIMEMO_ENABLE_EXTRACTION (default: true)
	EnableExtraction bool `json:"enable_extraction" yaml:"enable_extraction"`

	// EnableCategorization toggles write-time categorization. When off,
	// uncategorized memories default to the context category.
	// Env var: AIMEMO_ENABLE_CATEGORIZATION (default: true)
	EnableCategorization bool `json:"enable_categorization" yaml:"enable_categorization"`

	// ExtractionConfidenceThreshold is reserved for extractors that
	// measure confidence; the regex extractor emits a fixed 0.8.
	// Env var: AIMEMO_EXTRACTION_THRESHOLD (default: 0.8)
	ExtractionConfidenceThreshold float64 `json:"extraction_confidence_threshold" yaml:"extraction_confidence_threshold"`

	// WorkingMemoryLimit bounds the in-process working memory FIFO.
	// Env var: AIMEMO_WORKING_MEMORY_LIMIT (default: 5)
	WorkingMemoryLimit int `json:"working_memory_limit" yaml:"working_memory_limit"`

	// Mode selects the GetContext assembly policy.
	// Env var: AIMEMO_CONTEXT_MODE (default: search)
	Mode ContextMode `json:"context_mode" yaml:"context_mode"`
}

// Default returns the configuration from environment variables, with
// defaults for anything unset.
func Default() *Config {
	return &Config{
		DBPath:                        envStr("AIMEMO_DB_PATH", defaultDBPath()),
		MaxContextMemories:            envInt("AIMEMO_MAX_CONTEXT", 5),
		EnableExtraction:              envBool("AIMEMO_ENABLE_EXTRACTION", true),
		EnableCategorization:          envBool("AIMEMO_ENABLE_CATEGORIZATION", true),
		ExtractionConfidenceThreshold: envFloat("AIMEMO_EXTRACTION_THRESHOLD", 0.8),
		WorkingMemoryLimit:            envInt("AIMEMO_WORKING_MEMORY_LIMIT", 5),
		Mode:                          ContextMode(envStr("AIMEMO_CONTEXT_MODE", string(ContextModeSearch))),
	}
}

// LoadFile loads configuration from a JSON or YAML file, selected by
// extension, layered over Default. A missing file reports an error that
// satisfies errors.Is(err, fs.ErrNotExist).
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse json config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges on the loaded values.
func (c *Config) Validate() error {
	if c.WorkingMemoryLimit <= 0 {
		return fmt.Errorf("working_memory_limit must be positive, got %d", c.WorkingMemoryLimit)
	}
	if c.MaxContextMemories <= 0 {
		return fmt.Errorf("max_context_memories must be positive, got %d", c.MaxContextMemories)
	}
	if c.ExtractionConfidenceThreshold < 0 || c.ExtractionConfidenceThreshold > 1 {
		return fmt.Errorf("extraction_confidence_threshold must be in [0,1], got %g", c.ExtractionConfidenceThreshold)
	}
	switch c.Mode {
	case ContextModeSearch, ContextModeWorking, ContextModeBoth:
	default:
		return fmt.Errorf("context_mode must be search, working or both, got %q", c.Mode)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "aimemo.db"
	}
	return filepath.Join(home, ".aimemo", "memory.db")
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
