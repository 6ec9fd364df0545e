// Package config loads tweetbatch settings with precedence
// defaults → YAML file → environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Batch     BatchConfig     `yaml:"batch"`
	Split     SplitConfig     `yaml:"split"`
	Log       LogConfig       `yaml:"log"`
	Stats     StatsConfig     `yaml:"stats"`
}

// DataConfig locates the raw corpora.
type DataConfig struct {
	Sentiment140Path string `yaml:"sentiment140_path"`
	CrowdFlowerPath  string `yaml:"crowdflower_path"`
}

// CacheConfig locates the preprocessed text caches.
type CacheConfig struct {
	PositivesPath string `yaml:"positives_path"`
	NegativesPath string `yaml:"negatives_path"`
}

// EmbeddingConfig selects the word2vec model.
type EmbeddingConfig struct {
	Path string `yaml:"path"`
	// Format is "text", "binary" or "gob"; empty detects from the extension.
	Format string `yaml:"format"`
	Size   int    `yaml:"size"`
	// MiniPath is where `tweetbatch vocab` writes the reduced table.
	MiniPath string `yaml:"mini_path"`
}

// BatchConfig fixes the batch tensor shape.
type BatchConfig struct {
	Size        int `yaml:"size"`
	SequenceLen int `yaml:"sequence_len"`
}

// SplitConfig sets the train and validation batch counts; the rest is test.
type SplitConfig struct {
	TrainBatches int `yaml:"train_batches"`
	ValBatches   int `yaml:"val_batches"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StatsConfig controls `tweetbatch stats`.
type StatsConfig struct {
	OutDir string `yaml:"out_dir"`
	Bins   int    `yaml:"bins"`
}

// Load loads configuration from path, or from TWEETBATCH_CONFIG_PATH
// (default "config/tweetbatch.yaml") when path is empty. A missing file is
// not an error; defaults and env vars still apply.
func Load(path string) (*Config, error) {
	cfg := newDefaults()

	if path == "" {
		path = getEnv("TWEETBATCH_CONFIG_PATH", "config/tweetbatch.yaml")
	}
	if err := loadYAMLFile(cfg, path); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Data: DataConfig{
			Sentiment140Path: "data/training.1600000.processed.noemoticon.csv",
			CrowdFlowerPath:  "data/text_emotion.csv",
		},
		Cache: CacheConfig{
			PositivesPath: "data/positives.txt",
			NegativesPath: "data/negatives.txt",
		},
		Embedding: EmbeddingConfig{
			Path:     "data/word2vec_twitter_model.bin",
			Size:     400,
			MiniPath: "data/word2vec_mini.gob",
		},
		Batch: BatchConfig{
			Size:        64,
			SequenceLen: 30,
		},
		Split: SplitConfig{
			TrainBatches: 190,
			ValBatches:   3000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Stats: StatsConfig{
			OutDir: "plots",
			Bins:   40,
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies non-empty environment variables.
func applyEnvOverrides(cfg *Config) {
	// Data
	if v := os.Getenv("TWEETBATCH_SENTIMENT140_PATH"); v != "" {
		cfg.Data.Sentiment140Path = v
	}
	if v := os.Getenv("TWEETBATCH_CROWDFLOWER_PATH"); v != "" {
		cfg.Data.CrowdFlowerPath = v
	}

	// Cache
	if v := os.Getenv("TWEETBATCH_POSITIVES_CACHE"); v != "" {
		cfg.Cache.PositivesPath = v
	}
	if v := os.Getenv("TWEETBATCH_NEGATIVES_CACHE"); v != "" {
		cfg.Cache.NegativesPath = v
	}

	// Embedding
	if v := os.Getenv("TWEETBATCH_EMBEDDING_PATH"); v != "" {
		cfg.Embedding.Path = v
	}
	if v := os.Getenv("TWEETBATCH_EMBEDDING_FORMAT"); v != "" {
		cfg.Embedding.Format = v
	}
	setInt("TWEETBATCH_EMBEDDING_SIZE", &cfg.Embedding.Size)

	// Batch
	setInt("TWEETBATCH_BATCH_SIZE", &cfg.Batch.Size)
	setInt("TWEETBATCH_SEQUENCE_LEN", &cfg.Batch.SequenceLen)

	// Split
	setInt("TWEETBATCH_TRAIN_BATCHES", &cfg.Split.TrainBatches)
	setInt("TWEETBATCH_VAL_BATCHES", &cfg.Split.ValBatches)

	// Log
	if v := os.Getenv("TWEETBATCH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TWEETBATCH_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// validate checks that the batch shape is usable.
func (c *Config) validate() error {
	if c.Batch.Size <= 0 || c.Batch.Size%2 != 0 {
		return fmt.Errorf("batch.size must be positive and even, got %d", c.Batch.Size)
	}
	if c.Batch.SequenceLen <= 0 {
		return fmt.Errorf("batch.sequence_len must be positive, got %d", c.Batch.SequenceLen)
	}
	if c.Embedding.Size <= 0 {
		return fmt.Errorf("embedding.size must be positive, got %d", c.Embedding.Size)
	}
	if c.Split.TrainBatches < 0 || c.Split.ValBatches < 0 {
		return errors.New("split counts must not be negative")
	}
	switch c.Embedding.Format {
	case "", "text", "binary", "gob":
	default:
		return fmt.Errorf("unknown embedding.format %q", c.Embedding.Format)
	}
	if c.Cache.PositivesPath == "" || c.Cache.NegativesPath == "" {
		return errors.New("cache paths are required")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
