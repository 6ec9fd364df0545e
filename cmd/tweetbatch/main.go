// Command tweetbatch loads the tweet sentiment corpus, plans embedding
// batches and retrieves one batch to show the tensor shape a classifier
// will receive.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Noofbiz/tweetBatch/config"
	"github.com/Noofbiz/tweetBatch/datasets"
	"github.com/Noofbiz/tweetBatch/embedding"
	"github.com/Noofbiz/tweetBatch/textprep"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "tweetbatch",
	Short:        "Prepare word-embedding batches from labeled tweets",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default $TWEETBATCH_CONFIG_PATH or config/tweetbatch.yaml)")
	rootCmd.AddCommand(statsCmd, vocabCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and installs the default logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("configuration loaded", "batch_size", cfg.Batch.Size, "sequence_len", cfg.Batch.SequenceLen)
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadTexts returns the preprocessed Sentiment140 positives and negatives,
// building the cache on first use.
func loadTexts(cfg *config.Config) ([]string, []string, error) {
	paths := datasets.CachePaths{
		Positives: cfg.Cache.PositivesPath,
		Negatives: cfg.Cache.NegativesPath,
	}
	build := datasets.Sentiment140Builder(cfg.Data.Sentiment140Path, textprep.TweetNormalizer{})
	return datasets.LoadCachedOrBuild(paths, build)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	positives, negatives, err := loadTexts(cfg)
	if err != nil {
		return err
	}

	splits, err := datasets.PlanBatches(positives, negatives, datasets.PlanConfig{
		BatchSize:    cfg.Batch.Size,
		TrainBatches: cfg.Split.TrainBatches,
		ValBatches:   cfg.Split.ValBatches,
	})
	if err != nil {
		return err
	}

	table, err := embedding.Load(cfg.Embedding.Path, embedding.Format(cfg.Embedding.Format))
	if err != nil {
		return err
	}
	slog.Info("embedding table loaded", "path", cfg.Embedding.Path, "words", table.Len(), "dim", table.Dim())

	loader, err := datasets.NewLoader(splits.Train, table, datasets.LoaderConfig{
		BatchSize:     cfg.Batch.Size,
		SequenceLen:   cfg.Batch.SequenceLen,
		EmbeddingSize: cfg.Embedding.Size,
	})
	if err != nil {
		return err
	}

	batch, err := loader.Next()
	if err != nil {
		return fmt.Errorf("retrieve train batch: %w", err)
	}
	slog.Info("retrieved train batch",
		"train_batches", loader.Size(),
		"shape", batch.Shape(),
		"labels", len(batch.Labels))
	return nil
}
