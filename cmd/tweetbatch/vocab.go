package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Noofbiz/tweetBatch/embedding"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Write an embedding snapshot restricted to the corpus vocabulary",
	Long: `vocab loads the full word2vec model, keeps only the words that occur in
the preprocessed corpus and writes them as a gob snapshot to
embedding.mini_path. Point embedding.path at the snapshot to start up faster.`,
	RunE: runVocab,
}

func runVocab(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	positives, negatives, err := loadTexts(cfg)
	if err != nil {
		return err
	}
	words := vocabulary(positives, negatives)

	table, err := embedding.Load(cfg.Embedding.Path, embedding.Format(cfg.Embedding.Format))
	if err != nil {
		return err
	}
	mini := table.Subset(words)
	if err := mini.SaveSnapshot(cfg.Embedding.MiniPath); err != nil {
		return err
	}
	slog.Info("wrote mini embedding table",
		"path", cfg.Embedding.MiniPath,
		"corpus_words", len(words),
		"covered", mini.Len(),
		"model_words", table.Len())
	return nil
}

// vocabulary returns the distinct words of all texts in first-seen order.
func vocabulary(lists ...[]string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, texts := range lists {
		for _, text := range texts {
			for _, w := range strings.Fields(text) {
				if !seen[w] {
					seen[w] = true
					words = append(words, w)
				}
			}
		}
	}
	return words
}
