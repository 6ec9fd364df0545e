package main

// Example command that loads the preprocessed Sentiment140 texts (building
// the cache from the raw CSV on first run), plans batches with the default
// sizes and embeds a single training batch.
//
// Usage:
//   go run ./datasets/example
//
// Note: this example expects the raw CSV and the word2vec model under data/.
// See cmd/tweetbatch for a configurable version.

import (
	"fmt"
	"log"

	"github.com/Noofbiz/tweetBatch/datasets"
	"github.com/Noofbiz/tweetBatch/embedding"
	"github.com/Noofbiz/tweetBatch/textprep"
)

func main() {
	paths := datasets.CachePaths{
		Positives: "data/positives.txt",
		Negatives: "data/negatives.txt",
	}
	rawPath := "data/training.1600000.processed.noemoticon.csv"
	positives, negatives, err := datasets.LoadCachedOrBuild(paths,
		datasets.Sentiment140Builder(rawPath, textprep.TweetNormalizer{}))
	if err != nil {
		log.Fatalf("failed to load sentiment data: %v", err)
	}
	fmt.Printf("Loaded %d positives and %d negatives\n", len(positives), len(negatives))

	splits, err := datasets.PlanBatches(positives, negatives, datasets.DefaultPlanConfig)
	if err != nil {
		log.Fatalf("failed to plan batches: %v", err)
	}
	fmt.Printf("Train/val/test batches: %d/%d/%d\n", len(splits.Train), len(splits.Val), len(splits.Test))

	table, err := embedding.Load("data/word2vec_twitter_model.bin", embedding.FormatBinary)
	if err != nil {
		log.Fatalf("failed to load embedding model: %v", err)
	}

	loader, err := datasets.NewLoader(splits.Train, table, datasets.LoaderConfig{})
	if err != nil {
		log.Fatalf("failed to create loader: %v", err)
	}

	batch, err := loader.Next()
	if err != nil {
		log.Fatalf("failed to retrieve batch: %v", err)
	}
	inT, laT, err := batch.ToGomlxTensors()
	if err != nil {
		log.Fatalf("failed to convert batch to gomlx tensors: %v", err)
	}
	fmt.Printf("Created tensors: input=%T label=%T\n", inT, laT)
	fmt.Printf("  Input shape: %v\n", batch.Shape())
	fmt.Printf("  Labels: %v\n", batch.Labels)
}
