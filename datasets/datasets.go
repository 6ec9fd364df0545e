package datasets

import "github.com/gomlx/gomlx/pkg/core/tensors"

// This package turns labeled tweet corpora into fixed-size word-embedding
// batches for a sentiment classifier.
//
// Layout and intended usage:
//
//	LoadCrowdFlower / LoadBinarySentimentCSV
//	  - parse the raw CSV sources into class buckets
//	LoadCachedOrBuild
//	  - keeps preprocessed positive/negative lists in two plain-text files
//	Balance / BuildBatches / Split (or PlanBatches for all three)
//	  - equal class counts, interleaved 1/0 labels, train/val/test ranges
//	Loader
//	  - cycles over the raw batches and embeds one batch per call into a
//	    [sequence][batch][embedding] float32 buffer, convertible to gomlx
//	    tensors.
//
// Nothing in this package is safe for concurrent use.

// Dataset is the gomlx train.Dataset shape. Loader implements it so it can
// be handed directly to gomlx training loops; Yield returns io.EOF at the end
// of each epoch and Reset starts the next one.
type Dataset interface {
	Name() string
	Yield() (any, []*tensors.Tensor, []*tensors.Tensor, error)
	Reset()
}

var _ Dataset = (*Loader)(nil)
