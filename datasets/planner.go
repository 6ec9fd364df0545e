package datasets

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrBatchSize is returned for a batch size that is not positive and even.
var ErrBatchSize = errors.New("datasets: batch size must be positive and even")

// RawBatch is one batch of unembedded texts. The first half of Inputs are
// positives labeled 1, the second half negatives labeled 0.
type RawBatch struct {
	Inputs []string
	Labels []int
}

// Balance truncates the longer list so both have the length of the shorter
// one. The results are prefixes of the inputs, clipped to their length so an
// append to either never writes into the caller's backing array.
func Balance(positives, negatives []string) ([]string, []string) {
	n := min(len(positives), len(negatives))
	return slices.Clip(positives[:n]), slices.Clip(negatives[:n])
}

// BuildBatches slices positives and negatives into batches of batchSize.
//
// The number of batches is (len(positives)+len(negatives))/batchSize and
// batch i takes [i*half, i*half+half) from each list, half = batchSize/2.
// Bounds past the end of a list are clamped, so unbalanced inputs can yield
// short tail batches; labels are always half ones followed by half zeros.
func BuildBatches(positives, negatives []string, batchSize int) ([]RawBatch, error) {
	if batchSize <= 0 || batchSize%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBatchSize, batchSize)
	}
	half := batchSize / 2
	numBatches := (len(positives) + len(negatives)) / batchSize

	batches := make([]RawBatch, numBatches)
	for i := range numBatches {
		lo, hi := i*half, i*half+half

		inputs := make([]string, 0, batchSize)
		inputs = append(inputs, window(positives, lo, hi)...)
		inputs = append(inputs, window(negatives, lo, hi)...)

		labels := make([]int, batchSize)
		for j := range half {
			labels[j] = 1
		}
		batches[i] = RawBatch{Inputs: inputs, Labels: labels}
	}
	return batches, nil
}

// Split partitions batches contiguously: the first trainCount go to train,
// the next valCount to val and the rest to test. Counts past the end simply
// produce shorter or empty sets.
func Split(batches []RawBatch, trainCount, valCount int) (train, val, test []RawBatch) {
	n := len(batches)
	trainEnd := clamp(trainCount, 0, n)
	valEnd := clamp(trainCount+valCount, trainEnd, n)
	return batches[:trainEnd], batches[trainEnd:valEnd], batches[valEnd:]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// PlanConfig controls PlanBatches.
type PlanConfig struct {
	BatchSize    int
	TrainBatches int
	ValBatches   int
}

// DefaultPlanConfig matches the sizes the classifier was tuned with.
var DefaultPlanConfig = PlanConfig{
	BatchSize:    64,
	TrainBatches: 190,
	ValBatches:   3000,
}

// Splits holds the train, validation and test batch sets.
type Splits struct {
	Train []RawBatch
	Val   []RawBatch
	Test  []RawBatch
}

// Total returns the number of batches across all splits.
func (s Splits) Total() int {
	return len(s.Train) + len(s.Val) + len(s.Test)
}

// PlanBatches balances the two classes, builds batches and splits them.
func PlanBatches(positives, negatives []string, cfg PlanConfig) (Splits, error) {
	positives, negatives = Balance(positives, negatives)
	slog.Info("balanced data", "positives", len(positives), "negatives", len(negatives))

	batches, err := BuildBatches(positives, negatives, cfg.BatchSize)
	if err != nil {
		return Splits{}, err
	}
	train, val, test := Split(batches, cfg.TrainBatches, cfg.ValBatches)
	slog.Info("planned batches",
		"batches", len(batches),
		"train", len(train),
		"val", len(val),
		"test", len(test))

	return Splits{Train: train, Val: val, Test: test}, nil
}
