package datasets

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// EmbeddedBatch stores one embedded batch in a flat contiguous buffer laid
// out as [SequenceLen][BatchSize][EmbeddingSize]. Positions past the end of
// a sentence are zero.
type EmbeddedBatch struct {
	Data          []float32
	Labels        []int32
	SequenceLen   int
	BatchSize     int
	EmbeddingSize int
}

func newEmbeddedBatch(cfg LoaderConfig) *EmbeddedBatch {
	return &EmbeddedBatch{
		Data:          make([]float32, cfg.SequenceLen*cfg.BatchSize*cfg.EmbeddingSize),
		Labels:        make([]int32, cfg.BatchSize),
		SequenceLen:   cfg.SequenceLen,
		BatchSize:     cfg.BatchSize,
		EmbeddingSize: cfg.EmbeddingSize,
	}
}

// Shape returns the tensor dimensions [sequence, batch, embedding].
func (b *EmbeddedBatch) Shape() []int {
	return []int{b.SequenceLen, b.BatchSize, b.EmbeddingSize}
}

// Vector returns the embedding slot for word position pos of sentence s.
// The slice aliases Data.
func (b *EmbeddedBatch) Vector(pos, s int) []float32 {
	start := (pos*b.BatchSize + s) * b.EmbeddingSize
	return b.Data[start : start+b.EmbeddingSize]
}

// ToGomlxTensors converts the batch to a rank 3 float32 input tensor and a
// rank 1 int32 label tensor. Go slices cannot describe zero sized
// dimensions, so an empty batch is an error.
func (b *EmbeddedBatch) ToGomlxTensors() (*tensors.Tensor, *tensors.Tensor, error) {
	if b.SequenceLen == 0 || b.BatchSize == 0 || b.EmbeddingSize == 0 {
		return nil, nil, fmt.Errorf("cannot convert empty batch of shape %v to tensors", b.Shape())
	}
	// Reshape flat buffer into 3D slices
	inputs := make([][][]float32, b.SequenceLen)
	for p := range b.SequenceLen {
		inputs[p] = make([][]float32, b.BatchSize)
		for s := range b.BatchSize {
			inputs[p][s] = b.Vector(p, s)
		}
	}
	inT := tensors.FromAnyValue(inputs)
	labT := tensors.FromAnyValue(b.Labels)
	return inT, labT, nil
}
