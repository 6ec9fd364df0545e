package datasets

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gomlx/gomlx/pkg/core/tensors"

	"github.com/Noofbiz/tweetBatch/embedding"
)

// ErrEmptyLoader is returned when a batch is requested from a loader that
// holds no batches.
var ErrEmptyLoader = errors.New("datasets: loader has no batches")

const (
	DefaultBatchSize     = 64
	DefaultSequenceLen   = 30
	DefaultEmbeddingSize = 400
)

// LoaderConfig fixes the shape of the batches a Loader produces. Zero fields
// take defaults; a zero EmbeddingSize takes the lookup's dimension.
type LoaderConfig struct {
	BatchSize     int
	SequenceLen   int
	EmbeddingSize int
}

// Loader embeds raw batches on demand. The raw batch list is never modified.
//
// Next advances a cursor owned by the loader and is meant for a single
// consumer. Independent consumers should each take their own Cycle.
type Loader struct {
	batches []RawBatch
	lookup  embedding.Lookup
	cfg     LoaderConfig
	cursor  Cycle
	yielded int
}

// NewLoader creates a loader over batches using lookup for word vectors.
func NewLoader(batches []RawBatch, lookup embedding.Lookup, cfg LoaderConfig) (*Loader, error) {
	if lookup == nil {
		return nil, errors.New("embedding lookup cannot be nil")
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.SequenceLen == 0 {
		cfg.SequenceLen = DefaultSequenceLen
	}
	if cfg.EmbeddingSize == 0 {
		cfg.EmbeddingSize = lookup.Dim()
	}
	if cfg.BatchSize < 0 || cfg.SequenceLen < 0 {
		return nil, fmt.Errorf("invalid loader shape: batch=%d sequence=%d", cfg.BatchSize, cfg.SequenceLen)
	}
	if cfg.EmbeddingSize != lookup.Dim() {
		return nil, fmt.Errorf("%w: loader wants %d, lookup has %d",
			embedding.ErrDimension, cfg.EmbeddingSize, lookup.Dim())
	}

	l := &Loader{
		batches: batches,
		lookup:  lookup,
		cfg:     cfg,
	}
	l.cursor = l.Cycle()
	return l, nil
}

// Size returns the number of batches held.
func (l *Loader) Size() int {
	return len(l.batches)
}

// Len is an alias of Size.
func (l *Loader) Len() int {
	return l.Size()
}

// Config returns the effective batch shape.
func (l *Loader) Config() LoaderConfig {
	return l.cfg
}

// Next embeds the batch at the loader's cursor and advances it, wrapping to
// the first batch after the last.
func (l *Loader) Next() (*EmbeddedBatch, error) {
	return l.cursor.Next()
}

// Cycle returns a fresh iterator positioned at the first batch.
func (l *Loader) Cycle() Cycle {
	return Cycle{loader: l}
}

// Batch embeds batch i without touching any cursor.
func (l *Loader) Batch(i int) (*EmbeddedBatch, error) {
	if i < 0 || i >= len(l.batches) {
		return nil, fmt.Errorf("batch index %d out of range [0, %d)", i, len(l.batches))
	}
	raw := l.batches[i]

	b := newEmbeddedBatch(l.cfg)
	copyLabels(b.Labels, raw.Labels)

	for s, sentence := range raw.Inputs[:min(len(raw.Inputs), l.cfg.BatchSize)] {
		words := strings.Fields(sentence)
		for p := range min(len(words), l.cfg.SequenceLen) {
			vec := l.lookup.Vector(words[p])
			if len(vec) != l.cfg.EmbeddingSize {
				return nil, fmt.Errorf("%w: %q has %d values, want %d",
					embedding.ErrDimension, words[p], len(vec), l.cfg.EmbeddingSize)
			}
			copy(b.Vector(p, s), vec)
		}
	}
	return b, nil
}

func copyLabels(dst []int32, src []int) {
	for i := range min(len(dst), len(src)) {
		dst[i] = int32(src[i])
	}
}

// Name implements Dataset.
func (l *Loader) Name() string {
	return "TweetBatchLoader"
}

// Yield implements Dataset. It returns io.EOF once every batch has been
// yielded since the last Reset. Next is unaffected and keeps cycling.
func (l *Loader) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if len(l.batches) > 0 && l.yielded >= len(l.batches) {
		return nil, nil, nil, io.EOF
	}
	b, err := l.Next()
	if err != nil {
		return nil, nil, nil, err
	}
	l.yielded++
	in, la, err := b.ToGomlxTensors()
	if err != nil {
		return nil, nil, nil, err
	}
	return nil, []*tensors.Tensor{in}, []*tensors.Tensor{la}, nil
}

// Reset implements Dataset by rewinding the loader's cursor and starting a
// new epoch.
func (l *Loader) Reset() {
	l.cursor = l.Cycle()
	l.yielded = 0
}

// Cycle iterates over a loader's batches in order, wrapping around forever.
// A Cycle owns its position: copying a Cycle forks it.
type Cycle struct {
	loader *Loader
	pos    int
}

// Position returns the index of the batch the next call to Next embeds.
func (c Cycle) Position() int {
	return c.pos
}

// Next embeds the batch at the cycle position and advances the position.
func (c *Cycle) Next() (*EmbeddedBatch, error) {
	if c.loader == nil || len(c.loader.batches) == 0 {
		return nil, ErrEmptyLoader
	}
	i := c.pos
	c.pos = (c.pos + 1) % len(c.loader.batches)
	return c.loader.Batch(i)
}
