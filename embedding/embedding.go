// Package embedding provides word-to-vector lookup tables backed by
// pre-trained word2vec models.
package embedding

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDimension is returned when a vector does not match the table dimension.
	ErrDimension = errors.New("embedding: dimension mismatch")
	// ErrFormat is returned when a model file cannot be parsed.
	ErrFormat = errors.New("embedding: malformed model file")
)

// Lookup maps a token to a fixed-length vector. Unknown tokens must map to a
// deterministic default vector instead of failing. Callers must not modify
// the returned slice.
type Lookup interface {
	Dim() int
	Vector(word string) []float32
}

// Table is an in-memory embedding table. Unknown words map to the zero
// vector.
type Table struct {
	dim     int
	vectors map[string][]float32
	zero    []float32
}

var _ Lookup = (*Table)(nil)

// NewTable creates an empty table of the given dimension.
func NewTable(dim int) *Table {
	return &Table{
		dim:     dim,
		vectors: make(map[string][]float32),
		zero:    make([]float32, dim),
	}
}

// Dim returns the vector dimension.
func (t *Table) Dim() int {
	return t.dim
}

// Len returns the vocabulary size.
func (t *Table) Len() int {
	return len(t.vectors)
}

// Set stores vec for word, replacing any previous vector.
func (t *Table) Set(word string, vec []float32) error {
	if len(vec) != t.dim {
		return fmt.Errorf("%w: word %q has %d values, table has %d", ErrDimension, word, len(vec), t.dim)
	}
	t.vectors[word] = vec
	return nil
}

// Contains reports whether word has a stored vector.
func (t *Table) Contains(word string) bool {
	_, ok := t.vectors[word]
	return ok
}

// Vector returns the vector for word, or the zero vector if word is unknown.
func (t *Table) Vector(word string) []float32 {
	if v, ok := t.vectors[word]; ok {
		return v
	}
	return t.zero
}

// Words returns the vocabulary in sorted order.
func (t *Table) Words() []string {
	words := make([]string, 0, len(t.vectors))
	for w := range t.vectors {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Subset returns a new table holding only the given words that are present
// in t. Vectors are shared with t.
func (t *Table) Subset(words []string) *Table {
	sub := NewTable(t.dim)
	for _, w := range words {
		if v, ok := t.vectors[w]; ok {
			sub.vectors[w] = v
		}
	}
	return sub
}
