package embedding

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/Noofbiz/tweetBatch/internal/atomicfile"
)

const snapshotVersion = 1

// snapshotFormat is the on-disk layout of a table snapshot.
type snapshotFormat struct {
	Version int
	Dim     int
	Words   []string
	Vectors [][]float32
}

// SaveSnapshot writes t to path using encoding/gob. The write is atomic:
// data goes to a temp file in the same directory which is then renamed.
func (t *Table) SaveSnapshot(path string) error {
	if path == "" {
		return fmt.Errorf("empty snapshot path")
	}

	words := t.Words()
	snap := snapshotFormat{
		Version: snapshotVersion,
		Dim:     t.dim,
		Words:   words,
		Vectors: make([][]float32, len(words)),
	}
	for i, w := range words {
		snap.Vectors[i] = t.vectors[w]
	}
	return atomicfile.WriteFile(path, func(w io.Writer) error {
		if err := gob.NewEncoder(w).Encode(&snap); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return nil
	})
}

// LoadSnapshot reads a table written by SaveSnapshot.
func LoadSnapshot(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer fh.Close()

	var snap snapshotFormat
	if err := gob.NewDecoder(fh).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: snapshot version mismatch: file=%d expected=%d", ErrFormat, snap.Version, snapshotVersion)
	}
	if len(snap.Words) != len(snap.Vectors) {
		return nil, fmt.Errorf("%w: snapshot has %d words and %d vectors", ErrFormat, len(snap.Words), len(snap.Vectors))
	}

	t := NewTable(snap.Dim)
	for i, w := range snap.Words {
		if err := t.Set(w, snap.Vectors[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}
