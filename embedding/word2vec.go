package embedding

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxDim bounds the vector width accepted from a model file, so a corrupt
// header cannot trigger a huge allocation.
const MaxDim = 1 << 16

// Format names a model file encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatBinary Format = "binary"
	FormatGob    Format = "gob"
)

// DetectFormat guesses the format of path from its extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		return FormatBinary
	case ".gob":
		return FormatGob
	default:
		return FormatText
	}
}

// Load reads a table from path. An empty format is detected from the file
// extension.
func Load(path string, format Format) (*Table, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	if format == FormatGob {
		return LoadSnapshot(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embedding model %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatText:
		return ReadText(f)
	case FormatBinary:
		return ReadBinary(f)
	default:
		return nil, fmt.Errorf("unknown embedding format %q", format)
	}
}

// ReadText parses the word2vec text format: an optional "count dim" header
// line followed by one "word v1 ... vD" line per entry.
func ReadText(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var t *Table
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if t == nil {
			dim, isHeader, err := parseHeader(fields)
			if err != nil {
				return nil, err
			}
			if isHeader {
				t = NewTable(dim)
				continue
			}
			if err := checkDim(len(fields) - 1); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			t = NewTable(len(fields) - 1)
		}
		if len(fields)-1 != t.dim {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrFormat, lineNo, len(fields)-1, t.dim)
		}
		vec := make([]float32, t.dim)
		for i, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, lineNo, err)
			}
			vec[i] = float32(v)
		}
		t.vectors[fields[0]] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read embedding model: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: empty model", ErrFormat)
	}
	return t, nil
}

// ReadBinary parses the word2vec binary format: a "count dim\n" header, then
// per entry the word terminated by a space followed by dim little-endian
// float32 values and an optional newline.
func ReadBinary(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrFormat, err)
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: bad header %q", ErrFormat, strings.TrimSpace(header))
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad word count: %v", ErrFormat, err)
	}
	dim, isHeader, err := parseHeader(fields)
	if err != nil {
		return nil, err
	}
	if !isHeader {
		return nil, fmt.Errorf("%w: bad header %q", ErrFormat, strings.TrimSpace(header))
	}

	t := NewTable(dim)
	for i := range count {
		word, err := br.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrFormat, i, err)
		}
		word = strings.TrimLeft(strings.TrimSuffix(word, " "), "\n")
		vec := make([]float32, dim)
		if err := binary.Read(br, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %v", ErrFormat, i, word, err)
		}
		t.vectors[word] = vec
	}
	return t, nil
}

// parseHeader recognizes a "count dim" header line. A header whose dim is
// out of range is reported as an ErrFormat error.
func parseHeader(fields []string) (dim int, isHeader bool, err error) {
	if len(fields) != 2 {
		return 0, false, nil
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return 0, false, nil
	}
	dim, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, false, nil
	}
	if err := checkDim(dim); err != nil {
		return 0, true, err
	}
	return dim, true, nil
}

func checkDim(dim int) error {
	if dim <= 0 || dim > MaxDim {
		return fmt.Errorf("%w: dimension %d outside [1, %d]", ErrFormat, dim, MaxDim)
	}
	return nil
}
