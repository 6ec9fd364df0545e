package datasets

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Noofbiz/tweetBatch/internal/atomicfile"
)

// CachePaths locates the preprocessed positive and negative text caches.
type CachePaths struct {
	Positives string
	Negatives string
}

// BuildFunc produces the preprocessed positive and negative texts on a cache
// miss.
type BuildFunc func() (positives, negatives []string, err error)

// exists reports whether both cache files are present.
func (p CachePaths) exists() bool {
	for _, path := range []string{p.Positives, p.Negatives} {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// LoadCachedOrBuild returns the cached texts when both cache files exist.
// Otherwise it calls build and writes both results, one text per line,
// before returning them. Texts containing newlines do not survive the round
// trip.
func LoadCachedOrBuild(paths CachePaths, build BuildFunc) (positives, negatives []string, err error) {
	if paths.exists() {
		slog.Info("loading cached positive and negative data",
			"positives", paths.Positives, "negatives", paths.Negatives)
		if negatives, err = readLines(paths.Negatives); err != nil {
			return nil, nil, err
		}
		if positives, err = readLines(paths.Positives); err != nil {
			return nil, nil, err
		}
		return positives, negatives, nil
	}

	positives, negatives, err = build()
	if err != nil {
		return nil, nil, fmt.Errorf("build corpus: %w", err)
	}
	if err := writeLines(paths.Negatives, negatives); err != nil {
		return nil, nil, err
	}
	if err := writeLines(paths.Positives, positives); err != nil {
		return nil, nil, err
	}
	slog.Info("wrote preprocessed cache",
		"positives", len(positives), "negatives", len(negatives))
	return positives, negatives, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}

// writeLines writes lines joined by newlines. The write is atomic so a
// failed run never leaves a half cache.
func writeLines(path string, lines []string) error {
	err := atomicfile.WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, strings.Join(lines, "\n"))
		return err
	})
	if err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}
	return nil
}
