package datasets

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/Noofbiz/tweetBatch/textprep"
)

// LoadBinarySentimentCSV reads a Sentiment140 style file: a numeric polarity
// in column 0 and the tweet from column 5 on. Polarity 0 is negative, any
// other value positive. The file is decoded as Latin-1 and split on commas
// line by line; quote characters are stripped from both ends of the tweet.
func LoadBinarySentimentCSV(path string) (positives, negatives []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV %s: %w", path, err)
	}
	defer file.Close()

	layout := Sentiment140Layout
	err = readRows(charmap.ISO8859_1.NewDecoder().Reader(file), func(line int, record []string) error {
		if len(record) < layout.minColumns() {
			return fmt.Errorf("%w: line %d has %d columns, need %d",
				ErrMalformedRow, line, len(record), layout.minColumns())
		}

		raw := strings.TrimSpace(strings.Trim(stripQuotes(record[layout.LabelColumn]), "'"))
		polarity, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("failed to parse polarity on line %d: %w", line, err)
		}

		tweet := stripQuotes(joinTail(record, layout.TextColumn))
		if polarity == 0 {
			negatives = append(negatives, tweet)
		} else {
			positives = append(positives, tweet)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return positives, negatives, nil
}

// Sentiment140Builder returns a BuildFunc that loads the raw Sentiment140
// file at path and preprocesses both classes with prep.
func Sentiment140Builder(path string, prep textprep.Preprocessor) BuildFunc {
	return func() ([]string, []string, error) {
		slog.Info("loading raw sentiment140 data and running preprocessing", "path", path)
		positives, negatives, err := LoadBinarySentimentCSV(path)
		if err != nil {
			return nil, nil, err
		}
		return textprep.PreprocessMany(prep, positives), textprep.PreprocessMany(prep, negatives), nil
	}
}
