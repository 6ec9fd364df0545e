package datasets

import (
	"errors"
	"fmt"
	"os"

	"github.com/Noofbiz/tweetBatch/textprep"
)

// ErrMalformedRow is returned when a CSV row has fewer columns than the
// layout requires.
var ErrMalformedRow = errors.New("datasets: malformed row")

// Class is a canonical emotion class.
type Class string

const (
	Happiness Class = "happiness"
	Anger     Class = "anger"
	Sadness   Class = "sadness"
	Neutral   Class = "neutral"
)

// EmotionClasses is the closed set of classes a LabeledCorpus may hold.
var EmotionClasses = []Class{Happiness, Anger, Sadness, Neutral}

// CrowdFlowerLabels folds the CrowdFlower emotion labels into EmotionClasses.
// Labels missing from the map (worry, love, surprise, ...) are dropped.
var CrowdFlowerLabels = map[string]Class{
	"enthusiasm": Happiness,
	"happiness":  Happiness,
	"fun":        Happiness,
	"sadness":    Sadness,
	"anger":      Anger,
	"hate":       Anger,
	"neutral":    Neutral,
}

// LabeledCorpus maps each class to its texts in source order.
type LabeledCorpus map[Class][]string

// Len returns the total number of texts across classes.
func (c LabeledCorpus) Len() int {
	n := 0
	for _, texts := range c {
		n += len(texts)
	}
	return n
}

// CSVLayout describes where the label and the text live in a row. The text
// runs from TextColumn to the end of the row, since tweets may contain the
// delimiter themselves.
type CSVLayout struct {
	LabelColumn int
	TextColumn  int
}

func (l CSVLayout) minColumns() int {
	return max(l.LabelColumn, l.TextColumn) + 1
}

// CrowdFlowerLayout is tweet_id, sentiment, author, content.
var CrowdFlowerLayout = CSVLayout{LabelColumn: 1, TextColumn: 3}

// Sentiment140Layout is polarity, id, date, query, user, text.
var Sentiment140Layout = CSVLayout{LabelColumn: 0, TextColumn: 5}

// LoadLabeledCSV reads path and buckets each row's text by its mapped class.
// Each physical line is one row split on commas; quotes are not field
// delimiters, they are only stripped from the ends of the label and text.
// Every class in labels gets an entry, even if empty. Rows whose label is not
// in labels are skipped. Texts are run through prep when it is non-nil.
func LoadLabeledCSV(path string, layout CSVLayout, labels map[string]Class, prep textprep.Preprocessor) (LabeledCorpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV %s: %w", path, err)
	}
	defer file.Close()

	corpus := make(LabeledCorpus)
	for _, class := range labels {
		if _, ok := corpus[class]; !ok {
			corpus[class] = []string{}
		}
	}

	err = readRows(file, func(line int, record []string) error {
		if len(record) < layout.minColumns() {
			return fmt.Errorf("%w: line %d has %d columns, need %d",
				ErrMalformedRow, line, len(record), layout.minColumns())
		}

		class, ok := labels[stripQuotes(record[layout.LabelColumn])]
		if !ok {
			return nil
		}
		text := stripQuotes(joinTail(record, layout.TextColumn))
		if prep != nil {
			text = prep.Preprocess(text)
		}
		corpus[class] = append(corpus[class], text)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return corpus, nil
}

// LoadCrowdFlower loads the CrowdFlower emotion corpus into the four
// EmotionClasses.
func LoadCrowdFlower(path string, prep textprep.Preprocessor) (LabeledCorpus, error) {
	return LoadLabeledCSV(path, CrowdFlowerLayout, CrowdFlowerLabels, prep)
}
