package datasets

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/Noofbiz/tweetBatch/textprep"
)

// writeCSV writes a CSV file with the given header and rows to path. An empty
// header is omitted.
func writeCSV(t *testing.T, path, header string, rows []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create csv %s: %v", path, err)
	}
	defer f.Close()

	if header != "" {
		if _, err := f.WriteString(header + "\n"); err != nil {
			t.Fatalf("failed to write header: %v", err)
		}
	}
	for _, r := range rows {
		if _, err := f.WriteString(r + "\n"); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
}

// TestLoadCrowdFlower verifies label folding, dropped labels, header
// handling and reassembly of texts that contain the delimiter.
func TestLoadCrowdFlower(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "crowdflower.csv")
	writeCSV(t, path, "tweet_id,sentiment,author,content", []string{
		`1,"happiness","alice","I love this, really"`,
		`2,fun,bob,so fun, wow`,
		`3,worry,carol,meh`,
		`4,hate,dave,ugh`,
		`5,"neutral",erin,"ok"`,
	})

	corpus, err := LoadCrowdFlower(path, nil)
	if err != nil {
		t.Fatalf("LoadCrowdFlower failed: %v", err)
	}

	if got := corpus[Happiness]; !reflect.DeepEqual(got, []string{"I love this, really", "so fun, wow"}) {
		t.Fatalf("unexpected happiness texts: %q", got)
	}
	if got := corpus[Anger]; !reflect.DeepEqual(got, []string{"ugh"}) {
		t.Fatalf("unexpected anger texts: %q", got)
	}
	if got := corpus[Neutral]; !reflect.DeepEqual(got, []string{"ok"}) {
		t.Fatalf("unexpected neutral texts: %q", got)
	}
	if got, ok := corpus[Sadness]; !ok || len(got) != 0 {
		t.Fatalf("expected empty sadness bucket, got %q (present=%v)", got, ok)
	}
	if corpus.Len() != 4 {
		t.Fatalf("expected 4 texts, got %d", corpus.Len())
	}
	for class := range corpus {
		found := false
		for _, c := range EmotionClasses {
			if c == class {
				found = true
			}
		}
		if !found {
			t.Fatalf("class %q outside EmotionClasses", class)
		}
	}
}

// TestLoadCrowdFlower_LineSplitting pins that each physical line is one row
// split on commas, with quotes only trimmed from the ends of the text.
func TestLoadCrowdFlower_LineSplitting(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		want LabeledCorpus
	}{
		{
			name: "unbalanced leading quote",
			rows: []string{
				`1,happiness,alice,"oops no close`,
				`2,sadness,bob,rainy`,
				`3,anger,carol,grr`,
			},
			want: LabeledCorpus{
				Happiness: {"oops no close"},
				Sadness:   {"rainy"},
				Anger:     {"grr"},
			},
		},
		{
			name: "inner quote before comma",
			rows: []string{`1,happiness,alice,"she said "hi", then left"`},
			want: LabeledCorpus{Happiness: {`she said "hi", then left`}},
		},
		{
			name: "doubled quotes",
			rows: []string{`1,anger,alice,"say ""yes"" now"`},
			want: LabeledCorpus{Anger: {`say ""yes"" now`}},
		},
		{
			name: "carriage return line ending",
			rows: []string{"1,sadness,bob,rainy\r", "2,neutral,erin,ok\r"},
			want: LabeledCorpus{Sadness: {"rainy"}, Neutral: {"ok"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "crowdflower.csv")
			writeCSV(t, path, "", tc.rows)

			corpus, err := LoadCrowdFlower(path, nil)
			if err != nil {
				t.Fatalf("LoadCrowdFlower failed: %v", err)
			}
			if corpus.Len() != len(tc.rows) {
				t.Fatalf("expected %d texts, got %d: %q", len(tc.rows), corpus.Len(), corpus)
			}
			for _, class := range EmotionClasses {
				if got := corpus[class]; !slices.Equal(got, tc.want[class]) {
					t.Fatalf("class %s: got %q, want %q", class, got, tc.want[class])
				}
			}
		})
	}
}

func TestLoadLabeledCSV_Preprocesses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cf.csv")
	writeCSV(t, path, "", []string{`1,sadness,x,"Rainy DAY @bob :("`})

	corpus, err := LoadLabeledCSV(path, CrowdFlowerLayout, CrowdFlowerLabels, textprep.TweetNormalizer{})
	if err != nil {
		t.Fatalf("LoadLabeledCSV failed: %v", err)
	}
	if got := corpus[Sadness]; !reflect.DeepEqual(got, []string{"rainy day"}) {
		t.Fatalf("unexpected preprocessed texts: %q", got)
	}
}

func TestLoadLabeledCSV_Errors(t *testing.T) {
	tmp := t.TempDir()

	if _, err := LoadCrowdFlower(filepath.Join(tmp, "missing.csv"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}

	short := filepath.Join(tmp, "short.csv")
	writeCSV(t, short, "", []string{"1,happiness"})
	if _, err := LoadCrowdFlower(short, nil); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestLoadBinarySentimentCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s140.csv")
	writeCSV(t, path, "", []string{
		`"0","1","Mon Apr 06","NO_QUERY","user1","sad day, really"`,
		`"4","2","Mon Apr 06","NO_QUERY","user2","yay"`,
		"'0',3,d,q,u,caf\xe9",
	})

	positives, negatives, err := LoadBinarySentimentCSV(path)
	if err != nil {
		t.Fatalf("LoadBinarySentimentCSV failed: %v", err)
	}
	if !reflect.DeepEqual(positives, []string{"yay"}) {
		t.Fatalf("unexpected positives: %q", positives)
	}
	if !reflect.DeepEqual(negatives, []string{"sad day, really", "café"}) {
		t.Fatalf("unexpected negatives: %q", negatives)
	}
}

func TestLoadBinarySentimentCSV_LineSplitting(t *testing.T) {
	cases := []struct {
		name      string
		rows      []string
		positives []string
		negatives []string
	}{
		{
			name: "unbalanced leading quote",
			rows: []string{
				`"0","1","d","q","u","oops no close`,
				`"4","2","d","q","u","yay"`,
				`"0","3","d","q","u","meh"`,
			},
			positives: []string{"yay"},
			negatives: []string{"oops no close", "meh"},
		},
		{
			name:      "inner quote before comma",
			rows:      []string{`"4","1","d","q","u","she said "hi", then left"`},
			positives: []string{`she said "hi", then left`},
		},
		{
			name:      "doubled quotes",
			rows:      []string{`"0","1","d","q","u","say ""yes"" now"`},
			negatives: []string{`say ""yes"" now`},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "s140.csv")
			writeCSV(t, path, "", tc.rows)

			positives, negatives, err := LoadBinarySentimentCSV(path)
			if err != nil {
				t.Fatalf("LoadBinarySentimentCSV failed: %v", err)
			}
			if !slices.Equal(positives, tc.positives) {
				t.Fatalf("positives: got %q, want %q", positives, tc.positives)
			}
			if !slices.Equal(negatives, tc.negatives) {
				t.Fatalf("negatives: got %q, want %q", negatives, tc.negatives)
			}
		})
	}
}

func TestLoadBinarySentimentCSV_Errors(t *testing.T) {
	tmp := t.TempDir()

	bad := filepath.Join(tmp, "bad.csv")
	writeCSV(t, bad, "", []string{"x,1,d,q,u,text"})
	if _, _, err := LoadBinarySentimentCSV(bad); err == nil {
		t.Fatalf("expected error for non-numeric polarity")
	}

	short := filepath.Join(tmp, "short.csv")
	writeCSV(t, short, "", []string{"0,1,d"})
	if _, _, err := LoadBinarySentimentCSV(short); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}

	if _, _, err := LoadBinarySentimentCSV(filepath.Join(tmp, "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
