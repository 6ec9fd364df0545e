package datasets

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Noofbiz/tweetBatch/textprep"
)

func TestLoadCachedOrBuild_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	paths := CachePaths{
		Positives: filepath.Join(tmp, "data", "positives.txt"),
		Negatives: filepath.Join(tmp, "data", "negatives.txt"),
	}
	wantPos := []string{"good day", "love it", "yay"}
	wantNeg := []string{"bad day", "hate it"}

	calls := 0
	build := func() ([]string, []string, error) {
		calls++
		return wantPos, wantNeg, nil
	}

	pos, neg, err := LoadCachedOrBuild(paths, build)
	if err != nil {
		t.Fatalf("LoadCachedOrBuild (miss) failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected build to be called once, got %d", calls)
	}
	if !reflect.DeepEqual(pos, wantPos) || !reflect.DeepEqual(neg, wantNeg) {
		t.Fatalf("miss path returned pos=%q neg=%q", pos, neg)
	}

	data, err := os.ReadFile(paths.Negatives)
	if err != nil {
		t.Fatalf("negatives cache not written: %v", err)
	}
	if string(data) != "bad day\nhate it" {
		t.Fatalf("unexpected negatives cache content %q", data)
	}
	leftovers, err := filepath.Glob(filepath.Join(tmp, "data", "*.tmp.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp cache files left behind: %v", leftovers)
	}

	pos, neg, err = LoadCachedOrBuild(paths, func() ([]string, []string, error) {
		t.Fatalf("build must not run on a cache hit")
		return nil, nil, nil
	})
	if err != nil {
		t.Fatalf("LoadCachedOrBuild (hit) failed: %v", err)
	}
	if !reflect.DeepEqual(pos, wantPos) || !reflect.DeepEqual(neg, wantNeg) {
		t.Fatalf("hit path returned pos=%q neg=%q", pos, neg)
	}
}

func TestLoadCachedOrBuild_PartialCacheRebuilds(t *testing.T) {
	tmp := t.TempDir()
	paths := CachePaths{
		Positives: filepath.Join(tmp, "positives.txt"),
		Negatives: filepath.Join(tmp, "negatives.txt"),
	}
	if err := os.WriteFile(paths.Positives, []byte("stale"), 0644); err != nil {
		t.Fatalf("write stale cache: %v", err)
	}

	pos, _, err := LoadCachedOrBuild(paths, func() ([]string, []string, error) {
		return []string{"fresh"}, []string{"neg"}, nil
	})
	if err != nil {
		t.Fatalf("LoadCachedOrBuild failed: %v", err)
	}
	if !reflect.DeepEqual(pos, []string{"fresh"}) {
		t.Fatalf("expected rebuilt positives, got %q", pos)
	}
	data, _ := os.ReadFile(paths.Positives)
	if string(data) != "fresh" {
		t.Fatalf("positives cache not overwritten: %q", data)
	}
}

func TestLoadCachedOrBuild_BuildError(t *testing.T) {
	tmp := t.TempDir()
	paths := CachePaths{
		Positives: filepath.Join(tmp, "positives.txt"),
		Negatives: filepath.Join(tmp, "negatives.txt"),
	}
	boom := errors.New("boom")
	if _, _, err := LoadCachedOrBuild(paths, func() ([]string, []string, error) {
		return nil, nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}
	if _, err := os.Stat(paths.Positives); !os.IsNotExist(err) {
		t.Fatalf("cache must not be written when build fails")
	}
}

func TestSentiment140Builder(t *testing.T) {
	tmp := t.TempDir()
	raw := filepath.Join(tmp, "training.csv")
	writeCSV(t, raw, "", []string{
		`"4","1","d","q","u","Great Game!! http://t.co/x"`,
		`"0","2","d","q","u","@bob Worst. Day."`,
	})
	paths := CachePaths{
		Positives: filepath.Join(tmp, "positives.txt"),
		Negatives: filepath.Join(tmp, "negatives.txt"),
	}

	pos, neg, err := LoadCachedOrBuild(paths, Sentiment140Builder(raw, textprep.TweetNormalizer{}))
	if err != nil {
		t.Fatalf("LoadCachedOrBuild failed: %v", err)
	}
	if !reflect.DeepEqual(pos, []string{"great game"}) {
		t.Fatalf("unexpected positives %q", pos)
	}
	if !reflect.DeepEqual(neg, []string{"worst day"}) {
		t.Fatalf("unexpected negatives %q", neg)
	}
}
