package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Noofbiz/tweetBatch/config"
	"github.com/Noofbiz/tweetBatch/datasets"
	"github.com/Noofbiz/tweetBatch/textprep"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report sentence lengths and class counts, and plot a length histogram",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	positives, negatives, err := loadTexts(cfg)
	if err != nil {
		return err
	}
	all := append(append([]string{}, positives...), negatives...)
	longest, mean := textprep.LengthStats(all)
	slog.Info("sentence lengths",
		"texts", len(all),
		"max_words", longest,
		"mean_words", mean,
		"sequence_len", cfg.Batch.SequenceLen)

	logCrowdFlowerCounts(cfg)

	out := filepath.Join(cfg.Stats.OutDir, "sentence_lengths.png")
	if err := writeLengthHistogram(out, textprep.WordCounts(all), cfg.Stats.Bins, cfg.Batch.SequenceLen); err != nil {
		return err
	}
	slog.Info("wrote histogram", "path", out)
	return nil
}

// logCrowdFlowerCounts logs per-class counts when the CrowdFlower corpus is
// present. The corpus is optional.
func logCrowdFlowerCounts(cfg *config.Config) {
	if _, err := os.Stat(cfg.Data.CrowdFlowerPath); err != nil {
		slog.Debug("crowdflower corpus not found", "path", cfg.Data.CrowdFlowerPath)
		return
	}
	corpus, err := datasets.LoadCrowdFlower(cfg.Data.CrowdFlowerPath, textprep.TweetNormalizer{})
	if err != nil {
		slog.Warn("failed to load crowdflower corpus", "error", err)
		return
	}
	for _, class := range datasets.EmotionClasses {
		slog.Info("crowdflower class", "class", class, "texts", len(corpus[class]))
	}
}

// writeLengthHistogram plots the distribution of word counts with a marker
// line at the configured sequence length.
func writeLengthHistogram(path string, counts []int, bins, sequenceLen int) error {
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	if len(values) == 0 {
		values = plotter.Values{0}
	}

	p := plot.New()
	p.Title.Text = "Words per tweet"
	p.X.Label.Text = "words"
	p.Y.Label.Text = "tweets"

	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	p.Add(hist)

	_, _, _, ymax := hist.DataRange()
	cut, err := plotter.NewLine(plotter.XYs{
		{X: float64(sequenceLen), Y: 0},
		{X: float64(sequenceLen), Y: ymax},
	})
	if err != nil {
		return err
	}
	cut.Width = vg.Points(1.2)
	p.Add(cut)
	p.Legend.Add("sequence_len", cut)
	p.Add(plotter.NewGrid())

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
