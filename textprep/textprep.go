// Package textprep normalizes raw tweet text into space separated tokens
// suitable for word-embedding lookup.
package textprep

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Preprocessor cleans a single raw text into a normalized token string.
type Preprocessor interface {
	Preprocess(text string) string
}

// Func adapts a plain function to the Preprocessor interface.
type Func func(text string) string

// Preprocess calls f(text).
func (f Func) Preprocess(text string) string {
	return f(text)
}

// Identity leaves text unchanged.
var Identity Preprocessor = Func(func(text string) string { return text })

// TweetNormalizer is the default tweet cleaner. The zero value drops URLs and
// user mentions, keeps hashtag words without the '#', lower-cases everything
// and removes punctuation other than apostrophes inside words.
type TweetNormalizer struct {
	// KeepMentions retains "@user" tokens (without the '@').
	KeepMentions bool
	// KeepURLs retains links as the literal token "url".
	KeepURLs bool
}

// Preprocess implements Preprocessor.
func (t TweetNormalizer) Preprocess(text string) string {
	text = norm.NFKC.String(text)
	text = cases.Lower(language.Und).String(text)

	out := make([]string, 0, 16)
	for _, tok := range strings.Fields(text) {
		switch {
		case isURL(tok):
			if t.KeepURLs {
				out = append(out, "url")
			}
			continue
		case strings.HasPrefix(tok, "@"):
			if !t.KeepMentions {
				continue
			}
			tok = tok[1:]
		case strings.HasPrefix(tok, "#"):
			tok = tok[1:]
		}
		out = append(out, splitWord(tok)...)
	}
	return strings.Join(out, " ")
}

func isURL(tok string) bool {
	return strings.HasPrefix(tok, "http://") ||
		strings.HasPrefix(tok, "https://") ||
		strings.HasPrefix(tok, "www.")
}

// splitWord breaks tok on anything that is not a letter, digit or an
// apostrophe between two letters.
func splitWord(tok string) []string {
	runes := []rune(tok)
	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case (r == '\'' || r == '’') && i > 0 && i < len(runes)-1 &&
			unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1]):
			b.WriteRune('\'')
		default:
			flush()
		}
	}
	flush()
	return words
}

// PreprocessMany applies p to every text, preserving order. A nil p returns
// a copy of texts.
func PreprocessMany(p Preprocessor, texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		if p == nil {
			out[i] = text
			continue
		}
		out[i] = p.Preprocess(text)
	}
	return out
}

// WordCounts returns the number of whitespace separated words of each text.
func WordCounts(texts []string) []int {
	counts := make([]int, len(texts))
	for i, text := range texts {
		counts[i] = len(strings.Fields(text))
	}
	return counts
}

// LengthStats returns the longest and mean word count of texts.
func LengthStats(texts []string) (longest int, mean float64) {
	if len(texts) == 0 {
		return 0, 0
	}
	total := 0
	for _, n := range WordCounts(texts) {
		total += n
		if n > longest {
			longest = n
		}
	}
	return longest, float64(total) / float64(len(texts))
}
