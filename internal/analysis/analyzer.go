package analysis

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// SymbolCounts holds the character counts of a document.
type SymbolCounts struct {
	WithSpaces    int `json:"with_spaces"`
	WithoutSpaces int `json:"without_spaces"`
}

// Analyzer computes statistics over a single in-memory document.
// The document is tokenized once in New; every query is read-only, so an
// Analyzer may be shared between goroutines.
type Analyzer struct {
	text  string
	n     int
	words []string
}

// New validates text and tokenizes it.
//
// It returns a *ValidationError when text is not valid UTF-8 or is blank, and
// an *AnalysisError when text contains no word characters at all.
func New(text string, n int) (*Analyzer, error) {
	if !utf8.ValidString(text) {
		return nil, &ValidationError{Field: "text", Msg: "Text must be a valid UTF-8 string"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Value: text, Msg: "Text cannot be empty"}
	}

	words := Tokenize(text)
	if len(words) == 0 {
		return nil, &AnalysisError{Op: "tokenize", Msg: "No valid words found in text"}
	}

	return &Analyzer{text: text, n: n, words: words}, nil
}

// Text returns the analyzed document.
func (a *Analyzer) Text() string { return a.text }

// N returns the top-N parameter the analyzer was built with.
func (a *Analyzer) N() int { return a.n }

// Words returns a copy of the token list in document order.
func (a *Analyzer) Words() []string {
	out := make([]string, len(a.words))
	copy(out, a.words)
	return out
}

// SymbolCounts returns the number of characters with and without U+0020 spaces.
func (a *Analyzer) SymbolCounts() SymbolCounts {
	total := utf8.RuneCountInString(a.text)
	spaces := strings.Count(a.text, " ")
	return SymbolCounts{
		WithSpaces:    total,
		WithoutSpaces: total - spaces,
	}
}

// SentenceCount splits the text on '.', '!' and '?' and counts the segments
// that are not blank after trimming.
func (a *Analyzer) SentenceCount() (count int, err error) {
	defer recoverAnalysis("sentence_count", "Error counting sentences", &err)

	for _, segment := range strings.FieldsFunc(a.text, isSentenceTerminator) {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count, nil
}

// WordCount returns the number of tokens.
func (a *Analyzer) WordCount() int {
	return len(a.words)
}

// WordFrequencies returns the count of every distinct token in order of
// first appearance.
func (a *Analyzer) WordFrequencies() Frequencies {
	return countFirstSeen(a.words)
}

// MostFrequentWords returns the n tokens with the highest counts.
//
// Words with equal counts are ranked by their first appearance in the text,
// not alphabetically. The result holds fewer than n entries when the text has
// fewer than n distinct words. n may not exceed WordCount.
func (a *Analyzer) MostFrequentWords(n int) (Frequencies, error) {
	if err := ValidateN(n); err != nil {
		return nil, err
	}
	if n > len(a.words) {
		return nil, &ValidationError{
			Field: "n",
			Value: n,
			Limit: len(a.words),
			Msg:   fmt.Sprintf("N (%d) is larger than available words (%d)", n, len(a.words)),
		}
	}

	freqs := countFirstSeen(a.words)
	sortByCount(freqs)
	if len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs, nil
}

// AverageWordLength returns the mean token length in characters rounded to
// two decimals, with halves rounded up (1.125 -> 1.13). It returns 0 when
// there are no tokens.
func (a *Analyzer) AverageWordLength() float64 {
	if len(a.words) == 0 {
		return 0
	}
	var total int
	for _, w := range a.words {
		total += utf8.RuneCountInString(w)
	}
	return roundHundredths(total, len(a.words))
}

// roundHundredths returns num/den rounded half-up to two decimals using
// integer arithmetic, so decimal halves are not lost to binary floating point.
func roundHundredths(num, den int) float64 {
	hundredths := (200*num + den) / (2 * den)
	return float64(hundredths) / 100
}

// SymbolFrequency counts every character of the text, spaces and punctuation
// included, ordered by descending count and then ascending code point.
func (a *Analyzer) SymbolFrequency() (freqs Frequencies, err error) {
	defer recoverAnalysis("symbol_frequency", "Error calculating symbol frequency", &err)

	counts := make(map[rune]int)
	for _, r := range a.text {
		counts[r]++
	}

	runes := make([]rune, 0, len(counts))
	for r := range counts {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool {
		ci, cj := counts[runes[i]], counts[runes[j]]
		if ci != cj {
			return ci > cj
		}
		return runes[i] < runes[j]
	})

	freqs = make(Frequencies, len(runes))
	for i, r := range runes {
		freqs[i] = Frequency{Key: string(r), Count: counts[r]}
	}
	return freqs, nil
}
