package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Result field names in their canonical output order.
const (
	KeyTotalSymbols      = "total_symbols"
	KeySentenceCount     = "sentence_count"
	KeyWordCount         = "word_count"
	KeyAverageWordLength = "average_word_length"
	KeySymbolsFrequency  = "symbols_frequency"

	mostFrequentSuffix = "-most-frequent-words"
)

// MostFrequentKey returns the result key of the top-n word table, e.g. "10-most-frequent-words".
func MostFrequentKey(n int) string {
	return strconv.Itoa(n) + mostFrequentSuffix
}

// Result is the analysis record of one document.
type Result struct {
	N                 int
	TotalSymbols      SymbolCounts
	SentenceCount     int
	WordCount         int
	MostFrequentWords Frequencies
	AverageWordLength float64
	SymbolsFrequency  Frequencies
}

// MarshalJSON writes the fields in a fixed order. The key of the top-n table
// embeds N.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	totals, err := json.Marshal(r.TotalSymbols)
	if err != nil {
		return nil, err
	}
	words, err := r.MostFrequentWords.MarshalJSON()
	if err != nil {
		return nil, err
	}
	symbols, err := r.SymbolsFrequency.MarshalJSON()
	if err != nil {
		return nil, err
	}

	fields := []struct {
		key   string
		value []byte
	}{
		{KeyTotalSymbols, totals},
		{KeySentenceCount, []byte(strconv.Itoa(r.SentenceCount))},
		{KeyWordCount, []byte(strconv.Itoa(r.WordCount))},
		{MostFrequentKey(r.N), words},
		{KeyAverageWordLength, formatFloat(r.AverageWordLength)},
		{KeySymbolsFrequency, symbols},
	}

	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", f.key)
		buf.Write(f.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Result
	required := []struct {
		key  string
		dest any
	}{
		{KeyTotalSymbols, &out.TotalSymbols},
		{KeySentenceCount, &out.SentenceCount},
		{KeyWordCount, &out.WordCount},
		{KeyAverageWordLength, &out.AverageWordLength},
		{KeySymbolsFrequency, &out.SymbolsFrequency},
	}
	for _, f := range required {
		value, ok := raw[f.key]
		if !ok {
			return fmt.Errorf("result: missing %q", f.key)
		}
		if err := json.Unmarshal(value, f.dest); err != nil {
			return fmt.Errorf("result: %s: %w", f.key, err)
		}
	}

	found := false
	for key, value := range raw {
		prefix, ok := strings.CutSuffix(key, mostFrequentSuffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(prefix)
		if err != nil {
			return fmt.Errorf("result: invalid key %q", key)
		}
		if err := json.Unmarshal(value, &out.MostFrequentWords); err != nil {
			return fmt.Errorf("result: %s: %w", key, err)
		}
		out.N = n
		found = true
		break
	}
	if !found {
		return fmt.Errorf("result: missing %q", "N"+mostFrequentSuffix)
	}

	*r = out
	return nil
}

// formatFloat renders v with the shortest exact representation and always
// keeps a fractional part, so 4 is written as 4.0.
func formatFloat(v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("0.0")
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return []byte(s)
}
