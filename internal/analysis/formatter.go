package analysis

// Formatter assembles the output of an Analyzer into a Result.
type Formatter struct {
	analyzer *Analyzer
	n        int
}

// NewFormatter returns a Formatter for analyzer. n is not re-validated; it must
// be the value the caller intends to query the analyzer with.
func NewFormatter(analyzer *Analyzer, n int) *Formatter {
	return &Formatter{analyzer: analyzer, n: n}
}

// Format runs every analyzer query once and returns the combined record.
// Analyzer errors are returned as is.
func (f *Formatter) Format() (*Result, error) {
	sentences, err := f.analyzer.SentenceCount()
	if err != nil {
		return nil, err
	}
	words, err := f.analyzer.MostFrequentWords(f.n)
	if err != nil {
		return nil, err
	}
	symbols, err := f.analyzer.SymbolFrequency()
	if err != nil {
		return nil, err
	}

	return &Result{
		N:                 f.n,
		TotalSymbols:      f.analyzer.SymbolCounts(),
		SentenceCount:     sentences,
		WordCount:         f.analyzer.WordCount(),
		MostFrequentWords: words,
		AverageWordLength: f.analyzer.AverageWordLength(),
		SymbolsFrequency:  symbols,
	}, nil
}
