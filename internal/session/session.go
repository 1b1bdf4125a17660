// Package session runs complete analyses: it sources a document, analyzes
// it, persists the result and records the run.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"harshagw/textstats/internal/analysis"
	"harshagw/textstats/internal/config"
	"harshagw/textstats/internal/sink"
	"harshagw/textstats/internal/source"
	"harshagw/textstats/internal/store"
	"harshagw/textstats/internal/vocab"
)

// Report describes one completed analysis.
type Report struct {
	File           string
	N              int
	Encoding       string
	OutputPath     string
	VocabularyPath string
	RunID          uint64
	Result         *analysis.Result
}

// Session holds the collaborators shared by consecutive analyses.
type Session struct {
	cfg      *config.Config
	provider *source.Provider
	writer   *sink.Writer
	history  *store.History
	logger   *zap.Logger
}

// New prepares the output and data directories and opens the run history
// when it is enabled.
func New(cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		provider: source.NewProvider(cfg.Input.Encodings, cfg.Input.Suffixes, cfg.Input.MaxFileSize, logger),
		writer:   sink.NewWriter(logger),
		logger:   logger,
	}

	if cfg.History.Enabled {
		history, err := store.Open(cfg.HistoryPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		s.history = history
	}

	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// History returns the run history, or nil when it is disabled.
func (s *Session) History() *store.History { return s.history }

// Files lists the documents available in the input directory.
func (s *Session) Files() ([]string, error) {
	return s.provider.List(s.cfg.Paths.InputDir)
}

// Analyze runs the full pipeline for file. A bare file name is resolved in
// the input directory; anything containing a path separator is used as is.
// The context is checked between stages.
func (s *Session) Analyze(ctx context.Context, file string, n int) (*Report, error) {
	if err := s.ValidateN(n); err != nil {
		return nil, err
	}

	path, name := s.resolve(file)
	log := s.logger.With(zap.String("file", name), zap.Int("n", n))

	doc, err := s.provider.Read(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analyzer, err := analysis.New(doc.Text, n)
	if err != nil {
		return nil, err
	}
	result, err := analysis.NewFormatter(analyzer, n).Format()
	if err != nil {
		return nil, err
	}
	log.Debug("document analyzed",
		zap.String("encoding", doc.Encoding),
		zap.Int("words", result.WordCount))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		File:       name,
		N:          n,
		Encoding:   doc.Encoding,
		OutputPath: s.cfg.OutputPath(name),
		Result:     result,
	}
	if err := s.writer.Write(report.OutputPath, result); err != nil {
		return nil, err
	}

	if s.cfg.History.Vocabulary {
		vocabPath, err := vocab.Write(s.cfg.VocabularyDir(), name, analyzer.WordFrequencies())
		if err != nil {
			return nil, &source.FileError{Op: "save", Path: vocab.Path(s.cfg.VocabularyDir(), name), Msg: "Error saving vocabulary", Err: err}
		}
		report.VocabularyPath = vocabPath
	}

	if s.history != nil {
		id, err := s.history.Record(&store.Run{
			File:       name,
			N:          n,
			Encoding:   doc.Encoding,
			OutputPath: report.OutputPath,
			Result:     result,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		report.RunID = id
	}

	log.Info("analysis complete",
		zap.String("path", report.OutputPath),
		zap.Uint64("run_id", report.RunID))
	return report, nil
}

// ValidateN checks n against the analysis bounds and the configured maximum.
func (s *Session) ValidateN(n int) error {
	if err := analysis.ValidateN(n); err != nil {
		return err
	}
	if n > s.cfg.Analysis.MaxN {
		return &analysis.ValidationError{Field: "n", Value: n, Limit: s.cfg.Analysis.MaxN,
			Msg: fmt.Sprintf("N must be between %d and %d", analysis.MinN, s.cfg.Analysis.MaxN)}
	}
	return nil
}

// Vocabulary opens the vocabulary file of the last analysis of file.
func (s *Session) Vocabulary(file string) (*vocab.Vocabulary, error) {
	_, name := s.resolve(file)
	return vocab.Open(vocab.Path(s.cfg.VocabularyDir(), name))
}

// Close releases the run history.
func (s *Session) Close() error {
	if s.history == nil {
		return nil
	}
	return s.history.Close()
}

func (s *Session) resolve(file string) (path, name string) {
	if filepath.IsAbs(file) || strings.ContainsRune(file, filepath.Separator) || strings.ContainsRune(file, '/') {
		return file, filepath.Base(file)
	}
	return s.cfg.InputPath(file), file
}
