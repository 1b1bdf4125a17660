package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"harshagw/textstats/internal/analysis"
	"harshagw/textstats/internal/config"
	"harshagw/textstats/internal/sink"
	"harshagw/textstats/internal/source"
)

func newTestSession(t *testing.T, files map[string]string) *Session {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(root, "in")
	cfg.Paths.OutputDir = filepath.Join(root, "out")
	cfg.Paths.DataDir = filepath.Join(root, "data")

	if err := os.MkdirAll(cfg.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(cfg.Paths.InputDir, name), []byte(text), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	s, err := New(&cfg, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSession_Files(t *testing.T) {
	s := newTestSession(t, map[string]string{
		"b.txt":     "b",
		"a.txt":     "a",
		"notes.md":  "skip",
		"empty.txt": "",
	})

	files, err := s.Files()
	if err != nil {
		t.Fatalf("Files error: %v", err)
	}
	want := []string{"a.txt", "b.txt", "empty.txt"}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d]: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestSession_Analyze(t *testing.T) {
	s := newTestSession(t, map[string]string{
		"sample.txt": "Hello, world! This is a test. How are you? I am fine!",
	})

	report, err := s.Analyze(context.Background(), "sample.txt", 3)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if report.Result.WordCount != 12 || report.Result.SentenceCount != 4 {
		t.Errorf("unexpected result: %+v", report.Result)
	}
	if report.Encoding != "utf-8" {
		t.Errorf("encoding: got %q", report.Encoding)
	}
	if report.OutputPath != s.Config().OutputPath("sample.txt") {
		t.Errorf("output path: got %q", report.OutputPath)
	}

	saved, err := sink.Read(report.OutputPath)
	if err != nil {
		t.Fatalf("read saved result: %v", err)
	}
	if saved.N != 3 || saved.AverageWordLength != 3.08 {
		t.Errorf("saved result: %+v", saved)
	}

	if report.RunID == 0 {
		t.Fatal("expected run to be recorded")
	}
	run, ok, err := s.History().Get(report.RunID)
	if err != nil || !ok {
		t.Fatalf("Get run: ok=%v err=%v", ok, err)
	}
	if run.File != "sample.txt" || run.N != 3 {
		t.Errorf("run: %+v", run)
	}

	v, err := s.Vocabulary("sample.txt")
	if err != nil {
		t.Fatalf("Vocabulary error: %v", err)
	}
	defer v.Close()
	if v.Len() != 12 {
		t.Errorf("vocabulary size: got %d, want 12", v.Len())
	}
}

func TestSession_AnalyzeCP1251(t *testing.T) {
	// "Привет мир" in cp1251
	text := string([]byte{0xcf, 0xf0, 0xe8, 0xe2, 0xe5, 0xf2, 0x20, 0xec, 0xe8, 0xf0})
	s := newTestSession(t, map[string]string{"ru.txt": text})

	report, err := s.Analyze(context.Background(), "ru.txt", 2)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if report.Encoding != "cp1251" {
		t.Errorf("encoding: got %q, want cp1251", report.Encoding)
	}
	if got := report.Result.MostFrequentWords.Keys(); len(got) != 2 || got[0] != "привет" || got[1] != "мир" {
		t.Errorf("words: got %v", got)
	}
}

func TestSession_AnalyzeErrors(t *testing.T) {
	s := newTestSession(t, map[string]string{
		"empty.txt": "",
		"punct.txt": "!!! ???",
		"short.txt": "one two",
	})
	ctx := context.Background()

	if _, err := s.Analyze(ctx, "missing.txt", 1); !source.IsFileError(err) {
		t.Errorf("missing file: expected FileError, got %v", err)
	}
	if _, err := s.Analyze(ctx, "empty.txt", 1); !analysis.IsValidation(err) {
		t.Errorf("empty file: expected ValidationError, got %v", err)
	}
	if _, err := s.Analyze(ctx, "punct.txt", 1); !analysis.IsAnalysis(err) {
		t.Errorf("no words: expected AnalysisError, got %v", err)
	}
	if _, err := s.Analyze(ctx, "short.txt", 3); !analysis.IsValidation(err) {
		t.Errorf("n too large: expected ValidationError, got %v", err)
	}
	if _, err := s.Analyze(ctx, "short.txt", 0); !analysis.IsValidation(err) {
		t.Errorf("n zero: expected ValidationError, got %v", err)
	}

	if _, err := os.Stat(s.Config().OutputPath("short.txt")); !os.IsNotExist(err) {
		t.Errorf("failed analysis must not write output, stat err: %v", err)
	}
	runs, err := s.History().All()
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("failed analyses must not be recorded, got %d runs", len(runs))
	}
}

func TestSession_AnalyzeCanceled(t *testing.T) {
	s := newTestSession(t, map[string]string{"a.txt": "some words here"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Analyze(ctx, "a.txt", 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSession_ConfiguredMaxN(t *testing.T) {
	s := newTestSession(t, map[string]string{"a.txt": "a b c d e f"})
	s.Config().Analysis.MaxN = 3

	if _, err := s.Analyze(context.Background(), "a.txt", 4); !analysis.IsValidation(err) {
		t.Fatalf("expected ValidationError above configured max, got %v", err)
	}
	if _, err := s.Analyze(context.Background(), "a.txt", 3); err != nil {
		t.Fatalf("Analyze at max error: %v", err)
	}
}

func TestSession_HistoryDisabled(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = root
	cfg.Paths.OutputDir = filepath.Join(root, "out")
	cfg.Paths.DataDir = filepath.Join(root, "data")
	cfg.History.Enabled = false
	cfg.History.Vocabulary = false
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("a a b"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := New(&cfg, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer s.Close()

	report, err := s.Analyze(context.Background(), filepath.Join(root, "a.txt"), 1)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if report.RunID != 0 || report.VocabularyPath != "" {
		t.Errorf("expected no history artifacts, got %+v", report)
	}
	if s.History() != nil {
		t.Error("history should be nil when disabled")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.DataDir, "history.db")); !os.IsNotExist(err) {
		t.Errorf("history database should not exist, stat err: %v", err)
	}
}
