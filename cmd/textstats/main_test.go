package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c-bata/go-prompt"

	"harshagw/textstats/internal/config"
	"harshagw/textstats/internal/session"
)

const sampleText = "Hello, world! This is a test. How are you? I am fine!"

type cliTestEnv struct {
	configPath string
	inputDir   string
	outputDir  string
	dataDir    string
}

func setupCLITestEnv(t *testing.T, files map[string]string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("TEXTSTATS_ENV", config.EnvTesting)

	env := &cliTestEnv{
		configPath: filepath.Join(base, "textstats.toml"),
		inputDir:   filepath.Join(base, "in"),
		outputDir:  filepath.Join(base, "out"),
		dataDir:    filepath.Join(base, "data"),
	}
	if err := os.MkdirAll(env.inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(env.inputDir, name), []byte(text), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	content := fmt.Sprintf("[paths]\ninput_dir = %q\noutput_dir = %q\ndata_dir = %q\n",
		env.inputDir, env.outputDir, env.dataDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
		}
	}
}

func TestAnalyzeHistoryShowWords(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"sample.txt": sampleText})

	out, _, err := runCLI(t, env.configPath, "analyze", "sample.txt", "-n", "3")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "saved to", "hello", "world", "this", "3.08")

	if _, err := os.Stat(filepath.Join(env.outputDir, "sample.txt.json")); err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	out, _, err = runCLI(t, env.configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "sample.txt", "utf-8")

	out, _, err = runCLI(t, env.configPath, "show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, `"3-most-frequent-words": {`, `"word_count": 12`)

	out, _, err = runCLI(t, env.configPath, "words", "sample.txt", "h*")
	if err != nil {
		t.Fatalf("words prefix: %v", err)
	}
	requireContains(t, out, "hello", "how")

	out, _, err = runCLI(t, env.configPath, "words", "sample.txt", "wrld~")
	if err != nil {
		t.Fatalf("words fuzzy: %v", err)
	}
	requireContains(t, out, "world")

	out, _, err = runCLI(t, env.configPath, "words", "sample.txt", "--", "/a.*/", "-are")
	if err != nil {
		t.Fatalf("words regex: %v", err)
	}
	requireContains(t, out, "am")
	if strings.Contains(out, "are") {
		t.Errorf("excluded word listed:\n%s", out)
	}

	out, _, err = runCLI(t, env.configPath, "words", "sample.txt", "zzz")
	if err != nil {
		t.Fatalf("words no match: %v", err)
	}
	requireContains(t, out, "No words match")
}

func TestAnalyzePrintJSON(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"ab.txt": "b a, a b!"})

	out, _, err := runCLI(t, env.configPath, "analyze", "ab.txt", "-n", "2", "--print")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	saved, err := os.ReadFile(filepath.Join(env.outputDir, "ab.txt.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if out != string(saved) {
		t.Fatalf("printed JSON differs from saved file:\n%s\n---\n%s", out, saved)
	}
	requireContains(t, out, `"2-most-frequent-words": {`, `"average_word_length": 1.0`)
}

func TestAnalyzeErrors(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"short.txt": "one two"})

	if _, _, err := runCLI(t, env.configPath, "analyze", "missing.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
	_, _, err := runCLI(t, env.configPath, "analyze", "short.txt", "-n", "5")
	if err == nil || err.Error() != "N (5) is larger than available words (2)" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := runCLI(t, env.configPath, "show", "abc"); err == nil {
		t.Fatal("expected error for invalid run id")
	}
	if _, _, err := runCLI(t, env.configPath, "show", "42"); err == nil {
		t.Fatal("expected error for unknown run id")
	}
	if _, _, err := runCLI(t, env.configPath, "words", "short.txt", "o*"); err == nil {
		t.Fatal("expected error for missing vocabulary")
	}
	if _, _, err := runCLI(t, env.configPath, "words", "short.txt", "(o"); err == nil {
		t.Fatal("expected error for invalid query")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}

	out, _, err = runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]", env.inputDir, "# Profile: testing")
}

type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) ReadLine(prefix string, _ prompt.Completer) (string, error) {
	r.prompts = append(r.prompts, prefix)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func newInteractiveSession(t *testing.T, files map[string]string) (*session.Session, *cliTestEnv) {
	t.Helper()
	env := setupCLITestEnv(t, files)
	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	s, err := session.New(cfg, nil)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, env
}

func TestInteractive(t *testing.T) {
	s, env := newInteractiveSession(t, map[string]string{
		"a.txt": sampleText,
		"b.txt": "go go stop",
	})

	in := &scriptReader{lines: []string{
		"x", "1", // invalid choice, then a.txt
		"abc", "0", "3", // invalid N twice, then 3
		"maybe", "y",
		"b.txt", "", // default N is larger than the word count
		"n",
	}}
	var out bytes.Buffer
	if err := runInteractive(context.Background(), &out, s, in); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}

	text := out.String()
	requireContains(t, text,
		"Text Statistics Analyzer",
		"1. a.txt", "2. b.txt",
		"Please enter a valid number or 'q' to quit",
		"N must be an integer",
		"N must be between 1 and 100",
		"Analysis of a.txt saved to",
		"Please enter 'y' or 'n'",
		"Error: N (10) is larger than available words (3)",
		"Goodbye!",
	)
	if _, err := os.Stat(filepath.Join(env.outputDir, "a.txt.json")); err != nil {
		t.Errorf("expected a.txt result: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.outputDir, "b.txt.json")); !os.IsNotExist(err) {
		t.Errorf("failed analysis must not write b.txt result, stat err: %v", err)
	}
	if len(in.lines) != 0 {
		t.Errorf("unconsumed input: %v", in.lines)
	}
}

func TestInteractive_Quit(t *testing.T) {
	s, _ := newInteractiveSession(t, map[string]string{"a.txt": "a"})

	in := &scriptReader{lines: []string{"q"}}
	var out bytes.Buffer
	if err := runInteractive(context.Background(), &out, s, in); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	requireContains(t, out.String(), "Goodbye!")
	if len(in.prompts) != 1 {
		t.Errorf("expected a single prompt, got %v", in.prompts)
	}
}

func TestInteractive_EmptyLineEndsSession(t *testing.T) {
	s, env := newInteractiveSession(t, map[string]string{"a.txt": "a b"})

	in := &scriptReader{lines: []string{""}}
	var out bytes.Buffer
	if err := runInteractive(context.Background(), &out, s, in); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	requireContains(t, out.String(), "Goodbye!")
	if strings.Contains(out.String(), "Please enter a valid number") {
		t.Errorf("empty file choice should quit, got:\n%s", out.String())
	}
	if len(in.prompts) != 1 {
		t.Errorf("expected a single prompt, got %v", in.prompts)
	}

	in = &scriptReader{lines: []string{"1", "1", "  "}}
	out.Reset()
	if err := runInteractive(context.Background(), &out, s, in); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	requireContains(t, out.String(), "Analysis of a.txt saved to", "Goodbye!")
	if len(in.prompts) != 3 {
		t.Errorf("empty continue answer should stop after three prompts, got %v", in.prompts)
	}
	if _, err := os.Stat(filepath.Join(env.outputDir, "a.txt.json")); err != nil {
		t.Errorf("expected a.txt result: %v", err)
	}
}

func TestInteractive_EndOfInput(t *testing.T) {
	s, _ := newInteractiveSession(t, map[string]string{"a.txt": "a"})

	var out bytes.Buffer
	if err := runInteractive(context.Background(), &out, s, &scriptReader{}); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	requireContains(t, out.String(), "Goodbye!")
}

func TestInteractive_NoFiles(t *testing.T) {
	s, env := newInteractiveSession(t, nil)

	var out bytes.Buffer
	if err := runInteractive(context.Background(), &out, s, &scriptReader{}); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	requireContains(t, out.String(), "No text files found in "+env.inputDir)
}
