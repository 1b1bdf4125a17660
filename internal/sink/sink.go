// Package sink persists analysis results as indented JSON files.
package sink

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"harshagw/textstats/internal/analysis"
	"harshagw/textstats/internal/source"
)

const indent = "    "

// Encode renders result in the canonical on-disk form: fixed field order,
// four space indentation and literal non-ASCII characters.
func Encode(result *analysis.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Writer saves results to the file system.
type Writer struct {
	logger *zap.Logger
}

// NewWriter returns a Writer. A nil logger is replaced by a no-op logger.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Write stores result at path. Parent directories are created and
// concurrent writers of the same path are serialized with the lock file
// path+".lock", which is left in place. The content is written to a unique
// temporary file in the same directory and renamed over path.
func (w *Writer) Write(path string, result *analysis.Result) error {
	data, err := Encode(result)
	if err != nil {
		return saveError(path, "Error saving results", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return saveError(path, "Error saving results", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return saveError(path, "Error locking output", err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return saveError(path, "Error saving results", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return saveError(path, "Error saving results", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return saveError(path, "Error saving results", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return saveError(path, "Error saving results", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return saveError(path, "Error saving results", err)
	}

	w.logger.Debug("result saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func saveError(path, msg string, err error) error {
	return &source.FileError{Op: "save", Path: path, Msg: msg, Err: err}
}

// Read parses a result previously written by Write.
func Read(path string) (*analysis.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &source.FileError{Op: "read", Path: path, Msg: "Error reading results", Err: err}
	}
	var result analysis.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &source.FileError{Op: "read", Path: path, Msg: "Error parsing results", Err: err}
	}
	return &result, nil
}
