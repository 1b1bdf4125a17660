package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Document is the decoded content of one input file.
type Document struct {
	Path     string
	Text     string
	Encoding string
	Size     int64
}

// Provider lists and reads input documents.
type Provider struct {
	Encodings   []string
	Suffixes    []string
	MaxFileSize int64
	Logger      *zap.Logger
}

// NewProvider returns a Provider. A nil logger is replaced by a no-op logger.
func NewProvider(encodings, suffixes []string, maxFileSize int64, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		Encodings:   encodings,
		Suffixes:    suffixes,
		MaxFileSize: maxFileSize,
		Logger:      logger,
	}
}

// List returns the names of the regular files in dir that have a supported
// suffix and do not exceed the size limit, sorted by name.
func (p *Provider) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileError{Op: "list", Path: dir, Msg: "Error accessing directory", Err: err}
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !p.supported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, &FileError{Op: "list", Path: filepath.Join(dir, entry.Name()), Msg: "Error accessing directory", Err: err}
		}
		if p.MaxFileSize > 0 && info.Size() > p.MaxFileSize {
			p.logger().Debug("skipping oversized file",
				zap.String("path", filepath.Join(dir, entry.Name())),
				zap.Int64("bytes", info.Size()))
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}

// Read loads path and decodes it with the first configured encoding that
// accepts the content.
func (p *Provider) Read(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileError{Op: "not_found", Path: path, Msg: "File not found"}
		}
		return nil, &FileError{Op: "read", Path: path, Msg: "Error reading file", Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &FileError{Op: "not_file", Path: path, Msg: "Not a file"}
	}
	if !p.supported(path) {
		return nil, &FileError{Op: "unsupported", Path: path, Msg: "Not a text file"}
	}
	if p.MaxFileSize > 0 && info.Size() > p.MaxFileSize {
		return nil, &FileError{Op: "too_large", Path: path, Msg: "File size exceeds maximum allowed size"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Msg: "Error reading file", Err: err}
	}

	for _, name := range p.Encodings {
		text, err := decode(name, data)
		if err != nil {
			p.logger().Debug("decode attempt failed",
				zap.String("path", path),
				zap.String("encoding", name),
				zap.Error(err))
			continue
		}
		p.logger().Debug("document loaded",
			zap.String("path", path),
			zap.String("encoding", name),
			zap.Int64("bytes", info.Size()))
		return &Document{Path: path, Text: text, Encoding: name, Size: info.Size()}, nil
	}

	return nil, &FileError{Op: "decode", Path: path, Msg: "Could not decode file with supported encodings"}
}

func (p *Provider) supported(name string) bool {
	if len(p.Suffixes) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, suffix := range p.Suffixes {
		if ext == suffix {
			return true
		}
	}
	return false
}

func (p *Provider) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
