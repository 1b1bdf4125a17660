package vocab

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchbase/vellum"

	"harshagw/textstats/internal/analysis"
)

// Path returns the vocabulary file path for a document name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+Extension)
}

// Write builds the vocabulary file for name in dir from the word counts and
// returns its path. The file is written to a temporary path and renamed.
func Write(dir, name string, words analysis.Frequencies) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	footer := Footer{Source: name, Distinct: uint64(len(words))}

	// vellum requires keys in lexicographic byte order
	sorted := make(analysis.Frequencies, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var fstBuf bytes.Buffer
	fstBuilder, err := vellum.New(&fstBuf, nil)
	if err != nil {
		return "", err
	}
	for i, w := range sorted {
		if i > 0 && sorted[i-1].Key == w.Key {
			return "", fmt.Errorf("duplicate word %q", w.Key)
		}
		if err := fstBuilder.Insert([]byte(w.Key), uint64(w.Count)); err != nil {
			return "", err
		}
		footer.Words += uint64(w.Count)
		footer.MaxCount = max(footer.MaxCount, uint64(w.Count))
	}
	if err := fstBuilder.Close(); err != nil {
		return "", err
	}

	footerData, err := json.Marshal(footer)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	out.WriteString(Magic)
	binary.Write(&out, binary.BigEndian, Version)
	binary.Write(&out, binary.BigEndian, uint64(fstBuf.Len()))
	out.Write(fstBuf.Bytes())
	footerOffset := out.Len()
	out.Write(footerData)
	binary.Write(&out, binary.BigEndian, uint64(footerOffset))
	binary.Write(&out, binary.BigEndian, uint64(len(footerData)))

	path := Path(dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, out.Bytes(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return path, nil
}
