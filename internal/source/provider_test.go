package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func newTestProvider() *Provider {
	return NewProvider([]string{"utf-8", "cp1251"}, []string{".txt"}, 64, nil)
}

func TestList_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", []byte("bee"))
	writeFile(t, dir, "a.txt", []byte("ay"))
	writeFile(t, dir, "notes.md", []byte("skip"))
	writeFile(t, dir, "big.txt", []byte(strings.Repeat("x", 65)))
	if err := os.Mkdir(filepath.Join(dir, "dir.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := newTestProvider().List(dir)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"a.txt", "b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestList_MissingDirectory(t *testing.T) {
	_, err := newTestProvider().List(filepath.Join(t.TempDir(), "missing"))
	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FileError, got %v", err)
	}
	if ferr.Op != "list" {
		t.Errorf("op: got %q, want list", ferr.Op)
	}
}

func TestRead_UTF8(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ru.txt", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Привет, мир")...))

	doc, err := newTestProvider().Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if doc.Text != "Привет, мир" {
		t.Errorf("text: got %q", doc.Text)
	}
	if doc.Encoding != "utf-8" {
		t.Errorf("encoding: got %q", doc.Encoding)
	}
}

func TestRead_CP1251Fallback(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("Привет мир")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := writeFile(t, dir, "cp.txt", []byte(encoded))

	doc, err := newTestProvider().Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if doc.Text != "Привет мир" {
		t.Errorf("text: got %q", doc.Text)
	}
	if doc.Encoding != "cp1251" {
		t.Errorf("encoding: got %q", doc.Encoding)
	}
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", []byte("text"))
	writeFile(t, dir, "big.txt", []byte(strings.Repeat("x", 65)))
	writeFile(t, dir, "bad.txt", []byte{0xff, 0xfe, 0xfd})
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	utf8Only := NewProvider([]string{"utf-8"}, []string{".txt"}, 64, nil)

	tests := []struct {
		name     string
		provider *Provider
		path     string
		op       string
	}{
		{"missing", newTestProvider(), filepath.Join(dir, "missing.txt"), "not_found"},
		{"directory", newTestProvider(), filepath.Join(dir, "sub.txt"), "not_file"},
		{"suffix", newTestProvider(), filepath.Join(dir, "notes.md"), "unsupported"},
		{"oversized", newTestProvider(), filepath.Join(dir, "big.txt"), "too_large"},
		{"undecodable", utf8Only, filepath.Join(dir, "bad.txt"), "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.provider.Read(tt.path)
			var ferr *FileError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected FileError, got %v", err)
			}
			if ferr.Op != tt.op {
				t.Errorf("op: got %q, want %q", ferr.Op, tt.op)
			}
			if !IsFileError(err) {
				t.Error("IsFileError should report true")
			}
		})
	}
}

func TestKnownEncoding(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF-8", "cp1251", "windows-1251", "koi8-r", "utf-16"} {
		if !KnownEncoding(name) {
			t.Errorf("%s should be known", name)
		}
	}
	if KnownEncoding("ebcdic") {
		t.Error("ebcdic should not be known")
	}
}
