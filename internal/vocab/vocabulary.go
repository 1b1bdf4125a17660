package vocab

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/couchbase/vellum"
	"github.com/couchbase/vellum/levenshtein"
	"github.com/couchbase/vellum/regexp"
	"github.com/edsrzf/mmap-go"

	"harshagw/textstats/internal/analysis"
)

// Vocabulary is an opened, mmap'd vocabulary file.
type Vocabulary struct {
	path   string
	file   *os.File
	data   mmap.MMap
	fst    *vellum.FST
	footer Footer
}

// Open maps the vocabulary file at path and loads its FST.
func Open(path string) (*Vocabulary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary %s: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if stat.Size() < int64(headerSize+8+trailerSize) {
		file.Close()
		return nil, fmt.Errorf("vocabulary file too small: %s", path)
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap vocabulary %s: %w", path, err)
	}

	v := &Vocabulary{path: path, file: file, data: data}
	if err := v.load(); err != nil {
		v.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func (v *Vocabulary) load() error {
	data := v.data
	if string(data[:len(Magic)]) != Magic {
		return fmt.Errorf("invalid vocabulary magic")
	}
	if version := binary.BigEndian.Uint32(data[len(Magic):headerSize]); version != Version {
		return fmt.Errorf("unsupported vocabulary version %d", version)
	}

	size := uint64(len(data))
	footerOffset := binary.BigEndian.Uint64(data[size-16 : size-8])
	footerSize := binary.BigEndian.Uint64(data[size-8:])
	limit := size - trailerSize
	if footerOffset > limit || footerSize > limit-footerOffset {
		return fmt.Errorf("corrupt vocabulary footer")
	}
	if err := json.Unmarshal(data[footerOffset:footerOffset+footerSize], &v.footer); err != nil {
		return fmt.Errorf("failed to parse vocabulary footer: %w", err)
	}

	fstSize := binary.BigEndian.Uint64(data[headerSize:])
	fstStart := uint64(headerSize + 8)
	if fstStart > footerOffset || fstSize > footerOffset-fstStart {
		return fmt.Errorf("corrupt vocabulary dictionary")
	}
	fst, err := vellum.Load(data[fstStart : fstStart+fstSize])
	if err != nil {
		return fmt.Errorf("failed to load FST: %w", err)
	}
	v.fst = fst
	return nil
}

// Path returns the vocabulary file path.
func (v *Vocabulary) Path() string { return v.path }

// Footer returns the document summary stored in the file.
func (v *Vocabulary) Footer() Footer { return v.footer }

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int { return v.fst.Len() }

// Count returns how often word occurs in the document.
func (v *Vocabulary) Count(word string) (int, bool, error) {
	val, exists, err := v.fst.Get([]byte(word))
	if err != nil || !exists {
		return 0, false, err
	}
	return int(val), true, nil
}

// Prefix returns up to limit words starting with prefix in byte order. A
// limit of zero or less returns every match.
func (v *Vocabulary) Prefix(prefix string, limit int) (analysis.Frequencies, error) {
	start := []byte(prefix)
	end := prefixSuccessor(start)

	iter, err := v.fst.Iterator(start, end)
	return collect(iter, err, limit)
}

// Fuzzy returns up to limit words within the given edit distance of word.
func (v *Vocabulary) Fuzzy(word string, distance uint8, limit int) (analysis.Frequencies, error) {
	builder, err := levenshtein.NewLevenshteinAutomatonBuilder(distance, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create levenshtein builder: %w", err)
	}
	aut, err := builder.BuildDfa(word, distance)
	if err != nil {
		return nil, fmt.Errorf("failed to build fuzzy automaton: %w", err)
	}
	return v.search(aut, limit)
}

// Match returns up to limit words matching the regular expression pattern.
func (v *Vocabulary) Match(pattern string, limit int) (analysis.Frequencies, error) {
	aut, err := regexp.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return v.search(aut, limit)
}

func (v *Vocabulary) search(aut vellum.Automaton, limit int) (analysis.Frequencies, error) {
	iter, err := v.fst.Search(aut, nil, nil)
	return collect(iter, err, limit)
}

// collect drains an FST iterator into a frequency table.
func collect(iter vellum.Iterator, err error, limit int) (analysis.Frequencies, error) {
	var out analysis.Frequencies
	for err == nil {
		key, val := iter.Current()
		out = append(out, analysis.Frequency{Key: string(key), Count: int(val)})
		if limit > 0 && len(out) >= limit {
			return out, nil
		}
		err = iter.Next()
	}
	if err != vellum.ErrIteratorDone {
		return nil, err
	}
	return out, nil
}

// Close releases the mapping and the file.
func (v *Vocabulary) Close() error {
	if v.fst != nil {
		v.fst.Close()
		v.fst = nil
	}
	if v.data != nil {
		v.data.Unmap()
		v.data = nil
	}
	if v.file != nil {
		err := v.file.Close()
		v.file = nil
		return err
	}
	return nil
}
