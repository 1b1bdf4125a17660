package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Frequency is one entry of an ordered frequency table.
type Frequency struct {
	Key   string
	Count int
}

// Frequencies is an ordered mapping key -> count. It encodes as a JSON object
// whose members keep the slice order.
type Frequencies []Frequency

// Total returns the sum of all counts.
func (f Frequencies) Total() int {
	total := 0
	for _, e := range f {
		total += e.Count
	}
	return total
}

// Get returns the count stored for key.
func (f Frequencies) Get(key string) (int, bool) {
	for _, e := range f {
		if e.Key == key {
			return e.Count, true
		}
	}
	return 0, false
}

// Keys returns the keys in table order.
func (f Frequencies) Keys() []string {
	keys := make([]string, len(f))
	for i, e := range f {
		keys[i] = e.Key
	}
	return keys
}

// countFirstSeen counts keys preserving the order in which each key first appears.
func countFirstSeen(keys []string) Frequencies {
	indexes := make(map[string]int, len(keys))
	freqs := make(Frequencies, 0)
	for _, k := range keys {
		if i, ok := indexes[k]; ok {
			freqs[i].Count++
			continue
		}
		indexes[k] = len(freqs)
		freqs = append(freqs, Frequency{Key: k, Count: 1})
	}
	return freqs
}

// sortByCount orders entries by descending count. Equal counts keep their
// current relative order.
func sortByCount(f Frequencies) {
	sort.SliceStable(f, func(i, j int) bool {
		return f[i].Count > f[j].Count
	})
}

func (f Frequencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeString(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Frequencies) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("frequencies: expected object, got %v", tok)
	}

	out := make(Frequencies, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("frequencies: expected key, got %v", tok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("frequencies: value for %q: %w", key, err)
		}
		out = append(out, Frequency{Key: key, Count: count})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = out
	return nil
}

// encodeString encodes s as a JSON string, leaving HTML characters and
// non-ASCII text unescaped.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
