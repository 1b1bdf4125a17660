package source

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decoders maps configuration names to 8-bit and UTF-16 decoders. UTF-8 is
// handled separately because it must reject invalid input.
var decoders = map[string]encoding.Encoding{
	"utf-16":       unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM),
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
	"iso-8859-5":   charmap.ISO8859_5,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
}

// KnownEncoding reports whether name can be used in the encodings list.
func KnownEncoding(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "utf-8" || name == "utf8" {
		return true
	}
	_, ok := decoders[name]
	return ok
}

// decode converts data from the named encoding to a UTF-8 string.
func decode(name string, data []byte) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "utf-8" || name == "utf8" {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid utf-8")
		}
		return string(data), nil
	}

	enc, ok := decoders[name]
	if !ok {
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("invalid %s", name)
	}
	return string(out), nil
}
