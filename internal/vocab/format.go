// Package vocab stores the word counts of an analyzed document as an
// immutable, memory-mapped FST file.
//
// File layout:
//
//	magic "VOC\x00" | version uint32 | fst size uint64 | fst bytes | footer JSON | footer offset uint64 | footer size uint64
//
// All integers are big-endian. FST keys are the words, values their counts.
package vocab

const (
	Magic     = "VOC\x00"
	Version   = uint32(1)
	Extension = ".voc"

	headerSize  = len(Magic) + 4
	trailerSize = 16
)

// Footer describes the document a vocabulary file was built from.
type Footer struct {
	Source   string `json:"source"`
	Words    uint64 `json:"words"`
	Distinct uint64 `json:"distinct"`
	MaxCount uint64 `json:"max_count"`
}
