package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/boltdb/bolt"
	"github.com/golang/snappy"

	"harshagw/textstats/internal/analysis"
)

var (
	bucketRuns  = []byte("runs")
	bucketFiles = []byte("files")
	bucketMeta  = []byte("meta")
	keyRunSeq   = []byte("run_seq")
)

// Run is one recorded analysis.
type Run struct {
	ID         uint64           `json:"id"`
	File       string           `json:"file"`
	N          int              `json:"n"`
	Encoding   string           `json:"encoding"`
	OutputPath string           `json:"output_path"`
	CreatedAt  time.Time        `json:"created_at"`
	Result     *analysis.Result `json:"result"`
}

// History provides persistent storage for past runs using BoltDB.
// Run values are snappy-compressed JSON; each file name maps to a roaring
// bitmap of its run IDs.
type History struct {
	db *bolt.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	// Initialize buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketRuns, bucketFiles, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &History{db: db}, nil
}

// Record stores run under a new ID and returns that ID. run.ID is updated.
func (h *History) Record(run *Run) (uint64, error) {
	if run.Result == nil {
		return 0, fmt.Errorf("run has no result")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	err := h.db.Update(func(tx *bolt.Tx) error {
		id, err := nextRunID(tx)
		if err != nil {
			return err
		}
		if id > math.MaxUint32 {
			return fmt.Errorf("run id %d exceeds bitmap range", id)
		}
		run.ID = id

		data, err := encodeRun(run)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketRuns).Put(runKey(id), data); err != nil {
			return err
		}

		bm, err := fileRuns(tx, run.File)
		if err != nil {
			return err
		}
		bm.Add(uint32(id))
		var buf bytes.Buffer
		if _, err := bm.WriteTo(&buf); err != nil {
			return err
		}
		return tx.Bucket(bucketFiles).Put([]byte(run.File), buf.Bytes())
	})
	if err != nil {
		return 0, err
	}
	return run.ID, nil
}

// Get returns the run with the given ID.
func (h *History) Get(id uint64) (*Run, bool, error) {
	var run *Run
	err := h.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get(runKey(id))
		if data == nil {
			return nil
		}
		var err error
		run, err = decodeRun(data)
		return err
	})
	return run, run != nil, err
}

// Runs returns the runs recorded for file in ascending ID order.
func (h *History) Runs(file string) ([]*Run, error) {
	var runs []*Run
	err := h.db.View(func(tx *bolt.Tx) error {
		bm, err := fileRuns(tx, file)
		if err != nil {
			return err
		}
		b := tx.Bucket(bucketRuns)
		it := bm.Iterator()
		for it.HasNext() {
			data := b.Get(runKey(uint64(it.Next())))
			if data == nil {
				continue
			}
			run, err := decodeRun(data)
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	return runs, err
}

// All returns every recorded run in ascending ID order.
func (h *History) All() ([]*Run, error) {
	var runs []*Run
	err := h.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(_, data []byte) error {
			run, err := decodeRun(data)
			if err != nil {
				return err
			}
			runs = append(runs, run)
			return nil
		})
	})
	return runs, err
}

// Latest returns the most recent run for file.
func (h *History) Latest(file string) (*Run, bool, error) {
	var id uint64
	err := h.db.View(func(tx *bolt.Tx) error {
		bm, err := fileRuns(tx, file)
		if err != nil {
			return err
		}
		if !bm.IsEmpty() {
			id = uint64(bm.Maximum())
		}
		return nil
	})
	if err != nil || id == 0 {
		return nil, false, err
	}
	return h.Get(id)
}

// Files returns the names of all files with recorded runs, sorted.
func (h *History) Files() ([]string, error) {
	var files []string
	err := h.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFiles).ForEach(func(k, _ []byte) error {
			files = append(files, string(k))
			return nil
		})
	})
	sort.Strings(files)
	return files, err
}

func (h *History) Close() error {
	return h.db.Close()
}

// nextRunID increments and returns the run sequence.
func nextRunID(tx *bolt.Tx) (uint64, error) {
	b := tx.Bucket(bucketMeta)
	var seq uint64
	data := b.Get(keyRunSeq)
	if data != nil {
		seq = binary.BigEndian.Uint64(data)
	}
	seq++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return seq, b.Put(keyRunSeq, buf)
}

// fileRuns returns the bitmap of run IDs recorded for file.
func fileRuns(tx *bolt.Tx, file string) (*roaring.Bitmap, error) {
	bm := roaring.New()
	data := tx.Bucket(bucketFiles).Get([]byte(file))
	if data == nil {
		return bm, nil
	}
	_, err := bm.ReadFrom(bytes.NewReader(data))
	return bm, err
}

func runKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func encodeRun(run *Run) ([]byte, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

func decodeRun(data []byte) (*Run, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress run: %w", err)
	}
	var run Run
	if err := json.Unmarshal(decompressed, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return &run, nil
}
