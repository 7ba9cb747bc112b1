package report

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketResults = []byte("results")
	bucketMeta    = []byte("meta")
)

var metaKey = []byte("run")

// Meta identifies the search run that produced the stored rows.
type Meta struct {
	RunID     string    `json:"run_id"`
	Target    string    `json:"target"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// BoltSink persists report rows in a bbolt database for downstream
// tooling. Rows are keyed by document, line and offset, so a plain
// cursor scan returns them in report order.
type BoltSink struct {
	db *bolt.DB
}

// OpenBoltSink opens or creates the report database at path.
func OpenBoltSink(path string) (*BoltSink, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open report database: %w", err)
	}
	return &BoltSink{db: db}, nil
}

// Write stores all rows plus the run metadata in one transaction,
// replacing whatever a previous run left behind.
func (s *BoltSink) Write(meta Meta, rows []Row) error {
	meta.Rows = len(rows)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketResults); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		results, err := tx.CreateBucket(bucketResults)
		if err != nil {
			return err
		}
		for _, r := range rows {
			value, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := results.Put(rowKey(r), value); err != nil {
				return err
			}
		}

		mb, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		mv, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return mb.Put(metaKey, mv)
	})
}

// Rows reads back every stored row in key order.
func (s *BoltSink) Rows() ([]Row, error) {
	var rows []Row
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var r Row
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			rows = append(rows, r)
			return nil
		})
	})
	return rows, err
}

// Meta reads back the stored run metadata, or nil if none was written.
func (s *BoltSink) Meta() (*Meta, error) {
	var meta *Meta
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}
		v := b.Get(metaKey)
		if v == nil {
			return nil
		}
		meta = &Meta{}
		return json.Unmarshal(v, meta)
	})
	return meta, err
}

// Close closes the underlying database.
func (s *BoltSink) Close() error {
	return s.db.Close()
}

// rowKey orders rows by document, then line, then offset. The NUL
// separator sorts before any printable byte, so document names that
// share a prefix cannot interleave.
func rowKey(r Row) []byte {
	return fmt.Appendf(nil, "%s\x00%09d\x00%09d", r.Document, r.Line, r.Offset)
}
