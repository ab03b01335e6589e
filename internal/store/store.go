package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/moodreel/moodreel/internal/domain"
)

var bucketHistory = []byte("history")

// maxHistoryRecords caps the persisted search history; oldest entries are
// pruned first.
const maxHistoryRecords = 100

// HistoryStore implements domain.HistoryStore using BoltDB.
// With an empty data dir it runs memory-only (no persistence), which keeps
// tests and credential-less sessions working without touching disk.
type HistoryStore struct {
	db *bolt.DB

	mu     sync.RWMutex
	memory []domain.SearchRecord // memory-only mode
}

// NewHistoryStore opens (or creates) the history database under dataDir.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		return &HistoryStore{}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "moodreel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &HistoryStore{db: db}, nil
}

// Close releases the underlying database
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AppendSearch records a completed search and prunes history past the cap.
func (s *HistoryStore) AppendSearch(rec domain.SearchRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.memory = append(s.memory, rec)
		if len(s.memory) > maxHistoryRecords {
			s.memory = s.memory[len(s.memory)-maxHistoryRecords:]
		}
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}

		// Prune oldest entries beyond the cap. Delete moves the cursor to
		// the next element, so re-seek First before each removal.
		count := 0
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			count++
		}
		for count > maxHistoryRecords {
			if k, _ := c.First(); k == nil {
				break
			}
			if err := c.Delete(); err != nil {
				return err
			}
			count--
		}
		return nil
	})
}

// RecentSearches returns up to limit records, newest first.
func (s *HistoryStore) RecentSearches(limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 {
		limit = maxHistoryRecords
	}

	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		var records []domain.SearchRecord
		for i := len(s.memory) - 1; i >= 0 && len(records) < limit; i-- {
			records = append(records, s.memory[i])
		}
		return records, nil
	}

	var records []domain.SearchRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketHistory).Cursor()
		for k, v := c.Last(); k != nil && len(records) < limit; k, v = c.Prev() {
			var rec domain.SearchRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				continue // Skip records written by older versions
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// seqKey encodes a sequence number as a sortable big-endian key
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
