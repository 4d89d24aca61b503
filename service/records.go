package service

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// maxSaveRecords bounds the per-process history; oldest entries are
// dropped first.
const maxSaveRecords = 100

type SaveRecord struct {
	ID      string    `json:"id"`
	Path    string    `json:"path"`
	Bytes   int       `json:"bytes"`
	Digest  string    `json:"digest"`
	Format  string    `json:"format"`
	SavedAt time.Time `json:"saved_at"`
}

func NewSaveRecord(path string, data []byte) SaveRecord {
	digest := blake2b.Sum256(data)
	return SaveRecord{
		ID:      uuid.NewString(),
		Path:    path,
		Bytes:   len(data),
		Digest:  hex.EncodeToString(digest[:]),
		Format:  FormatForPath(path),
		SavedAt: time.Now(),
	}
}

type SaveRecordStorage interface {
	Add(ctx context.Context, rec SaveRecord) error
	List(ctx context.Context) []SaveRecord
}

type SaveRecordMemoryStorage struct {
	records []SaveRecord
	mu      sync.RWMutex
}

var _ SaveRecordStorage = (*SaveRecordMemoryStorage)(nil)

func NewSaveRecordMemoryStorage() *SaveRecordMemoryStorage {
	return &SaveRecordMemoryStorage{}
}

func (s *SaveRecordMemoryStorage) Add(ctx context.Context, rec SaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if len(s.records) > maxSaveRecords {
		s.records = s.records[len(s.records)-maxSaveRecords:]
	}
	return nil
}

// List returns the recorded saves, newest first.
func (s *SaveRecordMemoryStorage) List(ctx context.Context) []SaveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SaveRecord, len(s.records))
	for i, rec := range s.records {
		out[len(s.records)-1-i] = rec
	}
	return out
}
