// Package store persists computed layouts for the serve mode, so a layout
// can be computed once and fetched or re-rendered later by ID.
//
// Two backends are provided:
//   - memory: for development and tests
//   - mongo: for deployments that outlive a process
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/t0mdavid-m/seqviz/pkg/viz"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a layout does not exist.
	ErrNotFound = errors.New("layout not found")
)

// Record is a stored layout with its assigned identity.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Layout    *viz.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Store persists layout records.
type Store interface {
	// Put stores a layout under a fresh UUID and returns the record.
	Put(ctx context.Context, l *viz.Layout) (*Record, error)

	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record by ID, or ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory store for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Put(ctx context.Context, l *viz.Layout) (*Record, error) {
	rec := &Record{
		ID:        uuid.NewString(),
		Layout:    l,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return rec, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
