package journal

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and short-lived tooling.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	closed  bool
}

// NewMemoryStore creates an empty in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores an entry, assigning the next sequence number.
func (s *MemoryStore) Append(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Seq = int64(len(s.entries)) + 1
	s.entries = append(s.entries, e)
	return nil
}

// Read returns all entries with Seq >= fromSeq.
func (s *MemoryStore) Read(ctx context.Context, fromSeq int64) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if fromSeq < 1 {
		fromSeq = 1
	}
	if fromSeq > int64(len(s.entries)) {
		return nil, nil
	}
	out := make([]*Entry, 0, int64(len(s.entries))-fromSeq+1)
	for _, e := range s.entries[fromSeq-1:] {
		out = append(out, e)
	}
	return out, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ Store = (*MemoryStore)(nil)
