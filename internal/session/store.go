// Package session persists the token and user snapshot of each browser
// session. Both are always written and cleared together.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/stemsi/sekolah-console/internal/model"
)

// ErrNoRecord is returned by Load when nothing is persisted for a session.
var ErrNoRecord = errors.New("no persisted session")

// Record is what a browser session keeps between requests.
type Record struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store persists records keyed by browser session id.
type Store interface {
	Load(ctx context.Context, sid string) (*Record, error)
	Save(ctx context.Context, sid string, rec Record) error
	Clear(ctx context.Context, sid string) error
}

// MemoryStore keeps records in process memory. Used when Redis is not
// configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Load(_ context.Context, sid string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sid]
	if !ok {
		return nil, ErrNoRecord
	}
	return &rec, nil
}

func (s *MemoryStore) Save(_ context.Context, sid string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sid] = rec
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sid)
	return nil
}
