// Package session keys dataset snapshots by session id so the analysis
// stages can run as independent requests against the same upload.
package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vedanthq/SLMGen/internal/dataset"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found or expired")

const (
	// DefaultMaxSessions bounds concurrent uploads held in memory.
	DefaultMaxSessions = 25
	// DefaultTTL is how long an idle session survives.
	DefaultTTL = time.Hour
)

// Store holds snapshots for the duration of an analysis session. Snapshots
// are immutable after Put.
type Store interface {
	Put(snap *dataset.Snapshot) string
	Get(id string) (*dataset.Snapshot, error)
	Delete(id string)
	Len() int
}

// MemoryStore is an in-memory Store with LRU eviction and TTL expiry. The
// underlying cache does its own locking, so the store is safe for
// concurrent use.
type MemoryStore struct {
	cache *expirable.LRU[string, *dataset.Snapshot]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding at most maxSessions snapshots,
// each expiring ttl after insertion. Zero values select the defaults.
func NewMemoryStore(maxSessions int, ttl time.Duration) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		cache: expirable.NewLRU[string, *dataset.Snapshot](maxSessions, nil, ttl),
	}
}

// Put stores the snapshot under a fresh id and returns the id.
func (s *MemoryStore) Put(snap *dataset.Snapshot) string {
	id := uuid.NewString()
	s.cache.Add(id, snap)
	slog.Debug("session created", "session_id", id, "examples", snap.TotalExamples)
	return id
}

// Get returns the snapshot for id, or ErrNotFound when the id is unknown
// or the session has expired.
func (s *MemoryStore) Get(id string) (*dataset.Snapshot, error) {
	snap, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return snap, nil
}

// Delete removes the session if present.
func (s *MemoryStore) Delete(id string) {
	s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
