// Package session provides the process-wide store mapping conversation keys
// to teacher-backend sessions.
package session

import (
	"context"
	"sync"

	"github.com/majdzarai/bridge-tavus/core/schemas"
)

// CreateFunc starts a new backend session for a conversation key. It is only
// invoked when the store holds no session for the key.
type CreateFunc func(ctx context.Context) (*schemas.Session, error)

// Store maps conversation keys to sessions. Implementations must be safe for
// concurrent use; insertion of a new session is the only mutation.
type Store interface {
	// Get returns the session stored for key, if any.
	Get(key string) (*schemas.Session, bool)

	// GetOrCreate returns the session stored for key, creating it via create
	// when absent. Concurrent calls for the same key serialize on creation:
	// exactly one caller invokes create, the rest receive the created
	// session. The returned bool reports whether this call created the
	// session.
	GetOrCreate(ctx context.Context, key string, create CreateFunc) (*schemas.Session, bool, error)

	// Len returns the number of stored sessions.
	Len() int
}

// MemoryStore is an in-memory Store. Sessions have no TTL, no capacity bound
// and no persistence; they live until the process exits. That keeps restart
// semantics simple: a restarted bridge starts fresh backend sessions for
// returning conversations.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*schemas.Session

	// creating holds one mutex per key with an in-flight creation, so
	// duplicate first requests (e.g. client retries) cannot both call the
	// backend and orphan a session.
	creatingMu sync.Mutex
	creating   map[string]*sync.Mutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*schemas.Session),
		creating: make(map[string]*sync.Mutex),
	}
}

// Get returns the session stored for key, if any.
func (s *MemoryStore) Get(key string) (*schemas.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	return sess, ok
}

// GetOrCreate implements Store. Creation is serialized per key with a
// double-checked lookup: the loser of a creation race reuses the winner's
// session instead of starting a second backend session.
func (s *MemoryStore) GetOrCreate(ctx context.Context, key string, create CreateFunc) (*schemas.Session, bool, error) {
	if sess, ok := s.Get(key); ok {
		return sess, false, nil
	}

	keyMu := s.creationLock(key)
	keyMu.Lock()
	defer keyMu.Unlock()

	// Re-check under the creation lock; another request may have won the race.
	if sess, ok := s.Get(key); ok {
		return sess, false, nil
	}

	sess, err := create(ctx)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.sessions[key] = sess
	s.mu.Unlock()

	return sess, true, nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// creationLock returns the per-key creation mutex for key, allocating it on
// first use. Key mutexes are retained for the process lifetime, matching the
// store's no-eviction model.
func (s *MemoryStore) creationLock(key string) *sync.Mutex {
	s.creatingMu.Lock()
	defer s.creatingMu.Unlock()

	mu, ok := s.creating[key]
	if !ok {
		mu = &sync.Mutex{}
		s.creating[key] = mu
	}
	return mu
}
