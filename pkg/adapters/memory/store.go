package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/todolists/pkg/domain"
)

type entry struct {
	state   *domain.State
	expires time.Time // zero when the store has no TTL
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Store implements ports.StateStore in memory.
// Safe for concurrent use. Sessions are lost when the process exits.
type Store struct {
	data map[string]entry
	mu   sync.RWMutex

	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithTTL expires a session ttl after its last save. Zero keeps sessions forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save keeps a deep copy of the state so later mutation by the caller is not visible.
// Every save slides the expiry of the session.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	copied := state.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := entry{state: copied}
	if s.ttl > 0 {
		e.expires = now.Add(s.ttl)
		s.sweepLocked(now)
	}
	s.data[sessionID] = e
	return nil
}

// Load returns a copy of the stored state. Expired sessions are not found.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[sessionID]
	if !ok || e.expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return e.state.Snapshot(), nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns live sessions, sorted, dropping the expired ones.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sessions := make([]string, 0, len(s.data))
	for id, e := range s.data {
		if e.expired(now) {
			delete(s.data, id)
			continue
		}
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}

// sweepLocked drops expired sessions, at most once per TTL so saves stay cheap.
// The caller must hold s.mu.
func (s *Store) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, e := range s.data {
		if e.expired(now) {
			delete(s.data, id)
		}
	}
}

