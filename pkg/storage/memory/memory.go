package memory

import (
	"context"
	"sync"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/storage"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Store is an in-process KeyValueStore. Entries expire TTL after their last write;
// a zero TTL keeps them forever.
type Store struct {
	TTL time.Duration
	Now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a new Store.
func New(ttl time.Duration) *Store {
	return &Store{
		TTL:     ttl,
		Now:     time.Now,
		entries: make(map[string]entry),
	}
}

var _ storage.KeyValueStore = (*Store)(nil)

func key(sessionID, k string) string {
	return sessionID + "/" + k
}

// Get returns the live value stored under k.
func (s *Store) Get(_ context.Context, sessionID, k string) (string, bool, error) {
	if sessionID == "" {
		return "", false, storage.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key(sessionID, k)]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !s.Now().Before(e.expiresAt) {
		delete(s.entries, key(sessionID, k))
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value under k and restarts its TTL.
func (s *Store) Set(_ context.Context, sessionID, k, value string) error {
	if sessionID == "" {
		return storage.ErrNoSession
	}

	e := entry{value: value}
	if s.TTL > 0 {
		e.expiresAt = s.Now().Add(s.TTL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string]entry)
	}
	s.entries[key(sessionID, k)] = e
	return nil
}

// Delete removes k.
func (s *Store) Delete(_ context.Context, sessionID, k string) error {
	if sessionID == "" {
		return storage.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(sessionID, k))
	return nil
}

// Sweep drops every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	removed := 0
	for k, e := range s.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}
