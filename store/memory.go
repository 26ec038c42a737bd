package store

import (
	"sync"

	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
)

// MemoryStore is the in-memory Store implementation. A single RWMutex
// serializes all access to the mapping; reads share the read lock.
type MemoryStore struct {
	logger logger.Logger
	name   string

	mu      sync.RWMutex
	entries map[string]string
}

var _ Store = (*MemoryStore)(nil)

// New creates an isolated MemoryStore. It returns an error if the
// configuration is invalid. Most production code should use Default()
// instead; New exists for tests and for embedding a private store.
func New(log logger.Logger, cfg *Config) (*MemoryStore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &MemoryStore{
		logger:  log,
		name:    cfg.Name,
		entries: make(map[string]string, cfg.InitialCapacity),
	}, nil
}

// Name returns the store's configured name, used in log entries.
func (s *MemoryStore) Name() string {
	return s.name
}

// Add inserts or replaces the value for key.
func (s *MemoryStore) Add(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Get returns the current value for key and whether it is present.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

// Remove deletes key if present and reports whether it was.
func (s *MemoryStore) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return ok
}

// Len returns the number of entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys returns a copy of the current key set.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a copy of the current mapping.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Replace atomically swaps the whole mapping for a copy of entries.
// The input is copied before the write lock is taken so the critical
// section stays O(1) pointer swap plus nothing else.
func (s *MemoryStore) Replace(entries map[string]string) {
	next := make(map[string]string, len(entries))
	dropped := 0
	for k, v := range entries {
		if k == "" {
			dropped++
			continue
		}
		next[k] = v
	}

	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()

	if dropped > 0 && s.logger != nil {
		s.logger.Warn("replace dropped entries with empty keys",
			zap.String("store", s.name),
			zap.Int("dropped", dropped),
		)
	}
}
