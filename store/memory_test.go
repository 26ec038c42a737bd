package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dailyyoga/memkit/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	log, err := logger.New(&logger.Config{
		Level:    "warn",
		Encoding: "console",
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newTestStore(t *testing.T) *MemoryStore {
	s, err := New(newTestLogger(t), &Config{Name: "test"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(newTestLogger(t), nil)
	if err == nil {
		t.Fatal("expected error: default config has no name")
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	_, err := New(newTestLogger(t), &Config{Name: "test", InitialCapacity: -1})
	if err == nil {
		t.Fatal("expected error for negative capacity")
	}
}

func TestStore_AddGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add("username", "john_doe"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, ok := s.Get("username")
	if !ok {
		t.Fatal("expected username to be present")
	}
	if got != "john_doe" {
		t.Errorf("expected %q, got %q", "john_doe", got)
	}
}

func TestStore_GetAbsent(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.Get("email"); ok {
		t.Error("expected email to be absent")
	}
}

func TestStore_EmptyValueIsNotAbsent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add("flag", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, ok := s.Get("flag")
	if !ok {
		t.Fatal("stored empty string must be present, not absent")
	}
	if got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestStore_AddEmptyKey(t *testing.T) {
	s := newTestStore(t)

	err := s.Add("", "x")
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, ok := s.Get(""); ok {
		t.Error("rejected Add must not mutate the mapping")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := newTestStore(t)

	s.Add("k", "v1")
	s.Add("k", "v1")
	if got, _ := s.Get("k"); got != "v1" {
		t.Errorf("idempotent overwrite: expected v1, got %q", got)
	}

	s.Add("k", "v2")
	if got, _ := s.Get("k"); got != "v2" {
		t.Errorf("expected v2 after update, got %q", got)
	}
	if s.Len() != 1 {
		t.Errorf("overwrite must not grow the store, got %d entries", s.Len())
	}
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)

	s.Add("k", "v")
	if !s.Remove("k") {
		t.Error("Remove should report the key was present")
	}
	if _, ok := s.Get("k"); ok {
		t.Error("removed key should be absent")
	}
	if s.Remove("k") {
		t.Error("removing an absent key should report false, not fail")
	}
}

func TestStore_KeysAndSnapshotAreCopies(t *testing.T) {
	s := newTestStore(t)
	s.Add("a", "1")
	s.Add("b", "2")

	snap := s.Snapshot()
	snap["c"] = "3"
	delete(snap, "a")

	if _, ok := s.Get("c"); ok {
		t.Error("mutating a snapshot must not touch the store")
	}
	if _, ok := s.Get("a"); !ok {
		t.Error("mutating a snapshot must not touch the store")
	}

	keys := s.Keys()
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %d", len(keys))
	}
}

func TestStore_Replace(t *testing.T) {
	s := newTestStore(t)
	s.Add("old", "1")

	s.Replace(map[string]string{"new": "2", "": "dropped"})

	if _, ok := s.Get("old"); ok {
		t.Error("Replace should drop the previous mapping")
	}
	if got, ok := s.Get("new"); !ok || got != "2" {
		t.Errorf("expected new=2 after Replace, got %q (present=%v)", got, ok)
	}
	if s.Len() != 1 {
		t.Errorf("empty keys must be dropped by Replace, got %d entries", s.Len())
	}
}

func TestStore_ConcurrentStress(t *testing.T) {
	s := newTestStore(t)

	const (
		workers   = 8
		opsPerKey = 10000
		keyCount  = 50
	)

	keys := make([]string, keyCount)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%02d", i)
	}

	// Every value written to keys[i] carries the key as a prefix, so any
	// torn or cross-key value a reader observes is detectable.
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < opsPerKey; i++ {
				key := keys[(worker+i)%keyCount]
				if i%2 == 0 {
					value := fmt.Sprintf("%s|w%d|n%d", key, worker, i)
					if err := s.Add(key, value); err != nil {
						errCh <- err
						return
					}
				} else if value, ok := s.Get(key); ok {
					if !strings.HasPrefix(value, key+"|") {
						errCh <- fmt.Errorf("key %s: observed value %q that was never written for it", key, value)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatal(err)
	}

	for _, key := range keys {
		value, ok := s.Get(key)
		if !ok {
			continue
		}
		if !strings.HasPrefix(value, key+"|") {
			t.Errorf("key %s: final value %q was never written for it", key, value)
		}
	}
}
