package store

import (
	"fmt"
	"sync"

	"github.com/dailyyoga/memkit/logger"
)

var (
	defaultOnce  sync.Once
	defaultStore *MemoryStore
)

// Default returns the process-wide store, constructing it on first call.
// Construction happens exactly once no matter how many goroutines race
// on the first access; sync.Once guarantees every caller observes the
// fully-constructed instance. The instance lives for the rest of the
// process and is never rebuilt.
//
// Construction uses DefaultConfig and the process-wide logger; it cannot
// fail short of allocation failure, which panics — there is no degraded
// mode for a half-built default store.
//
// Code that needs an isolated store (tests in particular) should use New
// and pass the handle explicitly.
func Default() *MemoryStore {
	defaultOnce.Do(func() {
		cfg := DefaultConfig()
		cfg.Name = "default"
		s, err := New(logger.GetGlobalLogger(), cfg)
		if err != nil {
			panic(fmt.Sprintf("store: building the default store: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}
