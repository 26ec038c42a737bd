// Package store provides a concurrent in-memory key-value store.
//
// The store follows the module's conventions:
// - Interface-driven design for testability
// - Uses logger.Logger for unified logging
// - Uses routine for safe background goroutines
// - Configuration with validation and defaults
// - Structured error handling
//
// MemoryStore is the canonical implementation: a string-to-string mapping
// guarded by a single read-write mutex. Every operation is a short,
// bounded critical section over pure in-memory state; no lock is ever
// held across I/O. Default() hands out the lazily-built process-wide
// instance, while New builds isolated instances for tests and embedding.
package store

// Store is the key-value store contract. All operations are safe for
// concurrent use and atomic with respect to one another: a reader sees
// either a key's old value or its new value, never a mixture, and never
// a partially-applied bulk update.
type Store interface {
	// Add inserts or replaces the value for key. The empty key is
	// rejected with ErrInvalidKey and the mapping is left unchanged.
	Add(key, value string) error

	// Get returns the current value for key. The second result reports
	// whether the key is present, which keeps a stored empty string
	// distinguishable from an absent key.
	Get(key string) (string, bool)

	// Remove deletes key if present and reports whether it was.
	// Removing an absent key is a no-op, not an error.
	Remove(key string) bool

	// Len returns the number of entries.
	Len() int

	// Keys returns a copy of the current key set, in no particular order.
	Keys() []string

	// Snapshot returns a copy of the current mapping. The copy does not
	// alias the store's internals.
	Snapshot() map[string]string

	// Replace atomically swaps the whole mapping for a copy of entries.
	// Concurrent readers observe either the previous mapping or the new
	// one in full. Entries with empty keys are dropped.
	Replace(entries map[string]string)
}
