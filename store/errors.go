package store

import (
	"fmt"
	"time"
)

// Predefined errors
var (
	// ErrInvalidKey is returned by Add when the key is empty.
	ErrInvalidKey = fmt.Errorf("store: invalid key (must be non-empty)")

	// ErrCloneNotSupported is returned by Clone. The store is a
	// single-instance resource; duplicating it would silently fork the
	// mapping, so any attempt fails loudly instead.
	ErrCloneNotSupported = fmt.Errorf("store: clone not supported, the store is a single-instance resource")

	// ErrDuplicateInstantiation is returned when a code path tries to
	// mint a store instance bypassing New or Default, such as
	// deserializing into one.
	ErrDuplicateInstantiation = fmt.Errorf("store: duplicate instantiation, stores are only created via New or Default")

	// ErrInvalidConfig is returned when required constructor arguments
	// are missing.
	ErrInvalidConfig = fmt.Errorf("store: invalid config")

	// ErrSyncerRunning is returned by Start on a syncer that is already
	// running.
	ErrSyncerRunning = fmt.Errorf("store: syncer already started")
)

// Error constructors

// ErrInvalidName reports a missing or unusable name.
func ErrInvalidName(name string) error {
	return fmt.Errorf("store: invalid name: %q (must be non-empty)", name)
}

// ErrInvalidCapacity reports a negative initial capacity.
func ErrInvalidCapacity(capacity int) error {
	return fmt.Errorf("store: invalid initial capacity: %d (must be >= 0)", capacity)
}

// ErrInvalidInterval reports an unusable refresh interval.
func ErrInvalidInterval(interval time.Duration) error {
	return fmt.Errorf("store: invalid interval: %v (must be > 0)", interval)
}

// ErrInvalidTimeout reports an unusable load timeout.
func ErrInvalidTimeout(timeout time.Duration) error {
	return fmt.Errorf("store: invalid timeout: %v (must be > 0)", timeout)
}

// ErrInvalidMaxRetries reports an unusable retry count.
func ErrInvalidMaxRetries(retries int) error {
	return fmt.Errorf("store: invalid max retries: %d (must be >= 1)", retries)
}

// ErrRefresh wraps a failed refresh.
func ErrRefresh(err error) error {
	return fmt.Errorf("store: refresh failed: %w", err)
}
