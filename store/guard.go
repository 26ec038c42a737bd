package store

import "encoding/json"

// The store is a single-instance resource: exactly one Default() per
// process, isolated instances only via New. The methods below close the
// two bypass routes that would otherwise mint a second instance
// silently — copying an existing store and deserializing into one. Both
// fail fast with distinct errors; neither ever half-succeeds.

// Clone always fails with ErrCloneNotSupported.
func (s *MemoryStore) Clone() (*MemoryStore, error) {
	return nil, ErrCloneNotSupported
}

// MarshalJSON emits the current mapping as a JSON object. This is a
// diagnostic export; it cannot be fed back through UnmarshalJSON.
func (s *MemoryStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON always fails with ErrDuplicateInstantiation.
// Deserialization would populate a store that never went through New.
func (s *MemoryStore) UnmarshalJSON([]byte) error {
	return ErrDuplicateInstantiation
}
