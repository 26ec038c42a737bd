// Package events provides a mutation journal for stores.
//
// Recorder wraps a store.Store and publishes an Event for every
// completed mutation into an unbounded channel. A background loop
// batches the events and hands each batch to a Sink. Publication
// happens after the store operation returns, so the store's lock is
// never held while the journal does its work.
package events

import "time"

// Op identifies the kind of mutation an Event describes.
type Op string

const (
	// OpSet records an Add (insert or overwrite).
	OpSet Op = "set"
	// OpDelete records a Remove that found its key.
	OpDelete Op = "delete"
	// OpReplace records a full-mapping swap. Key and Value are empty.
	OpReplace Op = "replace"
)

// Event is one recorded store mutation.
type Event struct {
	Op    Op
	Key   string
	Value string
	At    time.Time
}

// Sink receives batches of events from the recorder's drain loop.
// It runs on the recorder's background goroutine; a slow sink delays
// later batches but never blocks store operations.
type Sink func(batch []Event)
