package events

import (
	"sync"
	"testing"
	"time"

	"github.com/dailyyoga/memkit/logger"
	"github.com/dailyyoga/memkit/store"
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

func newTestStore(t *testing.T) *store.MemoryStore {
	s, err := store.New(newTestLogger(t), &store.Config{Name: "test"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

// collectSink gathers every event handed to the sink.
type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (c *collectSink) sink(batch []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, batch...)
}

func (c *collectSink) all() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func newTestRecorder(t *testing.T, sink Sink) *Recorder {
	r, err := NewRecorder(newTestLogger(t), &Config{Name: "test", FlushInterval: 10 * time.Millisecond}, newTestStore(t), sink)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return r
}

func TestNewRecorder_Validation(t *testing.T) {
	log := newTestLogger(t)

	if _, err := NewRecorder(log, &Config{}, newTestStore(t), nil); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := NewRecorder(log, &Config{Name: "r"}, nil, nil); err == nil {
		t.Error("expected error for nil target")
	}
}

func TestRecorder_JournalsMutations(t *testing.T) {
	var c collectSink
	r := newTestRecorder(t, c.sink)

	if err := r.Add("username", "john_doe"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !r.Remove("username") {
		t.Fatal("Remove should report presence")
	}
	r.Replace(map[string]string{"a": "1"})

	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	events := c.all()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %v", len(events), events)
	}
	if events[0].Op != OpSet || events[0].Key != "username" || events[0].Value != "john_doe" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Op != OpDelete || events[1].Key != "username" {
		t.Errorf("unexpected second event: %+v", events[1])
	}
	if events[2].Op != OpReplace {
		t.Errorf("unexpected third event: %+v", events[2])
	}
}

func TestRecorder_NoEventForRejectedOrAbsent(t *testing.T) {
	var c collectSink
	r := newTestRecorder(t, c.sink)

	if err := r.Add("", "x"); err == nil {
		t.Fatal("expected ErrInvalidKey to pass through the recorder")
	}
	if r.Remove("never-added") {
		t.Fatal("Remove of an absent key should report false")
	}

	r.Close()

	if events := c.all(); len(events) != 0 {
		t.Errorf("rejected and no-op mutations must not be journaled, got %v", events)
	}
}

func TestRecorder_ForwardsReads(t *testing.T) {
	var c collectSink
	r := newTestRecorder(t, c.sink)
	defer r.Close()

	r.Add("k", "v")

	if got, ok := r.Get("k"); !ok || got != "v" {
		t.Errorf("expected k=v through the recorder, got %q (present=%v)", got, ok)
	}
	if _, ok := r.Get("absent"); ok {
		t.Error("expected absent key to stay absent")
	}
	if r.Len() != 1 {
		t.Errorf("expected Len 1, got %d", r.Len())
	}
	if keys := r.Keys(); len(keys) != 1 || keys[0] != "k" {
		t.Errorf("unexpected keys: %v", keys)
	}
	if snap := r.Snapshot(); snap["k"] != "v" {
		t.Errorf("unexpected snapshot: %v", snap)
	}
}

func TestRecorder_EarlyFlushAtBatchSize(t *testing.T) {
	var c collectSink
	r, err := NewRecorder(newTestLogger(t), &Config{
		Name:          "test",
		FlushInterval: time.Hour, // only size-triggered flushes
		FlushSize:     2,
	}, newTestStore(t), c.sink)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer r.Close()

	r.Add("a", "1")
	r.Add("b", "2")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(c.all()) >= 2 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected a size-triggered flush, saw %d events", len(c.all()))
}

func TestRecorder_AddRacingClose(t *testing.T) {
	for round := 0; round < 50; round++ {
		var c collectSink
		r := newTestRecorder(t, c.sink)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					if err := r.Add("k", "v"); err != nil {
						t.Errorf("Add must keep succeeding across Close: %v", err)
						return
					}
				}
			}()
		}

		if err := r.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		wg.Wait()
	}
}

func TestRecorder_CloseWithoutStartFlushesBuffered(t *testing.T) {
	var c collectSink
	r, err := NewRecorder(newTestLogger(t), &Config{Name: "test"}, newTestStore(t), c.sink)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	r.Add("a", "1")
	r.Add("b", "2")

	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	events := c.all()
	if len(events) != 2 {
		t.Fatalf("events published before Start must reach the sink on Close, got %d: %v", len(events), events)
	}
	if events[0].Key != "a" || events[1].Key != "b" {
		t.Errorf("unexpected event order: %v", events)
	}
}

func TestRecorder_CloseIdempotent(t *testing.T) {
	var c collectSink
	r := newTestRecorder(t, c.sink)

	if err := r.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if err := r.Start(); err != ErrRecorderClosed {
		t.Errorf("Start after Close should fail with ErrRecorderClosed, got %v", err)
	}
}
