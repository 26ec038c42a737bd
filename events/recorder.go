package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dailyyoga/memkit/logger"
	"github.com/dailyyoga/memkit/store"
	"github.com/smallnest/chanx"
	"go.uber.org/zap"
)

// Recorder is a store.Store decorator that journals mutations.
// Reads pass straight through; mutations are forwarded first and an
// Event is published only after the store reports success.
type Recorder struct {
	logger logger.Logger
	target store.Store
	sink   Sink

	name          string
	flushInterval time.Duration
	flushSize     int

	events      *chanx.UnboundedChan[Event]
	flushTicker *time.Ticker

	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex // guards closed and the In side of events
	closed  bool
	started atomic.Bool
	dropped atomic.Int64
}

var _ store.Store = (*Recorder)(nil)

// NewRecorder wraps target with a mutation journal. If sink is nil,
// batches are logged at debug level. Start must be called before events
// begin to drain.
func NewRecorder(log logger.Logger, cfg *Config, target store.Store, sink Sink) (*Recorder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrInvalidConfig("target store is required")
	}

	r := &Recorder{
		logger:        log,
		target:        target,
		name:          cfg.Name,
		flushInterval: cfg.FlushInterval,
		flushSize:     cfg.FlushSize,
		events:        chanx.NewUnboundedChan[Event](context.Background(), cfg.FlushSize),
		flushTicker:   time.NewTicker(cfg.FlushInterval),
		done:          make(chan struct{}),
	}
	if sink == nil {
		r.sink = r.logBatch
	} else {
		r.sink = sink
	}
	return r, nil
}

// Start launches the drain loop.
func (r *Recorder) Start() error {
	if r.isClosed() {
		return ErrRecorderClosed
	}
	if !r.started.CompareAndSwap(false, true) {
		return nil
	}

	r.wg.Add(1)
	go r.drainLoop()

	r.logger.Info("mutation recorder started",
		zap.String("recorder", r.name),
		zap.Duration("flush_interval", r.flushInterval),
		zap.Int("flush_size", r.flushSize),
	)
	return nil
}

// Close stops the drain loop after flushing everything already
// published. Safe to call more than once.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	// In closes under the write lock, so no publish can sit between its
	// closed check and its send.
	close(r.events.In)
	r.mu.Unlock()

	r.flushTicker.Stop()
	close(r.done)
	if r.started.Load() {
		r.wg.Wait()
	} else {
		// No drain loop ever ran. In is closed, so Out drains and
		// closes; hand whatever was already published to the sink.
		r.flushRemaining(make([]Event, 0, r.flushSize))
	}

	if n := r.dropped.Load(); n > 0 {
		r.logger.Warn("events dropped after close",
			zap.String("recorder", r.name),
			zap.Int64("dropped", n),
		)
	}
	r.logger.Info("mutation recorder closed", zap.String("recorder", r.name))
	return nil
}

// Add forwards to the target and records an OpSet event on success.
func (r *Recorder) Add(key, value string) error {
	if err := r.target.Add(key, value); err != nil {
		return err
	}
	r.publish(Event{Op: OpSet, Key: key, Value: value, At: time.Now()})
	return nil
}

// Get forwards to the target. Reads are not journaled.
func (r *Recorder) Get(key string) (string, bool) {
	return r.target.Get(key)
}

// Remove forwards to the target and records an OpDelete event if the
// key was present.
func (r *Recorder) Remove(key string) bool {
	present := r.target.Remove(key)
	if present {
		r.publish(Event{Op: OpDelete, Key: key, At: time.Now()})
	}
	return present
}

// Len forwards to the target.
func (r *Recorder) Len() int {
	return r.target.Len()
}

// Keys forwards to the target.
func (r *Recorder) Keys() []string {
	return r.target.Keys()
}

// Snapshot forwards to the target.
func (r *Recorder) Snapshot() map[string]string {
	return r.target.Snapshot()
}

// Replace forwards to the target and records a single OpReplace event.
func (r *Recorder) Replace(entries map[string]string) {
	r.target.Replace(entries)
	r.publish(Event{Op: OpReplace, At: time.Now()})
}

// publish enqueues ev for the drain loop. Events arriving after Close
// are counted and dropped. The read lock pins the In side open across
// the send; the channel itself is unbounded, so the send never blocks
// long enough to starve Close.
func (r *Recorder) publish(ev Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	r.events.In <- ev
}

func (r *Recorder) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// drainLoop batches events and hands them to the sink: early flush at
// flushSize, ticker flush otherwise, full drain on shutdown.
func (r *Recorder) drainLoop() {
	defer r.wg.Done()

	batch := make([]Event, 0, r.flushSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		r.sink(batch)
		batch = make([]Event, 0, r.flushSize)
	}

	for {
		select {
		case ev, ok := <-r.events.Out:
			if !ok {
				flush()
				return
			}
			batch = append(batch, ev)
			if len(batch) >= r.flushSize {
				flush()
			}

		case <-r.flushTicker.C:
			flush()

		case <-r.done:
			// Close has already closed the In side, so Out drains and
			// closes once the channel's buffer is empty. Flush everything
			// that was published before shutdown.
			r.flushRemaining(batch)
			return
		}
	}
}

// flushRemaining drains Out after the In side is closed and hands the
// events to the sink in flushSize batches.
func (r *Recorder) flushRemaining(batch []Event) {
	for ev := range r.events.Out {
		batch = append(batch, ev)
		if len(batch) >= r.flushSize {
			r.sink(batch)
			batch = make([]Event, 0, r.flushSize)
		}
	}
	if len(batch) > 0 {
		r.sink(batch)
	}
}

// logBatch is the default sink.
func (r *Recorder) logBatch(batch []Event) {
	r.logger.Debug("mutation batch",
		zap.String("recorder", r.name),
		zap.Int("events", len(batch)),
		zap.String("first_key", batch[0].Key),
		zap.String("first_op", string(batch[0].Op)),
	)
}
