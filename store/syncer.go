package store

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/dailyyoga/memkit/logger"
	"github.com/dailyyoga/memkit/routine"
	"go.uber.org/zap"
)

// LoadFunc loads the full key set from a source of record. It should
// respect ctx for cancellation and timeout.
type LoadFunc func(ctx context.Context) (map[string]string, error)

// Syncer keeps a Store refreshed from an external source. Each refresh
// loads the full key set and applies it with Store.Replace, so readers
// see either the previous set or the new one, never a partial load.
type Syncer interface {
	// Start performs an initial refresh and then begins the periodic
	// background refresh. Returns an error if the initial refresh fails,
	// or ErrSyncerRunning if the syncer is already running. A stopped
	// syncer may be started again.
	Start() error

	// Stop halts the periodic refresh. Safe to call more than once.
	Stop()

	// Refresh triggers one refresh now, with retries. The context bounds
	// the whole attempt sequence.
	Refresh(ctx context.Context) error
}

type storeSyncer struct {
	logger logger.Logger
	load   LoadFunc
	target Store

	name       string
	interval   time.Duration
	timeout    time.Duration
	maxRetries int

	mu      sync.Mutex // guards the start/stop lifecycle
	cancel  context.CancelFunc
	running bool
}

// NewSyncer creates a Syncer that refreshes target from load.
// Start must be called before the periodic refresh begins.
func NewSyncer(log logger.Logger, cfg *SyncerConfig, target Store, load LoadFunc) (Syncer, error) {
	if cfg == nil {
		cfg = DefaultSyncerConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if target == nil || load == nil {
		return nil, ErrInvalidConfig
	}

	return &storeSyncer{
		logger:     log,
		load:       load,
		target:     target,
		name:       cfg.Name,
		interval:   cfg.Interval,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
	}, nil
}

func (sy *storeSyncer) Start() error {
	sy.mu.Lock()
	defer sy.mu.Unlock()
	if sy.running {
		return ErrSyncerRunning
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Initial load, so callers never see an unpopulated store after Start.
	if err := sy.Refresh(ctx); err != nil {
		cancel()
		return err
	}

	sy.cancel = cancel
	sy.running = true

	routine.GoNamedWithContext(ctx, sy.logger, sy.name+"-refresh", func(ctx context.Context) {
		ticker := time.NewTicker(sy.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := sy.Refresh(ctx); err != nil {
					sy.logger.Error("periodic refresh failed",
						zap.String("syncer", sy.name),
						zap.Error(err),
					)
				}
			case <-ctx.Done():
				sy.logger.Info("stopping refresh loop", zap.String("syncer", sy.name))
				return
			}
		}
	})

	return nil
}

func (sy *storeSyncer) Stop() {
	sy.mu.Lock()
	defer sy.mu.Unlock()
	if !sy.running {
		return
	}
	sy.cancel()
	sy.cancel = nil
	sy.running = false
}

// Refresh loads with exponential-backoff retry: 1s, 2s, 4s, ...
func (sy *storeSyncer) Refresh(ctx context.Context) error {
	var lastErr error

	for attempt := 0; attempt < sy.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			sy.logger.Warn("retrying refresh after backoff",
				zap.String("syncer", sy.name),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ErrRefresh(ctx.Err())
			}
		}

		loadCtx, cancel := context.WithTimeout(ctx, sy.timeout)
		entries, err := sy.load(loadCtx)
		cancel()

		if err == nil {
			sy.target.Replace(entries)
			sy.logger.Debug("refresh completed",
				zap.String("syncer", sy.name),
				zap.Int("entries", len(entries)),
				zap.Int("attempt", attempt+1),
			)
			return nil
		}

		lastErr = err

		if !isRetryableError(err) {
			sy.logger.Error("non-retryable refresh error",
				zap.String("syncer", sy.name),
				zap.Error(err),
			)
			return ErrRefresh(err)
		}

		sy.logger.Warn("refresh failed, will retry",
			zap.String("syncer", sy.name),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", sy.maxRetries),
		)
	}

	return ErrRefresh(lastErr)
}

// isRetryableError reports whether err looks transient: timeouts and the
// usual connection-level failures.
func isRetryableError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := err.Error()
	retryable := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"timeout",
		"too many connections",
		"temporary failure",
		"network is unreachable",
	}
	for _, s := range retryable {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}
