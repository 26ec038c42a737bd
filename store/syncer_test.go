package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewSyncer_Validation(t *testing.T) {
	log := newTestLogger(t)
	target := newTestStore(t)
	load := func(ctx context.Context) (map[string]string, error) { return nil, nil }

	if _, err := NewSyncer(log, &SyncerConfig{}, target, load); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := NewSyncer(log, &SyncerConfig{Name: "s"}, nil, load); err == nil {
		t.Error("expected error for nil target")
	}
	if _, err := NewSyncer(log, &SyncerConfig{Name: "s"}, target, nil); err == nil {
		t.Error("expected error for nil load func")
	}
	if _, err := NewSyncer(log, &SyncerConfig{Name: "s", MaxRetries: -1}, target, load); err == nil {
		t.Error("expected error for negative max retries")
	}
}

func TestSyncer_Refresh(t *testing.T) {
	target := newTestStore(t)
	target.Add("stale", "x")

	sy, err := NewSyncer(newTestLogger(t), &SyncerConfig{Name: "test"}, target, func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"a": "1", "b": "2"}, nil
	})
	if err != nil {
		t.Fatalf("NewSyncer failed: %v", err)
	}

	if err := sy.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if _, ok := target.Get("stale"); ok {
		t.Error("refresh should replace the previous mapping")
	}
	if got, _ := target.Get("a"); got != "1" {
		t.Errorf("expected a=1 after refresh, got %q", got)
	}
	if target.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", target.Len())
	}
}

func TestSyncer_NonRetryableFailsFast(t *testing.T) {
	var attempts atomic.Int32

	sy, err := NewSyncer(newTestLogger(t), &SyncerConfig{Name: "test", MaxRetries: 3}, newTestStore(t), func(ctx context.Context) (map[string]string, error) {
		attempts.Add(1)
		return nil, fmt.Errorf("schema mismatch")
	})
	if err != nil {
		t.Fatalf("NewSyncer failed: %v", err)
	}

	if err := sy.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if attempts.Load() != 1 {
		t.Errorf("non-retryable error must not be retried, got %d attempts", attempts.Load())
	}
}

func TestSyncer_RetryableIsRetried(t *testing.T) {
	var attempts atomic.Int32

	sy, err := NewSyncer(newTestLogger(t), &SyncerConfig{Name: "test", MaxRetries: 2}, newTestStore(t), func(ctx context.Context) (map[string]string, error) {
		if attempts.Add(1) == 1 {
			return nil, fmt.Errorf("connection refused")
		}
		return map[string]string{"a": "1"}, nil
	})
	if err != nil {
		t.Fatalf("NewSyncer failed: %v", err)
	}

	if err := sy.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh should succeed on the second attempt: %v", err)
	}
	if attempts.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts.Load())
	}
}

func TestSyncer_RefreshCancelledDuringBackoff(t *testing.T) {
	sy, err := NewSyncer(newTestLogger(t), &SyncerConfig{Name: "test", MaxRetries: 3}, newTestStore(t), func(ctx context.Context) (map[string]string, error) {
		return nil, fmt.Errorf("connection refused")
	})
	if err != nil {
		t.Fatalf("NewSyncer failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := sy.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancellation should cut the backoff short, took %v", elapsed)
	}
}

func TestSyncer_StartStop(t *testing.T) {
	target := newTestStore(t)

	sy, err := NewSyncer(newTestLogger(t), &SyncerConfig{Name: "test", Interval: time.Hour}, target, func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"a": "1"}, nil
	})
	if err != nil {
		t.Fatalf("NewSyncer failed: %v", err)
	}

	if err := sy.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if got, _ := target.Get("a"); got != "1" {
		t.Error("Start must perform the initial refresh")
	}

	sy.Stop()
	sy.Stop() // idempotent
}

func TestSyncer_RestartAfterStop(t *testing.T) {
	var loads atomic.Int32
	target := newTestStore(t)

	sy, err := NewSyncer(newTestLogger(t), &SyncerConfig{Name: "test", Interval: time.Hour}, target, func(ctx context.Context) (map[string]string, error) {
		loads.Add(1)
		return map[string]string{"a": "1"}, nil
	})
	if err != nil {
		t.Fatalf("NewSyncer failed: %v", err)
	}

	if err := sy.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := sy.Start(); err != ErrSyncerRunning {
		t.Errorf("second Start on a running syncer should fail with ErrSyncerRunning, got %v", err)
	}
	sy.Stop()

	if err := sy.Start(); err != nil {
		t.Fatalf("restart after Stop failed: %v", err)
	}
	if loads.Load() != 2 {
		t.Errorf("each Start must perform its own initial refresh, got %d loads", loads.Load())
	}
	sy.Stop()
}

func TestSyncer_StartFailsOnInitialLoad(t *testing.T) {
	sy, err := NewSyncer(newTestLogger(t), &SyncerConfig{Name: "test"}, newTestStore(t), func(ctx context.Context) (map[string]string, error) {
		return nil, fmt.Errorf("no such table")
	})
	if err != nil {
		t.Fatalf("NewSyncer failed: %v", err)
	}

	if err := sy.Start(); err == nil {
		t.Fatal("Start must fail when the initial refresh fails")
	}
}
