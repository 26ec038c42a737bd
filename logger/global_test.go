package logger

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func resetGlobal() {
	globalMu.Lock()
	globalLog = nil
	buildOnce = sync.Once{}
	globalMu.Unlock()
}

func TestGlobal_LazyDefaultBuild(t *testing.T) {
	resetGlobal()

	Info("triggers default build", zap.String("key", "value"))

	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLog == nil {
		t.Error("global logger should be built after first use")
	}
}

func TestGlobal_SetGlobalLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	resetGlobal()
	SetGlobalLogger(zap.New(core, zap.AddCallerSkip(1)))

	Info("info message")
	Warn("warn message")
	Error("error message")

	entries := recorded.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}
	want := []string{"info message", "warn message", "error message"}
	for i, entry := range entries {
		if entry.Message != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], entry.Message)
		}
	}
}

func TestGlobal_GetReturnsSameInstance(t *testing.T) {
	resetGlobal()

	first := GetGlobalLogger()
	if first == nil {
		t.Fatal("GetGlobalLogger returned nil")
	}
	if second := GetGlobalLogger(); second != first {
		t.Error("GetGlobalLogger should return the same instance")
	}
}

func TestGlobal_ConcurrentFirstUse(t *testing.T) {
	resetGlobal()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			Info("concurrent message", zap.Int("goroutine", id))
		}(i)
	}
	wg.Wait()
}

func TestNew_InstallsGlobal(t *testing.T) {
	resetGlobal()

	l, err := New(&Config{Level: "debug", Encoding: "json"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if l == nil {
		t.Fatal("New returned nil logger")
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLog == nil {
		t.Error("New should install the global logger")
	}
}
