// Package routine provides panic-safe goroutine execution.
//
// A panic inside a bare `go func()` takes down the whole process; the
// helpers here recover, log the panic with its stack, and let the rest of
// the process keep running.
package routine

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
)

// Runner executes functions in goroutines with panic recovery and lets
// the owner wait for all of them to finish.
type Runner interface {
	// Go runs fn in a new goroutine with panic recovery.
	Go(fn func())

	// GoWithContext runs fn with ctx in a new goroutine with panic recovery.
	GoWithContext(ctx context.Context, fn func(ctx context.Context))

	// GoNamed runs fn in a new goroutine; name appears in panic logs.
	GoNamed(name string, fn func())

	// GoNamedWithContext combines GoNamed and GoWithContext.
	GoNamedWithContext(ctx context.Context, name string, fn func(ctx context.Context))

	// Wait blocks until every goroutine started by this runner returns.
	Wait()
}

type defaultRunner struct {
	log logger.Logger
	wg  sync.WaitGroup
}

// New creates a Runner that logs recovered panics to log.
func New(log logger.Logger) Runner {
	return &defaultRunner{log: log}
}

func (r *defaultRunner) Go(fn func()) {
	r.GoNamed("", fn)
}

func (r *defaultRunner) GoWithContext(ctx context.Context, fn func(ctx context.Context)) {
	r.GoNamedWithContext(ctx, "", fn)
}

func (r *defaultRunner) GoNamed(name string, fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer recoverPanic(r.log, name)
		fn()
	}()
}

func (r *defaultRunner) GoNamedWithContext(ctx context.Context, name string, fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer recoverPanic(r.log, name)
		fn(ctx)
	}()
}

func (r *defaultRunner) Wait() {
	r.wg.Wait()
}

// Go runs fn in a new goroutine with panic recovery, logging to log.
func Go(log logger.Logger, fn func()) {
	go func() {
		defer recoverPanic(log, "")
		fn()
	}()
}

// GoWithContext runs fn with ctx in a new goroutine with panic recovery.
func GoWithContext(ctx context.Context, log logger.Logger, fn func(ctx context.Context)) {
	go func() {
		defer recoverPanic(log, "")
		fn(ctx)
	}()
}

// GoNamed runs fn in a new goroutine; name appears in panic logs.
func GoNamed(log logger.Logger, name string, fn func()) {
	go func() {
		defer recoverPanic(log, name)
		fn()
	}()
}

// GoNamedWithContext runs a named fn with ctx in a new goroutine.
func GoNamedWithContext(ctx context.Context, log logger.Logger, name string, fn func(ctx context.Context)) {
	go func() {
		defer recoverPanic(log, name)
		fn(ctx)
	}()
}

// recoverPanic logs a recovered panic with its stack trace.
func recoverPanic(log logger.Logger, name string) {
	if rec := recover(); rec != nil {
		fields := []zap.Field{
			zap.Any("panic", rec),
			zap.String("stack", string(debug.Stack())),
		}
		if name != "" {
			fields = append([]zap.Field{zap.String("routine", name)}, fields...)
		}
		log.Error("goroutine panicked", fields...)
	}
}
