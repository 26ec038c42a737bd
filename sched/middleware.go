package sched

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/dailyyoga/memkit/logger"
	"github.com/dailyyoga/memkit/routine"
	"go.uber.org/zap"
)

// Middleware wraps a Task with additional behavior.
type Middleware func(Task) Task

// applyMiddlewares applies mws from last to first, so the first
// middleware in the list runs outermost:
// applyMiddlewares(task, mw1, mw2) == mw1(mw2(task)).
func applyMiddlewares(t Task, mws ...Middleware) Task {
	for i := len(mws) - 1; i >= 0; i-- {
		t = mws[i](t)
	}
	return t
}

// funcTask adapts a function to Task; also the base for middleware wrappers.
type funcTask struct {
	name string
	exec func(ctx context.Context) error
}

// TaskFunc builds a Task from a function.
func TaskFunc(name string, exec func(ctx context.Context) error) Task {
	return &funcTask{name: name, exec: exec}
}

func (f *funcTask) Name() string {
	return f.name
}

func (f *funcTask) Run(ctx context.Context) error {
	return f.exec(ctx)
}

// recoveryMiddleware converts a task panic into an error so one bad run
// cannot take the scheduler down.
func recoveryMiddleware(log logger.Logger) Middleware {
	return func(next Task) Task {
		return &funcTask{
			name: next.Name(),
			exec: func(ctx context.Context) (err error) {
				defer func() {
					if r := recover(); r != nil {
						log.Error("task panicked",
							zap.String("task", next.Name()),
							zap.Any("panic", r),
							zap.String("stack", string(debug.Stack())),
						)
						err = routine.ErrPanic(r)
					}
				}()
				return next.Run(ctx)
			},
		}
	}
}

// loggingMiddleware logs task start, finish, duration and errors.
func loggingMiddleware(log logger.Logger) Middleware {
	return func(next Task) Task {
		return &funcTask{
			name: next.Name(),
			exec: func(ctx context.Context) error {
				start := time.Now()
				log.Info("task started", zap.String("task", next.Name()))

				err := next.Run(ctx)

				duration := time.Since(start)
				if err != nil {
					log.Error("task failed",
						zap.String("task", next.Name()),
						zap.Duration("duration", duration),
						zap.Error(err),
					)
				} else {
					log.Info("task completed",
						zap.String("task", next.Name()),
						zap.Duration("duration", duration),
					)
				}
				return err
			},
		}
	}
}
