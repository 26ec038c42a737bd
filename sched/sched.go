// Package sched runs periodic store maintenance on a cron schedule.
//
// It wraps robfig/cron with the module's logging and panic-recovery
// middleware and ships the two maintenance tasks the store kit needs:
// refreshing a synced store and reporting store size.
package sched

import (
	"context"

	"github.com/dailyyoga/memkit/logger"
)

// Task is one schedulable unit of maintenance work.
type Task interface {
	// Name returns the unique identifier for this task.
	Name() string
	// Run executes the task.
	Run(ctx context.Context) error
}

// Scheduler manages cron-driven tasks.
type Scheduler interface {
	// Start begins the scheduler.
	Start()
	// Close stops the scheduler and waits for running tasks to finish.
	Close()
	// AddTask schedules task under the given cron spec. The spec uses
	// the 6-field format with a seconds column, e.g. "0 */5 * * * *".
	AddTask(spec string, task Task) error
}

// NewScheduler creates a Scheduler. Every task is wrapped with panic
// recovery and start/finish logging; extra middlewares are applied
// after the built-in ones, outermost first.
func NewScheduler(log logger.Logger, mws ...Middleware) Scheduler {
	builtin := []Middleware{
		recoveryMiddleware(log),
		loggingMiddleware(log),
	}
	return newCronScheduler(log, append(builtin, mws...)...)
}
