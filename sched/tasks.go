package sched

import (
	"context"

	"github.com/dailyyoga/memkit/logger"
	"github.com/dailyyoga/memkit/store"
	"go.uber.org/zap"
)

// RefreshTask returns a Task that triggers one syncer refresh per run.
// Schedule it instead of Syncer.Start when refreshes should line up
// with a cron spec rather than a fixed interval.
func RefreshTask(name string, syncer store.Syncer) Task {
	return TaskFunc(name, func(ctx context.Context) error {
		return syncer.Refresh(ctx)
	})
}

// StatsTask returns a Task that logs the store's entry count.
func StatsTask(name string, log logger.Logger, s store.Store) Task {
	return TaskFunc(name, func(ctx context.Context) error {
		log.Info("store stats",
			zap.String("task", name),
			zap.Int("entries", s.Len()),
		)
		return nil
	})
}
