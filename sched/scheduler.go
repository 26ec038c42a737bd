package sched

import (
	"context"

	"github.com/dailyyoga/memkit/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type cronScheduler struct {
	cron        *cron.Cron
	middlewares []Middleware
	logger      logger.Logger
}

func newCronScheduler(log logger.Logger, mws ...Middleware) *cronScheduler {
	return &cronScheduler{
		cron:        cron.New(cron.WithSeconds()),
		middlewares: mws,
		logger:      log,
	}
}

func (s *cronScheduler) Start() {
	s.cron.Start()
}

func (s *cronScheduler) Close() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// taskJob adapts a wrapped Task to cron.Job.
type taskJob struct {
	task   Task
	logger logger.Logger
}

func (j *taskJob) Run() {
	if err := j.task.Run(context.Background()); err != nil {
		j.logger.Error("scheduled task failed",
			zap.String("task", j.task.Name()),
			zap.Error(err),
		)
	}
}

func (s *cronScheduler) AddTask(spec string, task Task) error {
	if task == nil {
		return ErrNilTask
	}

	job := &taskJob{
		task:   applyMiddlewares(task, s.middlewares...),
		logger: s.logger,
	}

	if _, err := s.cron.AddJob(spec, job); err != nil {
		return ErrInvalidSpec(task.Name(), spec, err)
	}

	s.logger.Info("task scheduled",
		zap.String("task", task.Name()),
		zap.String("spec", spec),
	)
	return nil
}
