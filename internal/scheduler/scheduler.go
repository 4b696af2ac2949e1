// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named unit of periodic work.
type Job struct {
	Name     string
	Schedule string // six-field cron expression, seconds first
	Run      func(ctx context.Context) error
}

// Scheduler wraps robfig/cron with logging and per-job panic recovery.
type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
}

func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		log:  logger,
	}
}

// Add registers a job. The job runs with a background context so it is
// not cut short by an in-flight request lifecycle.
func (s *Scheduler) Add(job Job) error {
	_, err := s.cron.AddFunc(job.Schedule, func() {
		start := time.Now()
		s.log.Info("job started", "job", job.Name)
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("job panicked", "job", job.Name, "panic", rec)
			}
		}()
		if err := job.Run(context.Background()); err != nil {
			s.log.Error("job failed", "job", job.Name, "error", err)
			return
		}
		s.log.Info("job finished", "job", job.Name, "duration", time.Since(start).String())
	})
	return err
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
