// Package jobs runs background work on cron schedules. The only job today is
// the periodic template auto-sync.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps a cron runner with named-job bookkeeping. A job that is
// still running when its next tick fires is skipped, not stacked.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	mu     sync.Mutex
	jobs   map[string]cron.EntryID
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	cronLog := cronZapLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cronLog),
			cron.Recover(cronLog),
		)),
		logger: logger,
		jobs:   make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("Starting job scheduler")
	s.cron.Start()
}

// Stop stops scheduling new runs. The returned context is done once every
// in-flight job has completed.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping job scheduler")
	return s.cron.Stop()
}

// AddJob registers a job under a unique name. cronExpr is a standard 5-field
// expression or a descriptor such as "@hourly" or "@every 6h".
func (s *Scheduler) AddJob(name string, cronExpr string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		start := time.Now()
		s.logger.Info("Running scheduled job", zap.String("job", name))
		job()
		s.logger.Info("Scheduled job finished",
			zap.String("job", name),
			zap.Duration("elapsed", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.logger.Info("Scheduled job registered",
		zap.String("job", name),
		zap.String("schedule", cronExpr))
	return nil
}

func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	s.cron.Remove(entryID)
	delete(s.jobs, name)
	s.logger.Info("Scheduled job removed", zap.String("job", name))
	return nil
}

// JobNames returns the names of all registered jobs.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

// cronZapLogger adapts zap to the cron.Logger interface so skip/recover
// events land in the application log instead of stderr.
type cronZapLogger struct {
	logger *zap.Logger
}

func (l cronZapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow("cron: "+msg, keysAndValues...)
}

func (l cronZapLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
