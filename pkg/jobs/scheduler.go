package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const jobTimeout = 5 * time.Minute

// Job represents a background job.
type Job interface {
	Name() string
	Execute(ctx context.Context) error
}

// Scheduler runs jobs on fixed intervals until stopped.
type Scheduler struct {
	jobs    map[string]*scheduledJob
	mu      sync.RWMutex
	logger  *slog.Logger
	running bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

type scheduledJob struct {
	job      Job
	interval time.Duration
}

// NewScheduler creates a new job scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		jobs:   make(map[string]*scheduledJob),
		logger: logger,
	}
}

// AddJob adds a job to the scheduler. Non-positive intervals disable the job.
func (s *Scheduler) AddJob(job Job, interval time.Duration) {
	if interval <= 0 {
		s.logger.Info("job disabled", slog.String("name", job.Name()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.Name()] = &scheduledJob{job: job, interval: interval}
}

// Start launches every job. Jobs stop when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	jobs := make([]*scheduledJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.Unlock()

	for _, scheduled := range jobs {
		s.wg.Add(1)
		go s.runJob(ctx, scheduled)
	}

	s.logger.Info("job scheduler started", slog.Int("jobs", len(jobs)))
}

func (s *Scheduler) runJob(ctx context.Context, scheduled *scheduledJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(scheduled.interval)
	defer ticker.Stop()

	s.logger.Info("starting job",
		slog.String("name", scheduled.job.Name()),
		slog.Duration("interval", scheduled.interval),
	)

	for {
		select {
		case <-ticker.C:
			s.executeJob(ctx, scheduled.job)
		case <-ctx.Done():
			return
		}
	}
}

// executeJob executes a single job with panic recovery and a time budget.
func (s *Scheduler) executeJob(parent context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panic", slog.String("name", job.Name()), slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Execute(ctx); err != nil {
		s.logger.Error("job execution failed",
			slog.String("name", job.Name()),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return
	}
	s.logger.Debug("job completed", slog.String("name", job.Name()), slog.Duration("duration", time.Since(start)))
}

// Stop cancels all jobs and waits for running executions to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("job scheduler stopped")
}

// RunOnce executes a registered job immediately.
func (s *Scheduler) RunOnce(ctx context.Context, jobName string) error {
	s.mu.RLock()
	scheduled, exists := s.jobs[jobName]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job not found: %s", jobName)
	}

	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	return scheduled.job.Execute(ctx)
}
