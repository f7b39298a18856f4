package scheduler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"judicial_capture/internal/domain"
)

// Runner performs one capture of the given type under a credential.
type Runner interface {
	Run(ctx context.Context, captureType domain.CaptureType, cred domain.Credential) (*domain.CaptureRun, error)
}

type Job struct {
	Type       domain.CaptureType
	Credential domain.Credential
}

type Config struct {
	Interval time.Duration
	// RunTimeout bounds each job on its own.
	RunTimeout time.Duration
	// MaxConcurrent caps how many credentials are processed at once.
	MaxConcurrent int
}

type Scheduler struct {
	runner Runner
	jobs   []Job
	config Config
	logger *slog.Logger
}

func NewScheduler(runner Runner, jobs []Job, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &Scheduler{
		runner: runner,
		jobs:   jobs,
		config: cfg,
		logger: logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.config.Interval, "jobs", len(s.jobs))

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs every job a single time and waits for all of them. Jobs of
// the same credential run one after another so a court session is never
// used by two traversals at once; different credentials run concurrently.
// A failed job is logged and not retried until the next tick.
func (s *Scheduler) RunOnce(ctx context.Context) {
	var g errgroup.Group
	g.SetLimit(s.config.MaxConcurrent)

	for _, jobs := range groupByCredential(s.jobs) {
		g.Go(func() error {
			for _, job := range jobs {
				if ctx.Err() != nil {
					return nil
				}
				s.runJob(ctx, job)
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	logger := s.logger.With("capture_type", job.Type, "credential", job.Credential.ID)

	run, err := s.runner.Run(ctx, job.Type, job.Credential)
	if err != nil {
		logger.Error("capture failed", "error", err)
		return
	}
	logger.Debug("capture finished", "run_id", run.ID, "status", run.Status)
}

func groupByCredential(jobs []Job) [][]Job {
	index := map[string]int{}
	var groups [][]Job
	for _, job := range jobs {
		i, ok := index[job.Credential.ID]
		if !ok {
			i = len(groups)
			index[job.Credential.ID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], job)
	}
	return groups
}
