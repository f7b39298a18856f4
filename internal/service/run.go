package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"judicial_capture/internal/domain"
)

// runRecorder drives a CaptureRun through pending → in_progress →
// completed|failed and announces the terminal state.
type runRecorder struct {
	runs      CaptureRunStore
	publisher Publisher
	now       func() time.Time
}

func (r *runRecorder) begin(ctx context.Context, captureType domain.CaptureType, cred domain.Credential) (*domain.CaptureRun, error) {
	run := &domain.CaptureRun{
		ID:           uuid.NewString(),
		Type:         captureType,
		Status:       domain.RunPending,
		CredentialID: cred.ID,
		AttorneyID:   cred.AttorneyID,
		Tribunal:     cred.Tribunal,
		Instance:     cred.Instance,
	}
	if err := r.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	startedAt := r.now()
	if err := r.runs.Start(ctx, run.ID, startedAt); err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	run.Status = domain.RunInProgress
	run.StartedAt = &startedAt

	return run, nil
}

// finish records the outcome. Records persisted before a failure stay in
// the store; the run is still marked failed.
func (r *runRecorder) finish(ctx context.Context, logger *slog.Logger, run *domain.CaptureRun, summary domain.RunSummary, runErr error) (*domain.CaptureRun, error) {
	// the run must be closed even if the caller's context is gone
	ctx = context.WithoutCancel(ctx)
	finishedAt := r.now()
	run.FinishedAt = &finishedAt

	if runErr != nil {
		msg := runErr.Error()
		run.Status = domain.RunFailed
		run.Error = &msg

		logger.Error("capture failed",
			"error", runErr,
			"inserted_before_failure", summary.Inserted,
			"discarded_before_failure", summary.Discarded,
		)

		if err := r.runs.Fail(ctx, run.ID, msg, finishedAt); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("record failure: %w", err))
		}
		r.publish(ctx, logger, run)
		return run, fmt.Errorf("%s run %s: %w", run.Type, run.ID, runErr)
	}

	run.Status = domain.RunCompleted
	run.Summary = &summary

	if err := r.runs.Complete(ctx, run.ID, summary, finishedAt); err != nil {
		return run, fmt.Errorf("complete run: %w", err)
	}

	logger.Info("capture completed",
		"inserted", summary.Inserted,
		"discarded", summary.Discarded,
		"errored", summary.Errored,
		"total_processed", summary.TotalProcessed,
		"duration", finishedAt.Sub(*run.StartedAt),
	)

	r.publish(ctx, logger, run)
	return run, nil
}

func (r *runRecorder) publish(ctx context.Context, logger *slog.Logger, run *domain.CaptureRun) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishRun(ctx, run); err != nil {
		logger.Warn("publish run event failed", "error", err)
	}
}
