package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"judicial_capture/internal/domain"
)

type CaptureRunStore struct {
	db *sqlx.DB
}

func NewCaptureRunStore(db *sqlx.DB) *CaptureRunStore {
	return &CaptureRunStore{db: db}
}

func (s *CaptureRunStore) Create(ctx context.Context, run *domain.CaptureRun) error {
	query := `
		INSERT INTO capture_runs (id, capture_type, status, credential_id, attorney_id, tribunal, instance)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return s.db.QueryRowxContext(ctx, query,
		run.ID,
		run.Type,
		run.Status,
		run.CredentialID,
		run.AttorneyID,
		run.Tribunal,
		run.Instance,
	).Scan(&run.CreatedAt)
}

// Start moves a pending run to in_progress.
func (s *CaptureRunStore) Start(ctx context.Context, id string, startedAt time.Time) error {
	return s.transition(ctx, id, domain.RunPending,
		`UPDATE capture_runs SET status = $3, started_at = $4 WHERE id = $1 AND status = $2`,
		domain.RunInProgress, startedAt,
	)
}

func (s *CaptureRunStore) Complete(ctx context.Context, id string, summary domain.RunSummary, finishedAt time.Time) error {
	return s.transition(ctx, id, domain.RunInProgress,
		`UPDATE capture_runs SET status = $3, finished_at = $4, summary = $5 WHERE id = $1 AND status = $2`,
		domain.RunCompleted, finishedAt, summary,
	)
}

func (s *CaptureRunStore) Fail(ctx context.Context, id string, message string, finishedAt time.Time) error {
	return s.transition(ctx, id, domain.RunInProgress,
		`UPDATE capture_runs SET status = $3, finished_at = $4, error = $5 WHERE id = $1 AND status = $2`,
		domain.RunFailed, finishedAt, message,
	)
}

func (s *CaptureRunStore) transition(ctx context.Context, id string, from domain.RunStatus, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, append([]any{id, from}, args...)...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: run %s is not %s", domain.ErrInvalidTransition, id, from)
	}
	return nil
}

func (s *CaptureRunStore) Get(ctx context.Context, id string) (*domain.CaptureRun, error) {
	var run domain.CaptureRun
	err := s.db.GetContext(ctx, &run, `
		SELECT id, capture_type, status, credential_id, attorney_id, tribunal, instance,
			started_at, finished_at, summary, error, created_at
		FROM capture_runs
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *CaptureRunStore) ListRecent(ctx context.Context, limit int) ([]domain.CaptureRun, error) {
	var runs []domain.CaptureRun
	err := s.db.SelectContext(ctx, &runs, `
		SELECT id, capture_type, status, credential_id, attorney_id, tribunal, instance,
			started_at, finished_at, summary, error, created_at
		FROM capture_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	return runs, err
}
