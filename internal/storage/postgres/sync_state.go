package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"judicial_capture/internal/domain"
)

type SyncStateStore struct {
	db *sqlx.DB
}

func NewSyncStateStore(db *sqlx.DB) *SyncStateStore {
	return &SyncStateStore{db: db}
}

func (s *SyncStateStore) Get(ctx context.Context, sourceKey string) (*domain.SyncState, error) {
	var state domain.SyncState
	query := `
		SELECT id, source_key, last_synced_at, total_synced
		FROM sync_state
		WHERE source_key = $1`

	err := s.db.GetContext(ctx, &state, query, sourceKey)
	if errors.Is(err, sql.ErrNoRows) {
		// never synced
		return &domain.SyncState{SourceKey: sourceKey}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *SyncStateStore) Update(ctx context.Context, state *domain.SyncState) error {
	query := `
		INSERT INTO sync_state (source_key, last_synced_at, total_synced)
		VALUES ($1, $2, $3)
		ON CONFLICT (source_key) DO UPDATE SET
			last_synced_at = EXCLUDED.last_synced_at,
			total_synced = EXCLUDED.total_synced`

	_, err := s.db.ExecContext(ctx, query,
		state.SourceKey,
		state.LastSyncedAt,
		state.TotalSynced,
	)
	return err
}
