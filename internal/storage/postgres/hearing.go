package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"judicial_capture/internal/domain"
)

type HearingStore struct {
	db *sqlx.DB
}

func NewHearingStore(db *sqlx.DB) *HearingStore {
	return &HearingStore{db: db}
}

func (s *HearingStore) InsertHearing(ctx context.Context, h *domain.Hearing) (int64, error) {
	query := `
		INSERT INTO audiencias (
			external_id, case_external_id, attorney_id, tribunal, instance, case_number,
			org_unit, kind, status_code, room, plaintiff_name, defendant_name,
			virtual_url, starts_at, ends_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		h.ExternalID,
		h.CaseExternalID,
		h.AttorneyID,
		h.Tribunal,
		h.Instance,
		h.CaseNumber,
		h.OrgUnit,
		h.Kind,
		h.StatusCode,
		h.Room,
		h.PlaintiffName,
		h.DefendantName,
		h.VirtualURL,
		h.StartsAt,
		h.EndsAt,
	).Scan(&id)
	if err != nil {
		return 0, mapInsertError(err)
	}
	return id, nil
}
