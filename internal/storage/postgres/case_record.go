package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"judicial_capture/internal/domain"
)

// CaseRecordStore keeps docket cases in processos and pending items in
// expedientes. Both tables carry the natural-key unique constraint.
type CaseRecordStore struct {
	db *sqlx.DB
}

func NewCaseRecordStore(db *sqlx.DB) *CaseRecordStore {
	return &CaseRecordStore{db: db}
}

func (s *CaseRecordStore) InsertCaseRecord(ctx context.Context, r *domain.CaseRecord) (int64, error) {
	if r.IsPending() {
		return s.insertPending(ctx, r)
	}
	return s.insertCase(ctx, r)
}

func (s *CaseRecordStore) insertCase(ctx context.Context, r *domain.CaseRecord) (int64, error) {
	query := `
		INSERT INTO processos (
			external_id, attorney_id, tribunal, instance, case_number, case_number_digits,
			origin, org_unit, case_class, plaintiff_name, plaintiff_count,
			defendant_name, defendant_count, status_code, confidential,
			filed_at, archived_at, next_hearing_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		r.ExternalID,
		r.AttorneyID,
		r.Tribunal,
		r.Instance,
		r.CaseNumber,
		r.CaseNumberDigits,
		r.Origin,
		r.OrgUnit,
		r.CaseClass,
		r.PlaintiffName,
		r.PlaintiffCount,
		r.DefendantName,
		r.DefendantCount,
		r.StatusCode,
		r.Confidential,
		r.FiledAt,
		r.ArchivedAt,
		r.NextHearingAt,
	).Scan(&id)
	if err != nil {
		return 0, mapInsertError(err)
	}
	return id, nil
}

func (s *CaseRecordStore) insertPending(ctx context.Context, r *domain.CaseRecord) (int64, error) {
	query := `
		INSERT INTO expedientes (
			external_id, attorney_id, tribunal, instance, case_number, case_number_digits,
			org_unit, case_class, plaintiff_name, plaintiff_count,
			defendant_name, defendant_count, status_code, confidential,
			filed_at, next_hearing_at, notice_at, deadline_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			COALESCE($19, now())
		)
		RETURNING id`

	var createdAt any
	if !r.CreatedAt.IsZero() {
		createdAt = r.CreatedAt
	}

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		r.ExternalID,
		r.AttorneyID,
		r.Tribunal,
		r.Instance,
		r.CaseNumber,
		r.CaseNumberDigits,
		r.OrgUnit,
		r.CaseClass,
		r.PlaintiffName,
		r.PlaintiffCount,
		r.DefendantName,
		r.DefendantCount,
		r.StatusCode,
		r.Confidential,
		r.FiledAt,
		r.NextHearingAt,
		r.NoticeAt,
		r.DeadlineAt,
		createdAt,
	).Scan(&id)
	if err != nil {
		return 0, mapInsertError(err)
	}
	return id, nil
}

// FindPendingByNumber returns the pending items whose normalized case
// number equals digits.
func (s *CaseRecordStore) FindPendingByNumber(ctx context.Context, digits string) ([]domain.CaseRecord, error) {
	query := `
		SELECT id, external_id, attorney_id, tribunal, instance, case_number, case_number_digits,
			'expediente' AS origin, org_unit, case_class, plaintiff_name, plaintiff_count,
			defendant_name, defendant_count, status_code, confidential,
			filed_at, next_hearing_at, notice_at, deadline_at, created_at
		FROM expedientes
		WHERE case_number_digits = $1
		ORDER BY id`

	var records []domain.CaseRecord
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &records, query, digits); err != nil {
		return nil, fmt.Errorf("select pending items: %w", err)
	}
	return records, nil
}
