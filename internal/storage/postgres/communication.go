package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"judicial_capture/internal/domain"
)

type CommunicationStore struct {
	db *sqlx.DB
}

func NewCommunicationStore(db *sqlx.DB) *CommunicationStore {
	return &CommunicationStore{db: db}
}

func (s *CommunicationStore) InsertCommunication(ctx context.Context, c *domain.Communication) (int64, error) {
	query := `
		INSERT INTO comunicacoes (
			external_id, hash, tribunal, channel, org_unit, instance, kind,
			case_number, case_number_digits, text, link, recipients,
			lead_plaintiff, lead_defendant, plaintiff_count, defendant_count, available_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		c.ExternalID,
		c.Hash,
		c.Tribunal,
		c.Channel,
		c.OrgUnit,
		c.Instance,
		c.Kind,
		c.CaseNumber,
		c.CaseNumberDigits,
		c.Text,
		c.Link,
		c.Recipients,
		c.LeadPlaintiff,
		c.LeadDefendant,
		c.PlaintiffCount,
		c.DefendantCount,
		c.AvailableAt,
	).Scan(&id)
	if err != nil {
		return 0, mapInsertError(err)
	}
	return id, nil
}

// ListUnlinked returns communications without a link that became available
// at or after since, oldest first.
func (s *CommunicationStore) ListUnlinked(ctx context.Context, since time.Time, limit int) ([]domain.Communication, error) {
	query := `
		SELECT id, external_id, hash, tribunal, channel, org_unit, instance, kind,
			case_number, case_number_digits, text, link, recipients,
			lead_plaintiff, lead_defendant, plaintiff_count, defendant_count,
			available_at, expediente_id, created_at
		FROM comunicacoes
		WHERE expediente_id IS NULL AND available_at >= $1
		ORDER BY available_at, id
		LIMIT $2`

	var comms []domain.Communication
	if err := s.db.SelectContext(ctx, &comms, query, since, limit); err != nil {
		return nil, fmt.Errorf("select unlinked communications: %w", err)
	}
	return comms, nil
}

// LinkCommunication sets the link only if none exists yet. It reports
// whether this call set it.
func (s *CommunicationStore) LinkCommunication(ctx context.Context, communicationID, expedienteID int64) (bool, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`UPDATE comunicacoes SET expediente_id = $2 WHERE id = $1 AND expediente_id IS NULL`,
		communicationID, expedienteID,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// LinkStore serves reconciliation, which reads expedientes and writes
// comunicacoes in the same transaction.
type LinkStore struct {
	*CaseRecordStore
	*CommunicationStore
}

func NewLinkStore(db *sqlx.DB) *LinkStore {
	return &LinkStore{
		CaseRecordStore:    NewCaseRecordStore(db),
		CommunicationStore: NewCommunicationStore(db),
	}
}
