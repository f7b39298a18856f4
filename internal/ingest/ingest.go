// Package ingest inserts captured records and classifies each outcome.
// Deduplication relies on the store's uniqueness constraints rather than
// on existence checks, so overlapping concurrent runs stay correct.
package ingest

import (
	"context"
	"errors"
	"log/slog"

	"judicial_capture/internal/domain"
)

type CaseStore interface {
	InsertCaseRecord(ctx context.Context, record *domain.CaseRecord) (int64, error)
}

type HearingStore interface {
	InsertHearing(ctx context.Context, hearing *domain.Hearing) (int64, error)
}

type CommunicationStore interface {
	InsertCommunication(ctx context.Context, comm *domain.Communication) (int64, error)
}

type Ingestor struct {
	cases    CaseStore
	hearings HearingStore
	comms    CommunicationStore
	logger   *slog.Logger
}

func New(cases CaseStore, hearings HearingStore, comms CommunicationStore, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		cases:    cases,
		hearings: hearings,
		comms:    comms,
		logger:   logger.With("component", "ingest"),
	}
}

func (i *Ingestor) CaseRecords(ctx context.Context, records []domain.CaseRecord) domain.RunSummary {
	summary, _ := insertAll(ctx, i.logger, records,
		(*domain.CaseRecord).Validate,
		i.cases.InsertCaseRecord,
		func(r *domain.CaseRecord, id int64) { r.ID = id },
	)
	return summary
}

func (i *Ingestor) Hearings(ctx context.Context, hearings []domain.Hearing) domain.RunSummary {
	summary, _ := insertAll(ctx, i.logger, hearings,
		(*domain.Hearing).Validate,
		i.hearings.InsertHearing,
		func(h *domain.Hearing, id int64) { h.ID = id },
	)
	return summary
}

// Communications also returns the communications that were new, with their
// ids set, so they can be reconciled.
func (i *Ingestor) Communications(ctx context.Context, comms []domain.Communication) (domain.RunSummary, []domain.Communication) {
	return insertAll(ctx, i.logger, comms,
		(*domain.Communication).Validate,
		i.comms.InsertCommunication,
		func(c *domain.Communication, id int64) { c.ID = id },
	)
}

func insertAll[T any](
	ctx context.Context,
	logger *slog.Logger,
	records []T,
	validate func(*T) error,
	insert func(context.Context, *T) (int64, error),
	setID func(*T, int64),
) (domain.RunSummary, []T) {
	var (
		summary  domain.RunSummary
		inserted []T
	)

	for idx := range records {
		rec := &records[idx]
		summary.TotalProcessed++

		if err := validate(rec); err != nil {
			summary.Errored++
			logger.Warn("record rejected", "index", idx, "error", err)
			continue
		}

		id, err := insert(ctx, rec)
		switch {
		case err == nil:
			setID(rec, id)
			summary.Inserted++
			inserted = append(inserted, *rec)
		case errors.Is(err, domain.ErrDuplicate):
			summary.Discarded++
		default:
			summary.Errored++
			logger.Error("insert failed", "index", idx, "error", err)
		}
	}

	return summary, inserted
}
