package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"judicial_capture/internal/domain"
)

type Store interface {
	FindPendingByNumber(ctx context.Context, digits string) ([]domain.CaseRecord, error)
	LinkCommunication(ctx context.Context, communicationID, expedienteID int64) (bool, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type MatchResult int

const (
	NoMatch MatchResult = iota
	SingleMatch
	AmbiguousMatch
)

// LinkSummary counts reconciliation outcomes for a batch of communications.
type LinkSummary struct {
	Linked    int `json:"linked"`
	Unmatched int `json:"unmatched"`
	Ambiguous int `json:"ambiguous"`
	Errored   int `json:"errored"`
}

// SelectCandidate keeps the pending items whose tracked date (notice date,
// or creation date when the notice is unknown) falls on or after the match
// deadline of the availability date. A link is only returned when exactly
// one candidate remains.
func SelectCandidate(candidates []domain.CaseRecord, available time.Time) (domain.CaseRecord, MatchResult) {
	deadline := MatchDeadline(available)

	var matched []domain.CaseRecord
	for _, c := range candidates {
		tracked := c.CreatedAt
		if c.NoticeAt != nil {
			tracked = *c.NoticeAt
		}
		if !tracked.Before(deadline) {
			matched = append(matched, c)
		}
	}

	switch len(matched) {
	case 0:
		return domain.CaseRecord{}, NoMatch
	case 1:
		return matched[0], SingleMatch
	default:
		return domain.CaseRecord{}, AmbiguousMatch
	}
}

type Linker struct {
	store     Store
	txManager TransactionManager
	logger    *slog.Logger
}

func NewLinker(store Store, txManager TransactionManager, logger *slog.Logger) *Linker {
	return &Linker{
		store:     store,
		txManager: txManager,
		logger:    logger.With("component", "linker"),
	}
}

// Reconcile tries to link each unlinked communication to a pending item.
// Failures are counted per communication and never abort the batch.
func (l *Linker) Reconcile(ctx context.Context, comms []domain.Communication) (LinkSummary, []domain.Link) {
	var (
		summary LinkSummary
		links   []domain.Link
	)

	for i := range comms {
		comm := &comms[i]
		if comm.ExpedienteID != nil {
			continue
		}

		digits := comm.CaseNumberDigits
		if digits == "" {
			digits = Normalize(comm.CaseNumber)
		}
		if digits == "" || comm.AvailableAt == nil {
			summary.Unmatched++
			continue
		}

		var (
			result MatchResult
			link   domain.Link
		)
		err := l.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			candidates, err := l.store.FindPendingByNumber(txCtx, digits)
			if err != nil {
				return fmt.Errorf("find pending items: %w", err)
			}

			var chosen domain.CaseRecord
			chosen, result = SelectCandidate(candidates, *comm.AvailableAt)
			if result != SingleMatch {
				return nil
			}

			linked, err := l.store.LinkCommunication(txCtx, comm.ID, chosen.ID)
			if err != nil {
				return fmt.Errorf("link communication: %w", err)
			}
			if !linked {
				// linked by a concurrent run
				result = NoMatch
				return nil
			}
			link = domain.Link{CommunicationID: comm.ID, ExpedienteID: chosen.ID, Hash: comm.Hash}
			return nil
		})
		if err != nil {
			summary.Errored++
			l.logger.Warn("reconcile communication failed", "hash", comm.Hash, "error", err)
			continue
		}

		switch result {
		case SingleMatch:
			summary.Linked++
			comm.ExpedienteID = &link.ExpedienteID
			links = append(links, link)
		case AmbiguousMatch:
			summary.Ambiguous++
			l.logger.Warn("multiple pending items match communication, leaving unlinked",
				"hash", comm.Hash,
				"case_number", comm.CaseNumber,
			)
		default:
			summary.Unmatched++
		}
	}

	l.logger.Info("reconciliation finished",
		"linked", summary.Linked,
		"unmatched", summary.Unmatched,
		"ambiguous", summary.Ambiguous,
		"errored", summary.Errored,
	)

	return summary, links
}
