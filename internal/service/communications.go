package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"judicial_capture/internal/config"
	"judicial_capture/internal/domain"
	"judicial_capture/internal/ingest"
	"judicial_capture/internal/reconcile"
	"judicial_capture/internal/source/comunica"
)

type CommunicationRequest struct {
	Credential domain.Credential
	// From overrides the cursor-derived start of the search window.
	From time.Time
}

type SyncResult struct {
	Run   *domain.CaptureRun
	Links reconcile.LinkSummary
}

// CommunicationSyncService pulls the communications addressed to an
// attorney from the national API, stores them and links them to pending
// items captured from the court panels.
type CommunicationSyncService struct {
	recorder     runRecorder
	source       CommunicationSource
	ingest       Ingestor
	reconciler   Reconciler
	comms        CommunicationStore
	syncState    SyncStateStore
	logger       *slog.Logger
	config       config.SyncConfig
	itemsPerPage int
	now          func() time.Time
}

func NewCommunicationSyncService(
	runs CaptureRunStore,
	source CommunicationSource,
	ingest Ingestor,
	reconciler Reconciler,
	comms CommunicationStore,
	syncState SyncStateStore,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.SyncConfig,
	itemsPerPage int,
) *CommunicationSyncService {
	return &CommunicationSyncService{
		recorder:     runRecorder{runs: runs, publisher: publisher, now: time.Now},
		source:       source,
		ingest:       ingest,
		reconciler:   reconciler,
		comms:        comms,
		syncState:    syncState,
		logger:       logger.With("source", "comunica"),
		config:       cfg,
		itemsPerPage: itemsPerPage,
		now:          time.Now,
	}
}

func syncStateKey(cred domain.Credential) string {
	return "comunica:" + cred.OAB + "/" + cred.UF
}

// Sync searches the window since the last successful sync, never reaching
// further back than the configured historical days. The cursor only moves
// when the whole window was read.
func (s *CommunicationSyncService) Sync(ctx context.Context, req CommunicationRequest) (*SyncResult, error) {
	cred := req.Credential

	run, err := s.recorder.begin(ctx, domain.CaptureCommunications, cred)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(
		"run_id", run.ID,
		"capture_type", domain.CaptureCommunications,
		"attorney_id", cred.AttorneyID,
		"oab", cred.OAB,
		"uf", cred.UF,
	)

	result := &SyncResult{}
	summary, err := s.sync(ctx, logger, req, result)
	result.Run, err = s.recorder.finish(ctx, logger, run, summary, err)
	return result, err
}

func (s *CommunicationSyncService) sync(ctx context.Context, logger *slog.Logger, req CommunicationRequest, result *SyncResult) (domain.RunSummary, error) {
	var summary domain.RunSummary
	cred := req.Credential

	if cred.OAB == "" || cred.UF == "" {
		return summary, fmt.Errorf("credential %q has no OAB registration", cred.ID)
	}

	state, err := s.syncState.Get(ctx, syncStateKey(cred))
	if err != nil {
		return summary, fmt.Errorf("get sync state: %w", err)
	}

	now := s.now()
	from := s.windowStart(now, state.LastSyncedAt, req.From)
	logger.Info("starting communication sync", "from", from.Format(time.DateOnly), "to", now.Format(time.DateOnly))

	params := comunica.SearchParams{
		OAB:          cred.OAB,
		UF:           cred.UF,
		From:         from,
		To:           now,
		ItemsPerPage: s.itemsPerPage,
	}

	err = s.source.WalkSearch(ctx, params, func(items []comunica.Item) error {
		comms := make([]domain.Communication, 0, len(items))
		for _, item := range items {
			comms = append(comms, communicationFromItem(logger, item))
		}
		pageSummary, _ := s.ingest.Communications(ctx, comms)
		summary.Add(pageSummary)
		return nil
	})
	if err != nil {
		var rateErr *comunica.RateLimitedError
		if errors.As(err, &rateErr) {
			logger.Warn("communication budget exhausted", "reset_at", rateErr.Status.ResetAt)
		}
		return summary, fmt.Errorf("search communications: %w", err)
	}

	links, err := s.ReconcileUnlinked(ctx, startOfDay(now.AddDate(0, 0, -s.config.MaxHistoricalDays)))
	if err != nil {
		return summary, err
	}
	result.Links = links

	state.SourceKey = syncStateKey(cred)
	state.LastSyncedAt = now
	state.TotalSynced += int64(summary.Inserted)
	if err := s.syncState.Update(ctx, state); err != nil {
		return summary, fmt.Errorf("update sync state: %w", err)
	}

	return summary, nil
}

func (s *CommunicationSyncService) windowStart(now, lastSynced, override time.Time) time.Time {
	floor := startOfDay(now.AddDate(0, 0, -s.config.MaxHistoricalDays))

	from := floor
	switch {
	case !override.IsZero():
		from = startOfDay(override)
	case !lastSynced.IsZero():
		// the day of the cursor is read again; hashes absorb the overlap
		from = startOfDay(lastSynced)
	}

	if from.Before(floor) {
		return floor
	}
	return from
}

// ReconcileUnlinked links every stored communication made available since
// the given time that is not yet attached to a pending item. Communications
// whose pending item shows up in a later capture get linked on a later sync.
func (s *CommunicationSyncService) ReconcileUnlinked(ctx context.Context, since time.Time) (reconcile.LinkSummary, error) {
	comms, err := s.comms.ListUnlinked(ctx, since, s.config.ReconcileBatch)
	if err != nil {
		return reconcile.LinkSummary{}, fmt.Errorf("list unlinked communications: %w", err)
	}
	if len(comms) == 0 {
		return reconcile.LinkSummary{}, nil
	}

	summary, links := s.reconciler.Reconcile(ctx, comms)

	if s.recorder.publisher != nil {
		for _, link := range links {
			if err := s.recorder.publisher.PublishLink(ctx, link); err != nil {
				s.logger.Warn("publish link event failed", "hash", link.Hash, "error", err)
			}
		}
	}

	s.logger.Info("reconciliation completed",
		"candidates", len(comms),
		"linked", summary.Linked,
		"unmatched", summary.Unmatched,
		"ambiguous", summary.Ambiguous,
		"errored", summary.Errored,
	)

	return summary, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.In(ingest.CourtLocation)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ingest.CourtLocation)
}
