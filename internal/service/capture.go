package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"judicial_capture/internal/config"
	"judicial_capture/internal/domain"
	"judicial_capture/internal/source/pje"
)

// PortalOpener turns a credential into a court client bound to its session.
type PortalOpener func(ctx context.Context, cred domain.Credential) (CourtPortal, error)

// NewPJEPortalOpener opens cookie sessions against the credential's origin.
func NewPJEPortalOpener(cfg config.PJEConfig, logger *slog.Logger) PortalOpener {
	return func(_ context.Context, cred domain.Credential) (CourtPortal, error) {
		cookies, err := pje.ParseCookies(cred.Cookie)
		if err != nil {
			return nil, err
		}
		session, err := pje.NewCookieClient(cred.Origin, cookies, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return pje.New(session, cfg.PageSize, logger.With("tribunal", cred.Tribunal)), nil
	}
}

type CaptureRequest struct {
	Type       domain.CaptureType
	Credential domain.Credential
	// HearingsFrom and HearingsTo bound the hearing window. Zero values mean
	// today through the configured days ahead.
	HearingsFrom time.Time
	HearingsTo   time.Time
}

type CaptureService struct {
	recorder runRecorder
	open     PortalOpener
	ingest   Ingestor
	logger   *slog.Logger
	config   config.PJEConfig
}

func NewCaptureService(
	runs CaptureRunStore,
	open PortalOpener,
	ingest Ingestor,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.PJEConfig,
) *CaptureService {
	return &CaptureService{
		recorder: runRecorder{runs: runs, publisher: publisher, now: time.Now},
		open:     open,
		ingest:   ingest,
		logger:   logger.With("source", "pje"),
		config:   cfg,
	}
}

// RunCapture performs one capture of the panel or hearing schedule. Each
// page is persisted as soon as it arrives, so a failure part way leaves the
// earlier pages stored and the run failed.
func (s *CaptureService) RunCapture(ctx context.Context, req CaptureRequest) (*domain.CaptureRun, error) {
	if req.Type == domain.CaptureCommunications {
		return nil, fmt.Errorf("capture type %q is handled by the communication sync", req.Type)
	}
	if _, err := domain.ParseCaptureType(string(req.Type)); err != nil {
		return nil, err
	}

	run, err := s.recorder.begin(ctx, req.Type, req.Credential)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(
		"run_id", run.ID,
		"capture_type", req.Type,
		"attorney_id", req.Credential.AttorneyID,
		"tribunal", req.Credential.Tribunal,
	)
	logger.Info("starting capture")

	summary, err := s.capture(ctx, logger, req)
	return s.recorder.finish(ctx, logger, run, summary, err)
}

func (s *CaptureService) capture(ctx context.Context, logger *slog.Logger, req CaptureRequest) (domain.RunSummary, error) {
	var summary domain.RunSummary

	portal, err := s.open(ctx, req.Credential)
	if err != nil {
		return summary, fmt.Errorf("open session: %w", err)
	}

	switch req.Type {
	case domain.CaptureGeneralDocket:
		err = s.captureCases(ctx, logger, portal, req.Credential, pje.GroupGeneralDocket, domain.OriginGeneralDocket, &summary)
	case domain.CaptureArchived:
		err = s.captureCases(ctx, logger, portal, req.Credential, pje.GroupArchived, domain.OriginArchived, &summary)
	case domain.CapturePending:
		err = s.captureCases(ctx, logger, portal, req.Credential, pje.GroupPending, domain.OriginPending, &summary)
	case domain.CaptureHearings:
		err = s.captureHearings(ctx, logger, portal, req, &summary)
	default:
		err = fmt.Errorf("unsupported capture type %q", req.Type)
	}

	return summary, err
}

func (s *CaptureService) captureCases(
	ctx context.Context,
	logger *slog.Logger,
	portal CourtPortal,
	cred domain.Credential,
	group pje.TaskGroup,
	origin domain.CaseOrigin,
	summary *domain.RunSummary,
) error {
	return portal.WalkCases(ctx, cred.AttorneyID, group, s.config.PageDelay, nil, func(page int, items []pje.CaseItem) error {
		records := make([]domain.CaseRecord, 0, len(items))
		for _, item := range items {
			records = append(records, caseRecordFromPanel(logger, item, cred, origin))
		}

		pageSummary := s.ingest.CaseRecords(ctx, records)
		summary.Add(pageSummary)

		logger.Debug("page persisted",
			"page", page,
			"inserted", pageSummary.Inserted,
			"discarded", pageSummary.Discarded,
		)
		return nil
	})
}

func (s *CaptureService) captureHearings(ctx context.Context, logger *slog.Logger, portal CourtPortal, req CaptureRequest, summary *domain.RunSummary) error {
	from, to := req.HearingsFrom, req.HearingsTo
	if from.IsZero() {
		from = time.Now()
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, s.config.HearingsDaysAhead)
	}

	q := pje.HearingQuery{
		From:   from,
		To:     to,
		Status: pje.HearingScheduled,
	}

	return portal.WalkHearings(ctx, q, s.config.PageDelay, func(page int, items []pje.HearingItem) error {
		hearings := make([]domain.Hearing, 0, len(items))
		for _, item := range items {
			hearings = append(hearings, hearingFromSchedule(logger, item, req.Credential))
		}

		pageSummary := s.ingest.Hearings(ctx, hearings)
		summary.Add(pageSummary)

		logger.Debug("page persisted",
			"page", page,
			"inserted", pageSummary.Inserted,
			"discarded", pageSummary.Discarded,
		)
		return nil
	})
}
