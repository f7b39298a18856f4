package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"net/url"
	"time"

	"judicial_capture/internal/domain"
	"judicial_capture/internal/reconcile"
	"judicial_capture/internal/source/comunica"
	"judicial_capture/internal/source/pje"
)

type CaptureRunStore interface {
	Create(ctx context.Context, run *domain.CaptureRun) error
	Start(ctx context.Context, id string, startedAt time.Time) error
	Complete(ctx context.Context, id string, summary domain.RunSummary, finishedAt time.Time) error
	Fail(ctx context.Context, id string, message string, finishedAt time.Time) error
}

type CourtPortal interface {
	WalkCases(ctx context.Context, attorneyID int64, group pje.TaskGroup, delay time.Duration, extra url.Values, fn func(page int, items []pje.CaseItem) error) error
	WalkHearings(ctx context.Context, q pje.HearingQuery, delay time.Duration, fn func(page int, items []pje.HearingItem) error) error
}

type CommunicationSource interface {
	WalkSearch(ctx context.Context, params comunica.SearchParams, fn func(items []comunica.Item) error) error
}

type Ingestor interface {
	CaseRecords(ctx context.Context, records []domain.CaseRecord) domain.RunSummary
	Hearings(ctx context.Context, hearings []domain.Hearing) domain.RunSummary
	Communications(ctx context.Context, comms []domain.Communication) (domain.RunSummary, []domain.Communication)
}

type Reconciler interface {
	Reconcile(ctx context.Context, comms []domain.Communication) (reconcile.LinkSummary, []domain.Link)
}

type CommunicationStore interface {
	ListUnlinked(ctx context.Context, since time.Time, limit int) ([]domain.Communication, error)
}

type SyncStateStore interface {
	Get(ctx context.Context, sourceKey string) (*domain.SyncState, error)
	Update(ctx context.Context, state *domain.SyncState) error
}

type Publisher interface {
	PublishRun(ctx context.Context, run *domain.CaptureRun) error
	PublishLink(ctx context.Context, link domain.Link) error
	Close() error
}
