package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"judicial_capture/internal/domain"
)

type fakeStore struct {
	pending map[string][]domain.CaseRecord
	links   map[int64]int64
	findErr error
}

func (f *fakeStore) FindPendingByNumber(_ context.Context, digits string) ([]domain.CaseRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.pending[digits], nil
}

func (f *fakeStore) LinkCommunication(_ context.Context, communicationID, expedienteID int64) (bool, error) {
	if _, ok := f.links[communicationID]; ok {
		return false, nil
	}
	f.links[communicationID] = expedienteID
	return true, nil
}

type inlineTx struct {
	calls int
}

func (tx *inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type LinkerTestSuite struct {
	suite.Suite
	store  *fakeStore
	tx     *inlineTx
	linker *Linker
}

func (s *LinkerTestSuite) SetupTest() {
	s.store = &fakeStore{
		pending: map[string][]domain.CaseRecord{},
		links:   map[int64]int64{},
	}
	s.tx = &inlineTx{}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.linker = NewLinker(s.store, s.tx, logger)
}

func TestLinkerTestSuite(t *testing.T) {
	suite.Run(t, new(LinkerTestSuite))
}

func (s *LinkerTestSuite) TestReconcile_SingleCandidateIsLinked() {
	s.store.pending["00012345620235030001"] = []domain.CaseRecord{
		{ID: 42, CaseNumber: "0001234-56.2023.5.03.0001", NoticeAt: ptr(date("2024-03-08"))},
	}

	comms := []domain.Communication{{
		ID:          7,
		Hash:        "abc",
		CaseNumber:  "0001234-56.2023.5.03.0001",
		AvailableAt: ptr(date("2024-03-10")),
	}}

	summary, links := s.linker.Reconcile(context.Background(), comms)

	s.Equal(LinkSummary{Linked: 1}, summary)
	s.Equal([]domain.Link{{CommunicationID: 7, ExpedienteID: 42, Hash: "abc"}}, links)
	s.Equal(int64(42), s.store.links[7])
	s.Require().NotNil(comms[0].ExpedienteID)
	s.Equal(int64(42), *comms[0].ExpedienteID)
}

func (s *LinkerTestSuite) TestReconcile_AmbiguousIsLeftUnlinked() {
	s.store.pending["00012345620235030001"] = []domain.CaseRecord{
		{ID: 1, NoticeAt: ptr(date("2024-03-08"))},
		{ID: 2, NoticeAt: ptr(date("2024-03-09"))},
	}

	comms := []domain.Communication{{
		ID:               7,
		CaseNumberDigits: "00012345620235030001",
		AvailableAt:      ptr(date("2024-03-10")),
	}}

	summary, links := s.linker.Reconcile(context.Background(), comms)

	s.Equal(LinkSummary{Ambiguous: 1}, summary)
	s.Empty(links)
	s.Empty(s.store.links)
	s.Nil(comms[0].ExpedienteID)
}

func (s *LinkerTestSuite) TestReconcile_OutsideWindowIsUnmatched() {
	s.store.pending["00012345620235030001"] = []domain.CaseRecord{
		{ID: 1, NoticeAt: ptr(date("2024-03-01"))},
	}

	comms := []domain.Communication{{
		ID:               7,
		CaseNumberDigits: "00012345620235030001",
		AvailableAt:      ptr(date("2024-03-10")),
	}}

	summary, _ := s.linker.Reconcile(context.Background(), comms)

	s.Equal(LinkSummary{Unmatched: 1}, summary)
}

func (s *LinkerTestSuite) TestReconcile_SkipsAlreadyLinkedAndIncomplete() {
	comms := []domain.Communication{
		{ID: 1, CaseNumberDigits: "1", AvailableAt: ptr(date("2024-03-10")), ExpedienteID: ptr(int64(5))},
		{ID: 2, CaseNumberDigits: "1"},
		{ID: 3, AvailableAt: ptr(date("2024-03-10"))},
	}

	summary, links := s.linker.Reconcile(context.Background(), comms)

	s.Equal(LinkSummary{Unmatched: 2}, summary)
	s.Empty(links)
	s.Equal(0, s.tx.calls)
}

func (s *LinkerTestSuite) TestReconcile_ConcurrentLinkCountsAsUnmatched() {
	s.store.pending["1"] = []domain.CaseRecord{{ID: 9, NoticeAt: ptr(date("2024-03-10"))}}
	s.store.links[7] = 9

	comms := []domain.Communication{{ID: 7, CaseNumberDigits: "1", AvailableAt: ptr(date("2024-03-10"))}}

	summary, links := s.linker.Reconcile(context.Background(), comms)

	s.Equal(LinkSummary{Unmatched: 1}, summary)
	s.Empty(links)
}

func (s *LinkerTestSuite) TestReconcile_StoreErrorIsIsolated() {
	s.store.findErr = errors.New("connection reset")

	comms := []domain.Communication{
		{ID: 1, CaseNumberDigits: "1", AvailableAt: ptr(date("2024-03-10"))},
		{ID: 2, CaseNumberDigits: "2", AvailableAt: ptr(date("2024-03-10"))},
	}

	summary, links := s.linker.Reconcile(context.Background(), comms)

	s.Equal(LinkSummary{Errored: 2}, summary)
	s.Empty(links)
	s.Equal(2, s.tx.calls)
}
