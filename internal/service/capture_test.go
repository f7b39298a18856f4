package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"judicial_capture/internal/config"
	"judicial_capture/internal/domain"
	"judicial_capture/internal/ingest"
	"judicial_capture/internal/service/mocks"
	"judicial_capture/internal/source/pje"
	"judicial_capture/testdata/utils"
)

type CaptureServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	runs      *mocks.MockCaptureRunStore
	portal    *mocks.MockCourtPortal
	ingest    *mocks.MockIngestor
	publisher *mocks.MockPublisher

	service *CaptureService
	cfg     config.PJEConfig
	cred    domain.Credential
	logger  *slog.Logger
}

func (s *CaptureServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.runs = mocks.NewMockCaptureRunStore(s.ctrl)
	s.portal = mocks.NewMockCourtPortal(s.ctrl)
	s.ingest = mocks.NewMockIngestor(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.cfg = config.PJEConfig{
		PageSize:          100,
		PageDelay:         time.Millisecond,
		HearingsDaysAhead: 30,
	}
	s.cred = domain.Credential{
		ID:         "trt3-1g",
		AttorneyID: 12345,
		Tribunal:   "TRT3",
		Instance:   domain.InstanceTrial,
		Origin:     "https://pje.trt3.jus.br",
	}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	open := func(context.Context, domain.Credential) (CourtPortal, error) {
		return s.portal, nil
	}
	s.service = NewCaptureService(s.runs, open, s.ingest, s.publisher, s.logger, s.cfg)
}

func (s *CaptureServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCaptureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CaptureServiceTestSuite))
}

func (s *CaptureServiceTestSuite) expectRunStarted(captureType domain.CaptureType) {
	s.runs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.CaptureRun) error {
			s.NotEmpty(run.ID)
			s.Equal(captureType, run.Type)
			s.Equal(domain.RunPending, run.Status)
			s.Equal(int64(12345), run.AttorneyID)
			return nil
		},
	)
	s.runs.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
}

func (s *CaptureServiceTestSuite) TestRunCapture_NoRecords() {
	ctx := context.Background()
	s.expectRunStarted(domain.CaptureGeneralDocket)

	s.portal.EXPECT().
		WalkCases(ctx, int64(12345), pje.GroupGeneralDocket, s.cfg.PageDelay, gomock.Any(), gomock.Any()).
		Return(nil)

	s.runs.EXPECT().Complete(gomock.Any(), gomock.Any(), domain.RunSummary{}, gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.CaptureRun) error {
			s.Equal(domain.RunCompleted, run.Status)
			return nil
		},
	)

	run, err := s.service.RunCapture(ctx, CaptureRequest{Type: domain.CaptureGeneralDocket, Credential: s.cred})

	s.Require().NoError(err)
	s.Equal(domain.RunCompleted, run.Status)
	s.Require().NotNil(run.Summary)
	s.Equal(domain.RunSummary{}, *run.Summary)
	s.NotNil(run.FinishedAt)
	s.Nil(run.Error)
}

func (s *CaptureServiceTestSuite) TestRunCapture_PendingItemsAreMapped() {
	ctx := context.Background()
	s.expectRunStarted(domain.CapturePending)

	item := pje.CaseItem{
		ID:             987,
		OrgUnit:        " 1ª Vara do Trabalho de Belo Horizonte ",
		CaseNumber:     "0010001-11.2023.5.03.0001",
		PlaintiffName:  "Maria Silva",
		PlaintiffCount: 1,
		DefendantName:  "Empresa X",
		DefendantCount: 2,
		NoticeAt:       utils.Ptr("2024-03-10T09:30:00"),
		DeadlineAt:     utils.Ptr("not a date"),
		CreatedAt:      utils.Ptr("2024-03-09T08:00:00.000"),
	}

	s.portal.EXPECT().
		WalkCases(ctx, int64(12345), pje.GroupPending, s.cfg.PageDelay, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ pje.TaskGroup, _ time.Duration, _ url.Values, fn func(int, []pje.CaseItem) error) error {
			return fn(1, []pje.CaseItem{item})
		})

	s.ingest.EXPECT().CaseRecords(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, records []domain.CaseRecord) domain.RunSummary {
			s.Require().Len(records, 1)
			rec := records[0]
			s.Equal(int64(987), rec.ExternalID)
			s.Equal(domain.OriginPending, rec.Origin)
			s.Equal(domain.InstanceTrial, rec.Instance)
			s.Equal("TRT3", rec.Tribunal)
			s.Equal("00100011120235030001", rec.CaseNumberDigits)
			s.Equal("1ª Vara do Trabalho de Belo Horizonte", rec.OrgUnit)
			s.Require().NotNil(rec.NoticeAt)
			s.Equal(time.Date(2024, 3, 10, 9, 30, 0, 0, ingest.CourtLocation), *rec.NoticeAt)
			s.Nil(rec.DeadlineAt)
			s.Equal(time.Date(2024, 3, 9, 8, 0, 0, 0, ingest.CourtLocation), rec.CreatedAt)
			return domain.RunSummary{Inserted: 1, TotalProcessed: 1}
		},
	)

	s.runs.EXPECT().Complete(gomock.Any(), gomock.Any(), domain.RunSummary{Inserted: 1, TotalProcessed: 1}, gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishRun(gomock.Any(), gomock.Any()).Return(nil)

	run, err := s.service.RunCapture(ctx, CaptureRequest{Type: domain.CapturePending, Credential: s.cred})

	s.Require().NoError(err)
	s.Equal(1, run.Summary.Inserted)
}

func (s *CaptureServiceTestSuite) TestRunCapture_Hearings() {
	ctx := context.Background()
	s.expectRunStarted(domain.CaptureHearings)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, ingest.CourtLocation)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, ingest.CourtLocation)

	s.portal.EXPECT().WalkHearings(ctx, gomock.Any(), s.cfg.PageDelay, gomock.Any()).DoAndReturn(
		func(_ context.Context, q pje.HearingQuery, _ time.Duration, fn func(int, []pje.HearingItem) error) error {
			s.Equal(from, q.From)
			s.Equal(to, q.To)
			s.Equal(pje.HearingScheduled, q.Status)
			return fn(1, []pje.HearingItem{{
				ID:         55,
				StartsAt:   utils.Ptr("2024-03-20T14:00:00"),
				Status:     "M",
				Case:       pje.HearingCase{ID: 987, Number: "0010001-11.2023.5.03.0001"},
				Kind:       pje.Described{Description: "Inicial"},
				Room:       pje.Named{Name: "Sala 1"},
				VirtualURL: utils.Ptr(""),
			}})
		},
	)

	s.ingest.EXPECT().Hearings(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, hearings []domain.Hearing) domain.RunSummary {
			s.Require().Len(hearings, 1)
			h := hearings[0]
			s.Equal(int64(55), h.ExternalID)
			s.Equal(int64(987), h.CaseExternalID)
			s.Equal("Inicial", h.Kind)
			s.Equal("Sala 1", h.Room)
			s.Nil(h.VirtualURL)
			s.Require().NotNil(h.StartsAt)
			return domain.RunSummary{Discarded: 1, TotalProcessed: 1}
		},
	)

	s.runs.EXPECT().Complete(gomock.Any(), gomock.Any(), domain.RunSummary{Discarded: 1, TotalProcessed: 1}, gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishRun(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.RunCapture(ctx, CaptureRequest{
		Type:         domain.CaptureHearings,
		Credential:   s.cred,
		HearingsFrom: from,
		HearingsTo:   to,
	})

	s.NoError(err)
}

func (s *CaptureServiceTestSuite) TestRunCapture_TraversalFailureFailsRun() {
	ctx := context.Background()
	s.expectRunStarted(domain.CaptureArchived)

	transportErr := &domain.TransportError{URL: "https://pje.trt3.jus.br/x", StatusCode: 500}
	s.portal.EXPECT().
		WalkCases(ctx, int64(12345), pje.GroupArchived, s.cfg.PageDelay, gomock.Any(), gomock.Any()).
		Return(transportErr)

	s.runs.EXPECT().Fail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, message string, _ time.Time) error {
			s.Contains(message, "unexpected status 500")
			return nil
		},
	)
	s.publisher.EXPECT().PublishRun(gomock.Any(), gomock.Any()).Return(nil)

	run, err := s.service.RunCapture(ctx, CaptureRequest{Type: domain.CaptureArchived, Credential: s.cred})

	s.Require().Error(err)
	var te *domain.TransportError
	s.True(errors.As(err, &te))
	s.Equal(domain.RunFailed, run.Status)
	s.Require().NotNil(run.Error)
	s.Nil(run.Summary)
}

func (s *CaptureServiceTestSuite) TestRunCapture_OpenSessionFails() {
	ctx := context.Background()
	s.service.open = func(context.Context, domain.Credential) (CourtPortal, error) {
		return nil, errors.New("no cookies")
	}
	s.expectRunStarted(domain.CaptureGeneralDocket)
	s.runs.EXPECT().Fail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishRun(gomock.Any(), gomock.Any()).Return(nil)

	run, err := s.service.RunCapture(ctx, CaptureRequest{Type: domain.CaptureGeneralDocket, Credential: s.cred})

	s.ErrorContains(err, "open session")
	s.Equal(domain.RunFailed, run.Status)
}

func (s *CaptureServiceTestSuite) TestRunCapture_PublishErrorDoesNotFailRun() {
	ctx := context.Background()
	s.expectRunStarted(domain.CaptureGeneralDocket)
	s.portal.EXPECT().WalkCases(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.runs.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishRun(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	run, err := s.service.RunCapture(ctx, CaptureRequest{Type: domain.CaptureGeneralDocket, Credential: s.cred})

	s.NoError(err)
	s.Equal(domain.RunCompleted, run.Status)
}

func (s *CaptureServiceTestSuite) TestRunCapture_StartFailureLeavesNoRun() {
	ctx := context.Background()
	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

	run, err := s.service.RunCapture(ctx, CaptureRequest{Type: domain.CaptureGeneralDocket, Credential: s.cred})

	s.Error(err)
	s.Nil(run)
}

func (s *CaptureServiceTestSuite) TestRunCapture_RejectsCommunications() {
	_, err := s.service.RunCapture(context.Background(), CaptureRequest{Type: domain.CaptureCommunications, Credential: s.cred})
	s.Error(err)

	_, err = s.service.RunCapture(context.Background(), CaptureRequest{Type: "processos", Credential: s.cred})
	s.Error(err)
}
