package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"judicial_capture/internal/config"
	"judicial_capture/internal/domain"
	"judicial_capture/internal/ingest"
	"judicial_capture/internal/source/pje"
)

// memRuns records run transitions and rejects any that leave a terminal
// state.
type memRuns struct {
	mu   sync.Mutex
	runs map[string]*domain.CaptureRun
}

func newMemRuns() *memRuns {
	return &memRuns{runs: map[string]*domain.CaptureRun{}}
}

func (m *memRuns) Create(_ context.Context, run *domain.CaptureRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *run
	m.runs[run.ID] = &cp
	return nil
}

func (m *memRuns) transition(id string, from, to domain.RunStatus, apply func(*domain.CaptureRun)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if run.Status != from {
		return domain.ErrInvalidTransition
	}
	run.Status = to
	apply(run)
	return nil
}

func (m *memRuns) Start(_ context.Context, id string, startedAt time.Time) error {
	return m.transition(id, domain.RunPending, domain.RunInProgress, func(r *domain.CaptureRun) { r.StartedAt = &startedAt })
}

func (m *memRuns) Complete(_ context.Context, id string, summary domain.RunSummary, finishedAt time.Time) error {
	return m.transition(id, domain.RunInProgress, domain.RunCompleted, func(r *domain.CaptureRun) {
		r.Summary = &summary
		r.FinishedAt = &finishedAt
	})
}

func (m *memRuns) Fail(_ context.Context, id string, message string, finishedAt time.Time) error {
	return m.transition(id, domain.RunInProgress, domain.RunFailed, func(r *domain.CaptureRun) {
		r.Error = &message
		r.FinishedAt = &finishedAt
	})
}

// memRecords enforces the natural keys the database enforces.
type memRecords struct {
	mu    sync.Mutex
	cases map[string]domain.CaseRecord
	next  int64
}

func newMemRecords() *memRecords {
	return &memRecords{cases: map[string]domain.CaseRecord{}}
}

func (m *memRecords) InsertCaseRecord(_ context.Context, r *domain.CaseRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := fmt.Sprintf("%s|%d|%d|%s|%s|%s", r.Origin, r.ExternalID, r.AttorneyID, r.Tribunal, r.Instance, r.CaseNumber)
	if _, ok := m.cases[key]; ok {
		return 0, domain.ErrDuplicate
	}
	m.next++
	m.cases[key] = *r
	return m.next, nil
}

func (m *memRecords) InsertHearing(context.Context, *domain.Hearing) (int64, error) {
	return 0, errors.New("not used")
}

func (m *memRecords) InsertCommunication(context.Context, *domain.Communication) (int64, error) {
	return 0, errors.New("not used")
}

func (m *memRecords) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cases)
}

// panelServer serves the attorney panel from canned pages keyed by page
// number and counts the requests per page.
type panelServer struct {
	*httptest.Server
	pages map[int]func(w http.ResponseWriter)
	hits  map[int]*atomic.Int32
}

func newPanelServer() *panelServer {
	p := &panelServer{
		pages: map[int]func(w http.ResponseWriter){},
		hits:  map[int]*atomic.Int32{},
	}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("pagina"))
		if h, ok := p.hits[page]; ok {
			h.Add(1)
		}
		handler, ok := p.pages[page]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w)
	}))
	return p
}

func (p *panelServer) page(n int, pageCount, total int, ids ...int64) {
	p.hits[n] = &atomic.Int32{}
	items := make([]pje.CaseItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, pje.CaseItem{
			ID:         id,
			OrgUnit:    "Vara do Trabalho de Contagem",
			CaseNumber: fmt.Sprintf("%07d-11.2023.5.03.0029", id),
		})
	}
	body, _ := json.Marshal(pje.Page[pje.CaseItem]{
		Page:         n,
		PageSize:     100,
		PageCount:    pageCount,
		TotalRecords: total,
		Results:      items,
	})
	p.pages[n] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func (p *panelServer) status(n, code int) {
	p.hits[n] = &atomic.Int32{}
	p.pages[n] = func(w http.ResponseWriter) {
		w.WriteHeader(code)
	}
}

type PipelineTestSuite struct {
	suite.Suite
	server  *panelServer
	runs    *memRuns
	records *memRecords
	service *CaptureService
	cred    domain.Credential
}

func (s *PipelineTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg := config.PJEConfig{Timeout: 5 * time.Second, PageSize: 100, PageDelay: time.Millisecond}

	s.server = newPanelServer()
	s.runs = newMemRuns()
	s.records = newMemRecords()
	s.cred = domain.Credential{
		ID:         "trt3-1g",
		AttorneyID: 12345,
		Tribunal:   "TRT3",
		Origin:     s.server.URL,
		Cookie:     "JSESSIONID=abc",
	}

	ingestor := ingest.New(s.records, s.records, s.records, logger)
	s.service = NewCaptureService(s.runs, NewPJEPortalOpener(cfg, logger), ingestor, nil, logger, cfg)
}

func (s *PipelineTestSuite) TearDownTest() {
	s.server.Close()
}

func TestPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (s *PipelineTestSuite) capture() (*domain.CaptureRun, error) {
	return s.service.RunCapture(context.Background(), CaptureRequest{
		Type:       domain.CaptureGeneralDocket,
		Credential: s.cred,
	})
}

func (s *PipelineTestSuite) TestEmptyPanelCompletesWithoutWrites() {
	s.server.page(1, 0, 0)

	run, err := s.capture()

	s.Require().NoError(err)
	s.Equal(domain.RunCompleted, run.Status)
	s.Equal(domain.RunSummary{}, *run.Summary)
	s.Equal(0, s.records.count())
	s.Equal(domain.RunCompleted, s.runs.runs[run.ID].Status)
}

func (s *PipelineTestSuite) TestMidTraversalFailureKeepsEarlierPages() {
	s.server.page(1, 3, 250, 1, 2)
	s.server.status(2, http.StatusInternalServerError)
	s.server.page(3, 3, 250, 3)

	run, err := s.capture()

	s.Require().Error(err)
	var te *domain.TransportError
	s.Require().True(errors.As(err, &te))
	s.Equal(http.StatusInternalServerError, te.StatusCode)

	s.Equal(domain.RunFailed, run.Status)
	s.Equal(domain.RunFailed, s.runs.runs[run.ID].Status)
	s.Require().NotNil(s.runs.runs[run.ID].Error)

	s.Equal(2, s.records.count())
	s.Equal(int32(1), s.server.hits[1].Load())
	s.Equal(int32(1), s.server.hits[2].Load())
	s.Equal(int32(0), s.server.hits[3].Load())
}

func (s *PipelineTestSuite) TestRepeatedCaptureIsIdempotent() {
	s.server.page(1, 2, 3, 1, 2)
	s.server.page(2, 2, 3, 3)

	first, err := s.capture()
	s.Require().NoError(err)
	s.Equal(domain.RunSummary{Inserted: 3, TotalProcessed: 3}, *first.Summary)

	second, err := s.capture()
	s.Require().NoError(err)
	s.Equal(domain.RunSummary{Discarded: 3, TotalProcessed: 3}, *second.Summary)

	s.Equal(3, s.records.count())
	s.NotEqual(first.ID, second.ID)
}

func (s *PipelineTestSuite) TestMissingResultsArrayIsSchemaError() {
	s.server.hits[1] = &atomic.Int32{}
	s.server.pages[1] = func(w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"pagina":1,"qtdPaginas":2,"totalRegistros":150,"resultado":null}`))
	}

	run, err := s.capture()

	var se *domain.SchemaError
	s.Require().True(errors.As(err, &se))
	s.Equal("resultado", se.Field)
	s.Equal(domain.RunFailed, run.Status)
	s.Equal(0, s.records.count())
}
