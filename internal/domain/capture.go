package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type CaptureType string

const (
	CaptureGeneralDocket  CaptureType = "acervo_geral"
	CaptureArchived       CaptureType = "arquivados"
	CaptureHearings       CaptureType = "audiencias"
	CapturePending        CaptureType = "expedientes"
	CaptureCommunications CaptureType = "comunicacoes"
)

func ParseCaptureType(s string) (CaptureType, error) {
	switch t := CaptureType(s); t {
	case CaptureGeneralDocket, CaptureArchived, CaptureHearings, CapturePending, CaptureCommunications:
		return t, nil
	}
	return "", fmt.Errorf("unknown capture type %q", s)
}

type RunStatus string

const (
	RunPending    RunStatus = "pending"
	RunInProgress RunStatus = "in_progress"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
)

// Terminal reports whether no further transition is allowed from s.
func (s RunStatus) Terminal() bool {
	return s == RunCompleted || s == RunFailed
}

// CaptureRun is one execution of a capture type. Only the orchestrator
// mutates it, and it is frozen once terminal.
type CaptureRun struct {
	ID           string      `db:"id" json:"id"`
	Type         CaptureType `db:"capture_type" json:"capture_type"`
	Status       RunStatus   `db:"status" json:"status"`
	CredentialID string      `db:"credential_id" json:"credential_id"`
	AttorneyID   int64       `db:"attorney_id" json:"attorney_id"`
	Tribunal     string      `db:"tribunal" json:"tribunal"`
	Instance     Instance    `db:"instance" json:"instance"`
	StartedAt    *time.Time  `db:"started_at" json:"started_at,omitempty"`
	FinishedAt   *time.Time  `db:"finished_at" json:"finished_at,omitempty"`
	Summary      *RunSummary `db:"summary" json:"summary,omitempty"`
	Error        *string     `db:"error" json:"error,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// RunSummary holds the per-run ingestion counters.
type RunSummary struct {
	Inserted       int `json:"inserted"`
	Discarded      int `json:"discarded"`
	Errored        int `json:"errored"`
	TotalProcessed int `json:"total_processed"`
}

func (s *RunSummary) Add(other RunSummary) {
	s.Inserted += other.Inserted
	s.Discarded += other.Discarded
	s.Errored += other.Errored
	s.TotalProcessed += other.TotalProcessed
}

func (s RunSummary) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *RunSummary) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = RunSummary{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return fmt.Errorf("scan run summary: unsupported type %T", src)
}

// SyncState is the per-source cursor of the communication sync.
type SyncState struct {
	ID           int64     `db:"id"`
	SourceKey    string    `db:"source_key"`
	LastSyncedAt time.Time `db:"last_synced_at"`
	TotalSynced  int64     `db:"total_synced"`
}
