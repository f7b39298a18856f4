package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judicial_capture/internal/domain"
	"judicial_capture/testdata/utils"
)

func TestNewRunEvent(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)

	completed := &domain.CaptureRun{
		ID:      "run-1",
		Type:    domain.CapturePending,
		Status:  domain.RunCompleted,
		Summary: &domain.RunSummary{Inserted: 3, Discarded: 1, TotalProcessed: 4},
	}
	event, err := newRunEvent(completed, now)
	require.NoError(t, err)
	assert.Equal(t, ActionCaptureCompleted, event.Action)
	assert.Equal(t, now, event.Timestamp)

	body, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"action": "capture.completed",
		"run": {
			"id": "run-1",
			"capture_type": "expedientes",
			"status": "completed",
			"credential_id": "",
			"attorney_id": 0,
			"tribunal": "",
			"instance": "",
			"summary": {"inserted": 3, "discarded": 1, "errored": 0, "total_processed": 4},
			"created_at": "0001-01-01T00:00:00Z"
		},
		"timestamp": "2024-03-15T13:00:00Z"
	}`, string(body))

	failed := &domain.CaptureRun{ID: "run-2", Status: domain.RunFailed, Error: utils.Ptr("boom")}
	event, err = newRunEvent(failed, now)
	require.NoError(t, err)
	assert.Equal(t, ActionCaptureFailed, event.Action)

	_, err = newRunEvent(&domain.CaptureRun{ID: "run-3", Status: domain.RunInProgress}, now)
	assert.Error(t, err)
}

func TestNewLinkEvent(t *testing.T) {
	event := newLinkEvent(domain.Link{CommunicationID: 7, ExpedienteID: 70, Hash: "abc"}, time.Now())

	assert.Equal(t, ActionLinked, event.Action)
	assert.Equal(t, int64(7), event.CommunicationID)
	assert.Equal(t, int64(70), event.ExpedienteID)
	assert.Equal(t, "abc", event.Hash)
}
