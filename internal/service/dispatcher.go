package service

import (
	"context"

	"judicial_capture/internal/domain"
)

// Dispatcher routes a capture type to the service that performs it.
type Dispatcher struct {
	captures *CaptureService
	comms    *CommunicationSyncService
}

func NewDispatcher(captures *CaptureService, comms *CommunicationSyncService) *Dispatcher {
	return &Dispatcher{captures: captures, comms: comms}
}

func (d *Dispatcher) Run(ctx context.Context, captureType domain.CaptureType, cred domain.Credential) (*domain.CaptureRun, error) {
	if captureType == domain.CaptureCommunications {
		res, err := d.comms.Sync(ctx, CommunicationRequest{Credential: cred})
		if res == nil {
			return nil, err
		}
		return res.Run, err
	}
	return d.captures.RunCapture(ctx, CaptureRequest{Type: captureType, Credential: cred})
}
