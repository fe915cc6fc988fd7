package service

import (
	"context"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

type wallClock struct{}

// NewClock returns the system clock. Sleep blocks the calling goroutine.
func NewClock() contract.Clock {
	return wallClock{}
}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type noopRecorder struct{}

func (noopRecorder) RunFinished(entity.RunOutcome)                           {}
func (noopRecorder) Handoff()                                                {}
func (noopRecorder) CallPlaced(entity.CallPurpose, entity.PhoneActionResult) {}
func (noopRecorder) FetchFailed()                                            {}
