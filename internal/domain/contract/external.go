package contract

import (
	"context"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

// FetchFailureFunc is called after every failed attempt to reach the scheduling service.
type FetchFailureFunc func(attempt int, err error)

// ScheduleClient fetches on-call entries overlapping a window.
type ScheduleClient interface {
	FetchEntries(ctx context.Context, scheduleID string, window entity.TimeWindow, onFailure FetchFailureFunc) (*entity.Schedule, error)
}

// CallPlacer places outbound phone calls and returns the call identifier.
type CallPlacer interface {
	PlaceCall(ctx context.Context, req entity.CallRequest) (string, error)
}

// Notifier delivers alerts to the operations team.
type Notifier interface {
	Notify(ctx context.Context, alert entity.Alert) error
}

// ConfigStore is the read side of the configuration file.
type ConfigStore interface {
	// Get returns the value of key in section, or config.ErrNotFound.
	Get(section, key string) (string, error)
	// Person returns the value stored for a person's name in section, ignoring case.
	Person(section, name string) (string, error)
}

// Clock abstracts wall time and the blocking pauses between calls.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// Recorder receives run metrics.
type Recorder interface {
	RunFinished(outcome entity.RunOutcome)
	Handoff()
	CallPlaced(purpose entity.CallPurpose, result entity.PhoneActionResult)
	FetchFailed()
}
