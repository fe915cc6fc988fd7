package contract

import (
	"context"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

// RunRequest carries the per-invocation inputs of the handoff controller.
type RunRequest struct {
	// Reference is the literal reference time; "", "now" and "0" mean the current time.
	Reference string
	// Lookahead is nil for the configured default; zero is a valid width.
	Lookahead *time.Duration
	TestMode  bool
}

type HandoffService interface {
	Run(ctx context.Context, req RunRequest) (*entity.Run, error)
	CurrentOnCall(ctx context.Context, reference time.Time) (*entity.HandoffDecision, error)
	RecentRuns(ctx context.Context, limit int) ([]*entity.Run, error)
}
