package contract

import (
	"context"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Run() RunRepo
}

// RunRepo defines the contract for the run journal
type RunRepo interface {
	Create(ctx context.Context, run *entity.Run) error
	AddCall(ctx context.Context, runID string, seq int, call entity.PhoneActionResult) error
	GetByID(ctx context.Context, id string) (*entity.Run, error)
	GetLatest(ctx context.Context, limit int) ([]*entity.Run, error)
}
