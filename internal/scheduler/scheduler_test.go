package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	handoff := mocks.NewMockHandoffService(ctrl)
	utc := time.UTC

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "Should use the default schedule", spec: ""},
		{name: "Should accept a five field expression", spec: "*/10 6-22 * * 1-5"},
		{name: "Should accept a descriptor", spec: "@hourly"},
		{name: "Should reject a six field expression", spec: "0 */5 * * * *", wantErr: true},
		{name: "Should reject garbage", spec: "every now and then", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(context.Background(), handoff, tt.spec, utc, contract.RunRequest{})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, s.Next().IsZero())
		})
	}
}

func TestTick(t *testing.T) {
	req := contract.RunRequest{TestMode: true}

	t.Run("Should run the handoff with the configured request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handoff := mocks.NewMockHandoffService(ctrl)
		s, err := New(context.Background(), handoff, DefaultSpec, time.UTC, req)
		require.NoError(t, err)

		handoff.EXPECT().Run(gomock.Any(), req).Return(&entity.Run{ID: "run-1", Outcome: entity.OutcomeUnchanged}, nil)
		s.job.Run()
	})

	t.Run("Should keep going after a failed run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handoff := mocks.NewMockHandoffService(ctrl)
		s, err := New(context.Background(), handoff, DefaultSpec, time.UTC, req)
		require.NoError(t, err)

		handoff.EXPECT().Run(gomock.Any(), req).Return(&entity.Run{Outcome: entity.OutcomeFailed}, domain.ErrScheduleUnavailable).Times(2)
		s.job.Run()
		s.job.Run()
	})

	t.Run("Should skip a tick while a run is in flight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handoff := mocks.NewMockHandoffService(ctrl)
		s, err := New(context.Background(), handoff, DefaultSpec, time.UTC, req)
		require.NoError(t, err)

		started := make(chan struct{})
		release := make(chan struct{})
		handoff.EXPECT().Run(gomock.Any(), req).DoAndReturn(func(context.Context, contract.RunRequest) (*entity.Run, error) {
			close(started)
			<-release
			return &entity.Run{ID: "run-1"}, nil
		}).Times(1)

		done := make(chan struct{})
		go func() {
			s.job.Run()
			close(done)
		}()
		<-started

		s.job.Run()
		close(release)
		<-done
	})

	t.Run("Should not run after stop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handoff := mocks.NewMockHandoffService(ctrl)
		s, err := New(context.Background(), handoff, DefaultSpec, time.UTC, req)
		require.NoError(t, err)

		s.Start()
		s.Stop()
		s.job.Run()
	})

	t.Run("Should cancel the run in flight on stop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handoff := mocks.NewMockHandoffService(ctrl)
		s, err := New(context.Background(), handoff, DefaultSpec, time.UTC, req)
		require.NoError(t, err)

		started := make(chan struct{})
		handoff.EXPECT().Run(gomock.Any(), req).DoAndReturn(func(ctx context.Context, _ contract.RunRequest) (*entity.Run, error) {
			close(started)
			<-ctx.Done()
			return &entity.Run{}, ctx.Err()
		})

		done := make(chan struct{})
		go func() {
			s.job.Run()
			close(done)
		}()
		<-started
		s.Stop()
		<-done
	})
}
