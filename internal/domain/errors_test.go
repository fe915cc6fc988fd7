package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Should return 0 for nil", err: nil, want: ExitOK},
		{name: "Should return 2 for a service error", err: &ServiceError{Message: "Invalid schedule"}, want: ExitServiceError},
		{name: "Should return 2 for a wrapped service error", err: fmt.Errorf("evaluate: %w", &ServiceError{Message: "x"}), want: ExitServiceError},
		{name: "Should return 1 for exhausted retries", err: ErrScheduleUnavailable, want: ExitMissingData},
		{name: "Should return 1 for a missing contact", err: &MissingContactError{Person: "Alice Smith", Field: "desk_phone", Err: errors.New("not found")}, want: ExitMissingData},
		{name: "Should return 1 for missing config", err: &MissingConfigError{Section: "awsprod", Key: "pagerduty_schedule_id"}, want: ExitMissingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestMissingContactError(t *testing.T) {
	cause := errors.New("key not found")
	err := &MissingContactError{Person: "Bob Jones", Direction: "to", Field: "cell_phone", Err: cause}

	assert.Equal(t, "no cell_phone configured for Bob Jones: key not found", err.Error())
	assert.ErrorIs(t, err, cause)
}
