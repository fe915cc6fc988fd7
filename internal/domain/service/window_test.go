package service

import (
	"testing"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReference(t *testing.T) {
	now := time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		literal string
		want    time.Time
		wantErr bool
	}{
		{name: "Should use now for an empty value", literal: "", want: now.In(testZone)},
		{name: "Should use now for the now keyword", literal: "now", want: now.In(testZone)},
		{name: "Should use now for the keyword in upper case", literal: " NOW ", want: now.In(testZone)},
		{name: "Should use now for zero", literal: "0", want: now.In(testZone)},
		{name: "Should parse RFC3339", literal: "2024-01-03T07:10:00-08:00", want: at(7, 10)},
		{name: "Should parse the schedule format", literal: "2024-01-03T07:10:00-0800", want: at(7, 10)},
		{name: "Should read a value without zone in the local zone", literal: "2024-01-03T23:30:00", want: at(23, 30)},
		{name: "Should parse a space separated value", literal: "2024-01-03 06:59:00", want: at(6, 59)},
		{name: "Should parse a value without seconds", literal: "2024-01-03T22:50", want: at(22, 50)},
		{name: "Should parse a date", literal: "2024-01-03", want: at(0, 0)},
		{name: "Should reject garbage", literal: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveReference(tt.literal, now, testZone)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestResolveWindow(t *testing.T) {
	reference := at(14, 0)

	window := ResolveWindow(reference, 8*time.Minute)
	assert.Equal(t, at(13, 52), window.Start)
	assert.Equal(t, at(14, 8), window.End)

	t.Run("Should treat a negative lookahead as its magnitude", func(t *testing.T) {
		window := ResolveWindow(reference, -8*time.Minute)
		assert.Equal(t, at(13, 52), window.Start)
		assert.Equal(t, at(14, 8), window.End)
	})

	t.Run("Should collapse to the reference for a zero lookahead", func(t *testing.T) {
		window := ResolveWindow(reference, 0)
		assert.Equal(t, reference, window.Start)
		assert.Equal(t, reference, window.End)
	})
}
