package service

import (
	"testing"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestPassiveGateClassify(t *testing.T) {
	gate := NewPassiveGate(testZone, nil)

	tests := []struct {
		name string
		at   time.Time
		want entity.OnCallPhase
	}{
		{name: "23:30 is passive", at: at(23, 30), want: entity.PhasePassive},
		{name: "midnight is passive", at: at(0, 0), want: entity.PhasePassive},
		{name: "06:59 is passive", at: at(6, 59), want: entity.PhasePassive},
		{name: "07:00 is exiting passive", at: at(7, 0), want: entity.PhaseExitingPassive},
		{name: "07:10 is exiting passive", at: at(7, 10), want: entity.PhaseExitingPassive},
		{name: "07:15 is active", at: at(7, 15), want: entity.PhaseActive},
		{name: "07:20 is active", at: at(7, 20), want: entity.PhaseActive},
		{name: "14:00 is active", at: at(14, 0), want: entity.PhaseActive},
		{name: "22:30 is active", at: at(22, 30), want: entity.PhaseActive},
		{name: "22:45 is passive", at: at(22, 45), want: entity.PhasePassive},
		{name: "22:50 is passive", at: at(22, 50), want: entity.PhasePassive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Classify(tt.at))
		})
	}
}

func TestPassiveGateUsesItsZone(t *testing.T) {
	gate := NewPassiveGate(testZone, nil)

	// 15:30 UTC is 07:30 in the gate's zone.
	assert.Equal(t, entity.PhaseActive, gate.Classify(time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC)))
	// 07:30 UTC is 23:30 the day before.
	assert.Equal(t, entity.PhasePassive, gate.Classify(time.Date(2024, 1, 3, 7, 30, 0, 0, time.UTC)))
	assert.Equal(t, testZone, gate.Location())
}

func TestPassiveGateCustomIntervals(t *testing.T) {
	gate := NewPassiveGate(testZone, []DailyInterval{
		{Phase: entity.PhasePassive, From: clockMinute(12, 0), To: clockMinute(13, 0)},
	})

	assert.Equal(t, entity.PhasePassive, gate.Classify(at(12, 30)))
	assert.Equal(t, entity.PhaseActive, gate.Classify(at(23, 30)))
}

func TestPhaseRules(t *testing.T) {
	assert.True(t, skipsEnable(entity.PhasePassive))
	assert.False(t, skipsEnable(entity.PhaseExitingPassive))
	assert.False(t, skipsEnable(entity.PhaseActive))

	assert.True(t, skipsIncomingConfirmation(entity.PhasePassive))
	assert.False(t, skipsIncomingConfirmation(entity.PhaseExitingPassive))

	assert.True(t, skipsOutgoingConfirmation(entity.PhaseExitingPassive))
	assert.False(t, skipsOutgoingConfirmation(entity.PhasePassive))
	assert.False(t, skipsOutgoingConfirmation(entity.PhaseActive))
}
