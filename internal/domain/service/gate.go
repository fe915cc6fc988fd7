package service

import (
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

// DailyInterval is a half-open [From, To) range of minutes since local midnight.
type DailyInterval struct {
	Phase entity.OnCallPhase
	From  int
	To    int
}

func (i DailyInterval) contains(minute int) bool {
	return minute >= i.From && minute < i.To
}

func clockMinute(hour, minute int) int {
	return hour*60 + minute
}

// DefaultIntervals is the quiet period table. The first matching interval wins;
// anything unmatched is active on-call.
var DefaultIntervals = []DailyInterval{
	{Phase: entity.PhasePassive, From: clockMinute(0, 0), To: clockMinute(7, 0)},
	{Phase: entity.PhaseExitingPassive, From: clockMinute(7, 0), To: clockMinute(7, 15)},
	{Phase: entity.PhasePassive, From: clockMinute(22, 45), To: clockMinute(24, 0)},
}

// PassiveGate classifies a moment into an on-call phase in a fixed zone.
type PassiveGate struct {
	loc       *time.Location
	intervals []DailyInterval
}

func NewPassiveGate(loc *time.Location, intervals []DailyInterval) *PassiveGate {
	if loc == nil {
		loc = time.Local
	}
	if intervals == nil {
		intervals = DefaultIntervals
	}
	return &PassiveGate{loc: loc, intervals: intervals}
}

func (g *PassiveGate) Classify(t time.Time) entity.OnCallPhase {
	local := t.In(g.loc)
	minute := clockMinute(local.Hour(), local.Minute())
	for _, interval := range g.intervals {
		if interval.contains(minute) {
			return interval.Phase
		}
	}
	return entity.PhaseActive
}

// Location returns the zone the gate evaluates in.
func (g *PassiveGate) Location() *time.Location {
	return g.loc
}

func skipsEnable(phase entity.OnCallPhase) bool {
	return phase == entity.PhasePassive
}

func skipsIncomingConfirmation(phase entity.OnCallPhase) bool {
	return phase == entity.PhasePassive
}

func skipsOutgoingConfirmation(phase entity.OnCallPhase) bool {
	return phase == entity.PhaseExitingPassive
}
