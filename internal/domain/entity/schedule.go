package entity

import "time"

// TimeWindow is the range of the schedule examined by one run.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// ScheduleEntry is one on-call shift returned by the scheduling service.
type ScheduleEntry struct {
	PersonName string
	PersonID   string
	Start      time.Time
	End        time.Time
}

// HandoffDecision holds who is leaving and who is entering on-call duty.
// Outgoing == Incoming means nothing changes.
type HandoffDecision struct {
	Outgoing string
	Incoming string

	// ShiftBegin and ShiftEnd are the bounds of the last entry examined, for diagnostics only.
	ShiftBegin time.Time
	ShiftEnd   time.Time

	// Total is the entry count reported by the service. It never gates the handoff.
	Total int
}

// IsHandoff reports whether the on-call person changes.
func (d HandoffDecision) IsHandoff() bool {
	return d.Outgoing != d.Incoming
}

// Schedule is the scheduling service's answer for one window.
type Schedule struct {
	Total   int
	Entries []ScheduleEntry
}
