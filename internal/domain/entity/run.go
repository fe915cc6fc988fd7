package entity

import "time"

// OnCallPhase is the time-of-day classification used to gate calls.
type OnCallPhase string

const (
	PhaseActive         OnCallPhase = "active"
	PhasePassive        OnCallPhase = "passive"
	PhaseExitingPassive OnCallPhase = "exiting_passive"
)

// RunOutcome is the terminal state of a run.
type RunOutcome string

const (
	OutcomeUnchanged RunOutcome = "unchanged"
	OutcomeConfirmed RunOutcome = "confirmed"
	OutcomeEscalated RunOutcome = "escalated"
	OutcomeAborted   RunOutcome = "aborted"
	OutcomeFailed    RunOutcome = "failed"
)

// Run is the audit record of one invocation.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Reference   time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Outgoing    string
	Incoming    string
	Phase       OnCallPhase
	Outcome     RunOutcome
	Error       string
	TestMode    bool
	Calls       []PhoneActionResult
}

// IsHandoffRun reports whether the run saw the on-call person change.
func (r *Run) IsHandoffRun() bool {
	return r.Incoming != "" && r.Outgoing != r.Incoming
}
