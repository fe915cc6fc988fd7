package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

var testZone = time.FixedZone("PST", -8*60*60)

func init() {
	color.NoColor = true
}

func TestRenderRun(t *testing.T) {
	started := time.Date(2024, 3, 4, 9, 0, 0, 0, testZone)

	tests := []struct {
		name     string
		run      *entity.Run
		contains []string
		missing  []string
	}{
		{
			name: "confirmed handoff with calls",
			run: &entity.Run{
				ID:          "run-1",
				Reference:   started,
				WindowStart: started.Add(-8 * time.Minute),
				WindowEnd:   started.Add(8 * time.Minute),
				Outgoing:    "Alice Smith",
				Incoming:    "Bob Jones",
				Phase:       entity.PhaseActive,
				Outcome:     entity.OutcomeConfirmed,
				Calls: []entity.PhoneActionResult{
					{Purpose: entity.PurposeEnable, To: "+18005551212", CallID: "CA1", Success: true},
					{Purpose: entity.PurposeConfirmIncoming, To: "+14085405678", Success: true, Skipped: true, Reason: "passive hours"},
				},
			},
			contains: []string{"run-1", "Alice Smith", "Bob Jones", "confirmed", "2024-03-04 08:52 PST", "CA1", "skipped", "passive hours"},
			missing:  []string{"test"},
		},
		{
			name: "failed test run",
			run: &entity.Run{
				ID:       "run-2",
				Outcome:  entity.OutcomeFailed,
				Error:    "schedule service unreachable",
				TestMode: true,
			},
			contains: []string{"run-2", "failed", "schedule service unreachable", "test"},
			missing:  []string{"Call ID"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderRun(tt.run, testZone)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.missing {
				assert.NotContains(t, strings.ToLower(out), strings.ToLower(unwanted))
			}
		})
	}
}

func TestRenderHistory(t *testing.T) {
	runs := []*entity.Run{
		{StartedAt: time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), Outgoing: "Alice Smith", Incoming: "Bob Jones", Outcome: entity.OutcomeEscalated, TestMode: true},
		{StartedAt: time.Date(2024, 3, 4, 16, 55, 0, 0, time.UTC), Outgoing: "Alice Smith", Incoming: "Alice Smith", Outcome: entity.OutcomeUnchanged},
	}

	out := renderHistory(runs, testZone)

	assert.Contains(t, out, "2024-03-04 09:00 PST")
	assert.Contains(t, out, "2024-03-04 08:55 PST")
	assert.Contains(t, out, "escalated")
	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "yes")
	assert.Less(t, strings.Index(out, "escalated"), strings.Index(out, "unchanged"))
}

func TestRenderSchedule(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, testZone)
	alice := entity.ScheduleEntry{PersonName: "Alice Smith", Start: start.Add(-time.Hour), End: start}
	bob := entity.ScheduleEntry{PersonName: "Bob Jones", Start: start, End: start.Add(time.Hour)}

	tests := []struct {
		name     string
		entries  []entity.ScheduleEntry
		decision entity.HandoffDecision
		want     string
	}{
		{
			name:     "handoff",
			entries:  []entity.ScheduleEntry{alice, bob},
			decision: entity.HandoffDecision{Outgoing: "Alice Smith", Incoming: "Bob Jones"},
			want:     "handoff alice smith -> bob jones",
		},
		{
			name:     "same person",
			entries:  []entity.ScheduleEntry{alice},
			decision: entity.HandoffDecision{Outgoing: "Alice Smith", Incoming: "Alice Smith"},
			want:     "alice smith stays on call",
		},
		{
			name: "nobody",
			want: "nobody is on call",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderSchedule(tt.entries, tt.decision, entity.PhaseActive, testZone)
			assert.Contains(t, strings.ToLower(out), tt.want)
			assert.Contains(t, strings.ToLower(out), "active")
			for _, e := range tt.entries {
				assert.Contains(t, out, e.PersonName)
			}
		})
	}
}
