package cli

import (
	"fmt"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const timeLayout = "2006-01-02 15:04 MST"

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
	nameColor = color.New(color.FgHiMagenta)
)

func outcomeText(outcome entity.RunOutcome) string {
	switch outcome {
	case entity.OutcomeConfirmed, entity.OutcomeUnchanged:
		return okColor.Sprint(outcome)
	case entity.OutcomeEscalated:
		return warnColor.Sprint(outcome)
	default:
		return failColor.Sprint(outcome)
	}
}

func callStatus(call entity.PhoneActionResult) string {
	switch {
	case call.Skipped:
		return warnColor.Sprint("skipped")
	case call.Success:
		return okColor.Sprint("ok")
	default:
		return failColor.Sprint("failed")
	}
}

func formatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(loc).Format(timeLayout)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// renderRun prints the summary of one run followed by its calls.
func renderRun(run *entity.Run, loc *time.Location) string {
	t := table.NewWriter()
	t.SetTitle("Run %s", run.ID)
	t.AppendRows([]table.Row{
		{"Reference", formatTime(run.Reference, loc)},
		{"Window", fmt.Sprintf("%s to %s", formatTime(run.WindowStart, loc), formatTime(run.WindowEnd, loc))},
		{"Outgoing", nameColor.Sprint(dash(run.Outgoing))},
		{"Incoming", nameColor.Sprint(dash(run.Incoming))},
		{"Phase", dash(string(run.Phase))},
		{"Outcome", outcomeText(run.Outcome)},
	})
	if run.TestMode {
		t.AppendRow(table.Row{"Mode", warnColor.Sprint("test")})
	}
	if run.Error != "" {
		t.AppendRow(table.Row{"Error", failColor.Sprint(run.Error)})
	}
	out := t.Render()

	if len(run.Calls) == 0 {
		return out
	}
	return out + "\n" + renderCalls(run.Calls)
}

func renderCalls(calls []entity.PhoneActionResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Purpose", "To", "Status", "Call ID", "Reason"})
	for i, call := range calls {
		t.AppendRow(table.Row{i + 1, call.Purpose, call.To, callStatus(call), dash(call.CallID), dash(call.Reason)})
	}
	return t.Render()
}

// renderHistory prints one line per run, newest first.
func renderHistory(runs []*entity.Run, loc *time.Location) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Started", "Outgoing", "Incoming", "Phase", "Outcome", "Calls", "Test"})
	for _, run := range runs {
		test := ""
		if run.TestMode {
			test = "yes"
		}
		t.AppendRow(table.Row{
			formatTime(run.StartedAt, loc),
			dash(run.Outgoing),
			dash(run.Incoming),
			dash(string(run.Phase)),
			outcomeText(run.Outcome),
			len(run.Calls),
			test,
		})
	}
	return t.Render()
}

// renderSchedule prints the schedule entries of a window and the decision drawn from them.
func renderSchedule(entries []entity.ScheduleEntry, decision entity.HandoffDecision, phase entity.OnCallPhase, loc *time.Location) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Person", "Start", "End"})
	for _, e := range entries {
		t.AppendRow(table.Row{nameColor.Sprint(e.PersonName), formatTime(e.Start, loc), formatTime(e.End, loc)})
	}

	var footer string
	switch {
	case decision.Outgoing == "":
		footer = failColor.Sprint("nobody is on call")
	case decision.IsHandoff():
		footer = fmt.Sprintf("handoff %s -> %s", decision.Outgoing, decision.Incoming)
	default:
		footer = fmt.Sprintf("%s stays on call", decision.Outgoing)
	}
	t.AppendFooter(table.Row{footer, "phase", string(phase)})
	return t.Render()
}
