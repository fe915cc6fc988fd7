package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/service"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	slackcmd "github.com/diegoclair/oncall-phone-agent/internal/slack"
	"github.com/slack-go/slack"
)

const (
	timeLayout  = "Mon 15:04 MST"
	maxLastRuns = 20
)

type SlackHandler struct {
	handoff       contract.HandoffService
	signingSecret string
	loc           *time.Location
	now           func() time.Time
}

func New(handoff contract.HandoffService, signingSecret string, loc *time.Location) *SlackHandler {
	if loc == nil {
		loc = time.Local
	}
	return &SlackHandler{
		handoff:       handoff,
		signingSecret: signingSecret,
		loc:           loc,
		now:           time.Now,
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respond(w, h.createErrorResponse(err.Error()+". Try `"+s.Command+" help`"))
		return
	}

	ctx := logger.WithValues(r.Context(), "command", s.Command, "user", s.UserName)
	h.respond(w, h.handleCommand(ctx, cmd))
}

// HandleHealth reports that the process is serving.
func (h *SlackHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (h *SlackHandler) handleCommand(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	switch cmd.Type {
	case slackcmd.CmdWho:
		return h.handleWho(ctx, cmd)
	case slackcmd.CmdLast:
		return h.handleLast(ctx, cmd)
	case slackcmd.CmdHelp:
		return h.handleHelp()
	default:
		return h.createErrorResponse("Unknown command")
	}
}

func (h *SlackHandler) handleWho(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	reference, err := service.ResolveReference(strings.Join(cmd.Args, " "), h.now(), h.loc)
	if err != nil {
		return h.createErrorResponse(fmt.Sprintf("Cannot read the time %q", strings.Join(cmd.Args, " ")))
	}

	decision, err := h.handoff.CurrentOnCall(ctx, reference)
	if err != nil {
		logger.Error(ctx, "Failed to read the on-call schedule", "error", err)
		return h.createErrorResponse("Cannot read the on-call schedule right now")
	}

	var text string
	switch {
	case decision.Outgoing == "":
		text = fmt.Sprintf("Nobody is on-call at %s", reference.Format(timeLayout))
	case decision.IsHandoff():
		text = fmt.Sprintf("*%s* is handing over to *%s* (shift starts %s)",
			decision.Outgoing, decision.Incoming, decision.ShiftBegin.In(h.loc).Format(timeLayout))
	default:
		text = fmt.Sprintf("*%s* is on-call until %s", decision.Outgoing, decision.ShiftEnd.In(h.loc).Format(timeLayout))
	}

	return &slack.Msg{
		ResponseType: slack.ResponseTypeInChannel,
		Text:         text,
	}
}

func (h *SlackHandler) handleLast(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	limit := 1
	if len(cmd.Args) > 0 {
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil || n < 1 {
			return h.createErrorResponse("Please give a positive number: `/oncall last 5`")
		}
		limit = min(n, maxLastRuns)
	}

	runs, err := h.handoff.RecentRuns(ctx, limit)
	if errors.Is(err, domain.ErrJournalDisabled) {
		return h.createErrorResponse("Run history is not enabled on this agent")
	}
	if err != nil {
		logger.Error(ctx, "Failed to read the run history", "error", err)
		return h.createErrorResponse("Cannot read the run history")
	}
	if len(runs) == 0 {
		return &slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: "No runs recorded yet"}
	}

	var b strings.Builder
	b.WriteString("*Last phone switch runs:*\n")
	for _, run := range runs {
		b.WriteString(formatRun(run, h.loc) + "\n")
	}
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         strings.TrimRight(b.String(), "\n"),
	}
}

func formatRun(run *entity.Run, loc *time.Location) string {
	line := fmt.Sprintf("• `%s` %s", run.StartedAt.In(loc).Format("2006-01-02 15:04"), run.Outcome)
	if run.Outgoing != "" && run.IsHandoffRun() {
		line += fmt.Sprintf(": %s → %s", run.Outgoing, run.Incoming)
	} else if run.Outgoing != "" {
		line += ": " + run.Outgoing
	}
	if run.Phase != "" {
		line += fmt.Sprintf(" (%s)", run.Phase)
	}
	if run.TestMode {
		line += " [test]"
	}
	if run.Error != "" {
		line += " - " + run.Error
	}
	return line
}

func (h *SlackHandler) handleHelp() *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         slackcmd.GetHelpText(),
	}
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("❌ %s", message),
	}
}

func (h *SlackHandler) respond(w http.ResponseWriter, msg *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(msg)
}
