package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/google/uuid"
)

const (
	SectionAWS       = "awsprod"
	KeyScheduleID    = "pagerduty_schedule_id"
	defaultHistoryN  = 10
	journalTxTimeout = 10 * time.Second
)

type handoffService struct {
	config    contract.ConfigStore
	dm        contract.DataManager
	notifier  contract.Notifier
	clock     contract.Clock
	recorder  contract.Recorder
	evaluator *scheduleEvaluator
	executor  *handoffExecutor
	settings  Settings
}

func newHandoff(deps Dependencies) *handoffService {
	settings := deps.Settings
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.DefaultLookahead == 0 {
		settings.DefaultLookahead = domain.DefaultLookahead
	}

	return &handoffService{
		config:    deps.Config,
		dm:        deps.Data,
		notifier:  deps.Notifier,
		clock:     deps.Clock,
		recorder:  deps.Recorder,
		evaluator: newScheduleEvaluator(deps.Schedule, deps.Notifier, deps.Recorder),
		executor: &handoffExecutor{
			placer:           deps.Calls,
			dryRun:           deps.DryRun,
			notifier:         deps.Notifier,
			clock:            deps.Clock,
			recorder:         deps.Recorder,
			gate:             NewPassiveGate(settings.Location, settings.Intervals),
			contacts:         newContactResolver(deps.Config, settings.DeskPrefix, settings.DeskReplacement),
			messages:         newVoiceMessages(settings.TwimletBase),
			controllerNumber: settings.ControllerNumber,
			configPath:       settings.ConfigPath,
			logPath:          settings.LogPath,
		},
		settings: settings,
	}
}

// Run performs one invocation: resolve the window, evaluate the schedule and
// hand off when the on-call person changes. The returned run is always set,
// even when err is not nil.
func (s *handoffService) Run(ctx context.Context, req contract.RunRequest) (*entity.Run, error) {
	run := &entity.Run{
		ID:        uuid.NewString(),
		StartedAt: s.clock.Now(),
		TestMode:  req.TestMode,
	}
	ctx = logger.WithValues(ctx, "run_id", run.ID)

	err := s.run(ctx, req, run)
	run.FinishedAt = s.clock.Now()
	if err != nil {
		run.Error = err.Error()
		if run.Outcome == "" {
			run.Outcome = entity.OutcomeFailed
		}
	}

	s.recorder.RunFinished(run.Outcome)
	s.journal(ctx, run)
	return run, err
}

func (s *handoffService) run(ctx context.Context, req contract.RunRequest, run *entity.Run) error {
	reference, err := ResolveReference(req.Reference, s.clock.Now(), s.settings.Location)
	if err != nil {
		logger.Error(ctx, "Cannot parse the reference time", "value", req.Reference)
		return err
	}
	lookahead := s.settings.DefaultLookahead
	if req.Lookahead != nil {
		lookahead = *req.Lookahead
	}
	window := ResolveWindow(reference, lookahead)
	run.Reference, run.WindowStart, run.WindowEnd = reference, window.Start, window.End
	logger.Debug(ctx, "Window resolved", "reference", reference, "since", window.Start, "until", window.End)

	scheduleID, err := s.scheduleID(ctx)
	if err != nil {
		return err
	}

	decision, err := s.evaluator.evaluate(ctx, scheduleID, window)
	if err != nil {
		return err
	}
	run.Outgoing, run.Incoming = decision.Outgoing, decision.Incoming
	logger.Debug(ctx, "Decision", "outgoing", decision.Outgoing, "incoming", decision.Incoming,
		"shift_begin", decision.ShiftBegin, "shift_end", decision.ShiftEnd)

	if !decision.IsHandoff() {
		run.Outcome = entity.OutcomeUnchanged
		if decision.Outgoing == "" {
			logger.Warn(ctx, "Nobody is on-call in the window")
			return nil
		}
		logger.Infof(ctx, "%-17s is still on-call. We will check back on the next run.", decision.Outgoing)
		return nil
	}

	s.recorder.Handoff()
	report, err := s.executor.execute(ctx, *decision, reference, req.TestMode)
	run.Phase = report.phase
	run.Outcome = report.outcome
	run.Calls = report.calls
	return err
}

func (s *handoffService) scheduleID(ctx context.Context) (string, error) {
	id, err := s.config.Get(SectionAWS, KeyScheduleID)
	if err == nil && id != "" {
		return id, nil
	}

	missing := &domain.MissingConfigError{Section: SectionAWS, Key: KeyScheduleID}
	logger.Error(ctx, "Missing pagerduty_schedule_id value in the config file")
	if nerr := s.notifier.Notify(ctx, missingConfigAlert(missing, s.settings.LogPath)); nerr != nil {
		logger.Error(ctx, "Failed to send mail", "error", nerr)
	}
	return "", missing
}

// CurrentOnCall evaluates the schedule around reference with the default lookahead.
// It is a query: nobody is alerted and the lookup gives up after QueryTimeout.
func (s *handoffService) CurrentOnCall(ctx context.Context, reference time.Time) (*entity.HandoffDecision, error) {
	scheduleID, err := s.config.Get(SectionAWS, KeyScheduleID)
	if err != nil || scheduleID == "" {
		return nil, &domain.MissingConfigError{Section: SectionAWS, Key: KeyScheduleID}
	}

	ctx, cancel := context.WithTimeout(ctx, domain.QueryTimeout)
	defer cancel()
	return s.evaluator.peek(ctx, scheduleID, ResolveWindow(reference, s.settings.DefaultLookahead))
}

// RecentRuns returns the latest journaled runs, newest first.
func (s *handoffService) RecentRuns(ctx context.Context, limit int) ([]*entity.Run, error) {
	if s.dm == nil {
		return nil, domain.ErrJournalDisabled
	}
	if limit <= 0 {
		limit = defaultHistoryN
	}
	return s.dm.Run().GetLatest(ctx, limit)
}

// journal stores the run for auditing. It is never read back to take a decision.
func (s *handoffService) journal(ctx context.Context, run *entity.Run) {
	if s.dm == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTxTimeout)
	defer cancel()

	err := s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		if err := tx.Run().Create(ctx, run); err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}
		for i, call := range run.Calls {
			if err := tx.Run().AddCall(ctx, run.ID, i+1, call); err != nil {
				return fmt.Errorf("failed to add call %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn(ctx, "Failed to journal the run", "error", err)
	}
}
