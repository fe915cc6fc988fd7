package service

import (
	"context"
	"errors"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
)

type scheduleEvaluator struct {
	client   contract.ScheduleClient
	notifier contract.Notifier
	recorder contract.Recorder
}

func newScheduleEvaluator(client contract.ScheduleClient, notifier contract.Notifier, recorder contract.Recorder) *scheduleEvaluator {
	return &scheduleEvaluator{
		client:   client,
		notifier: notifier,
		recorder: recorder,
	}
}

// evaluate fetches the entries overlapping window and decides who hands off to whom.
// Every failed attempt and a service error are reported to the ops team.
func (e *scheduleEvaluator) evaluate(ctx context.Context, scheduleID string, window entity.TimeWindow) (*entity.HandoffDecision, error) {
	decision, err := e.decide(ctx, scheduleID, window, func(attempt int, err error) {
		e.recorder.FetchFailed()
		logger.Warn(ctx, "PagerDuty API connection problem", "attempt", attempt, "max", domain.MaxFetchAttempts, "error", err)
		if nerr := e.notifier.Notify(ctx, fetchFailureAlert(attempt, err)); nerr != nil {
			logger.Error(ctx, "Failed to send mail", "error", nerr)
		}
	})
	if err != nil {
		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			logger.Error(ctx, "PagerDuty returned an error", "message", svcErr.Message)
			if nerr := e.notifier.Notify(ctx, serviceErrorAlert(svcErr)); nerr != nil {
				logger.Error(ctx, "Failed to send mail", "error", nerr)
			}
			return nil, err
		}
		logger.Error(ctx, "Cannot recover from PagerDuty API connection problem", "attempts", domain.MaxFetchAttempts, "error", err)
		return nil, err
	}
	return decision, nil
}

// peek is evaluate for read-only queries: failures are only logged.
func (e *scheduleEvaluator) peek(ctx context.Context, scheduleID string, window entity.TimeWindow) (*entity.HandoffDecision, error) {
	decision, err := e.decide(ctx, scheduleID, window, func(attempt int, err error) {
		logger.Debug(ctx, "PagerDuty lookup failed", "attempt", attempt, "error", err)
	})
	if err != nil {
		logger.Warn(ctx, "Cannot read the on-call schedule", "error", err)
		return nil, err
	}
	return decision, nil
}

func (e *scheduleEvaluator) decide(ctx context.Context, scheduleID string, window entity.TimeWindow, onFailure contract.FetchFailureFunc) (*entity.HandoffDecision, error) {
	logger.Debug(ctx, "Fetching schedule", "schedule_id", scheduleID, "since", window.Start, "until", window.End)

	schedule, err := e.client.FetchEntries(ctx, scheduleID, window, onFailure)
	if err != nil {
		return nil, err
	}

	for i, entry := range schedule.Entries {
		logger.Debug(ctx, "Schedule entry", "index", i, "name", entry.PersonName, "id", entry.PersonID,
			"start", entry.Start, "end", entry.End)
	}
	if schedule.Total > 1 {
		logger.Debug(ctx, "Time to change Phone_Ctlr setup", "total", schedule.Total)
	} else {
		logger.Debug(ctx, "Wait to change Phone_Ctlr setup", "total", schedule.Total)
	}

	decision := Decide(schedule.Entries)
	decision.Total = schedule.Total
	return &decision, nil
}

// Decide picks the outgoing (first) and incoming (second) person from entries
// ordered by start time. Fewer than two entries means no handoff.
func Decide(entries []entity.ScheduleEntry) entity.HandoffDecision {
	var decision entity.HandoffDecision
	if len(entries) == 0 {
		return decision
	}

	decision.Outgoing = entries[0].PersonName
	decision.Incoming = decision.Outgoing
	if len(entries) > 1 {
		decision.Incoming = entries[1].PersonName
	}

	last := entries[len(entries)-1]
	decision.ShiftBegin = last.Start
	decision.ShiftEnd = last.End
	return decision
}
