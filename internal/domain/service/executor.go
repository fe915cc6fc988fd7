package service

import (
	"context"
	"errors"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
)

// handoffReport is what the executor did for one handoff.
type handoffReport struct {
	phase   entity.OnCallPhase
	outcome entity.RunOutcome
	calls   []entity.PhoneActionResult
}

func (r *handoffReport) add(result entity.PhoneActionResult) entity.PhoneActionResult {
	r.calls = append(r.calls, result)
	return result
}

type handoffExecutor struct {
	placer           contract.CallPlacer
	dryRun           contract.CallPlacer
	notifier         contract.Notifier
	clock            contract.Clock
	recorder         contract.Recorder
	gate             *PassiveGate
	contacts         *contactResolver
	messages         voiceMessages
	controllerNumber string
	configPath       string
	logPath          string
}

// execute switches the phone controller from the outgoing to the incoming person.
// Only a missing contact or a cancelled context is returned as an error; call
// failures are reported in the result list.
func (e *handoffExecutor) execute(ctx context.Context, decision entity.HandoffDecision, reference time.Time, testMode bool) (*handoffReport, error) {
	report := &handoffReport{}
	ctx = logger.WithValues(ctx, "from", decision.Outgoing, "to", decision.Incoming)
	logger.Infof(ctx, "Switching Phone_Ctlr from %-17s to %-17s", decision.Outgoing, decision.Incoming)

	outgoing, err := e.contacts.resolve(decision.Outgoing, "from")
	if err != nil {
		return e.abort(ctx, report, err)
	}
	incoming, err := e.contacts.resolve(decision.Incoming, "to")
	if err != nil {
		return e.abort(ctx, report, err)
	}

	// Gated on the reference time, not the wall clock: an explicit START is
	// treated as if the run happened at that moment.
	report.phase = e.gate.Classify(reference)
	logger.Info(ctx, "On-call phase evaluated", "phase", report.phase)

	placer := e.placer
	if testMode {
		placer = e.dryRun
	}

	enableCmd := ToggleCommand{Action: ToggleEnable, Extension: incoming.DeskExtension}
	disableCmd := ToggleCommand{Action: ToggleDisable, Extension: outgoing.DeskExtension}
	logger.Debug(ctx, "Toggle digits", "enable", enableCmd.Digits(), "disable", disableCmd.Digits())

	// Enable the new extension first so someone always receives escalation calls.
	var enabled entity.PhoneActionResult
	if skipsEnable(report.phase) {
		enabled = report.add(entity.Skipped(entity.PurposeEnable, e.controllerNumber, "passive on-call"))
		logger.Info(ctx, "Skipping the enable call (passive on-call)")
	} else {
		enabled = e.toggle(ctx, report, placer, entity.PurposeEnable, enableCmd)
		if err := e.clock.Sleep(ctx, domain.EnableSettleDelay); err != nil {
			return report, err
		}
	}

	disabled := e.toggle(ctx, report, placer, entity.PurposeDisable, disableCmd)
	if err := e.clock.Sleep(ctx, domain.SwitchSettleDelay); err != nil {
		return report, err
	}

	if enabled.Success && disabled.Success {
		e.confirm(ctx, report, placer, outgoing, incoming)
		report.outcome = entity.OutcomeConfirmed
		if !testMode {
			if err := e.notifier.Notify(ctx, handoffAnnouncement(outgoing.Name, incoming.Name, report.phase)); err != nil {
				logger.Warn(ctx, "Failed to announce the handoff", "error", err)
			}
		}
		return report, nil
	}

	if err := e.escalate(ctx, report, placer, outgoing, incoming, testMode); err != nil {
		return report, err
	}
	report.outcome = entity.OutcomeEscalated
	return report, nil
}

func (e *handoffExecutor) abort(ctx context.Context, report *handoffReport, err error) (*handoffReport, error) {
	report.outcome = entity.OutcomeAborted

	var missing *domain.MissingContactError
	if errors.As(err, &missing) {
		logger.Error(ctx, "Config file does not contain a phone number", "person", missing.Person, "field", missing.Field)
		if nerr := e.notifier.Notify(ctx, missingContactAlert(missing, e.configPath)); nerr != nil {
			logger.Error(ctx, "Failed to send mail", "error", nerr)
		}
	}
	return report, err
}

func (e *handoffExecutor) toggle(ctx context.Context, report *handoffReport, placer contract.CallPlacer, purpose entity.CallPurpose, cmd ToggleCommand) entity.PhoneActionResult {
	logger.Debug(ctx, "Calling the Phone_Ctlr control number", "number", e.controllerNumber, "mode", cmd.Action, "digits", cmd.Digits())
	req := entity.CallRequest{Purpose: purpose, To: e.controllerNumber, Digits: cmd.Digits()}
	result := e.place(ctx, placer, req)
	if !result.Success {
		logger.Error(ctx, "Unable to complete the call to the Phone Controller", "mode", cmd.Action, "reason", result.Reason)
	}
	return report.add(result)
}

func (e *handoffExecutor) confirm(ctx context.Context, report *handoffReport, placer contract.CallPlacer, outgoing, incoming entity.PersonContact) {
	if skipsIncomingConfirmation(report.phase) {
		report.add(entity.Skipped(entity.PurposeConfirmIncoming, incoming.DeskNumber, "passive on-call"))
		logger.Info(ctx, "Skipping the call to the new person (passive on-call)")
	} else {
		e.announce(ctx, report, placer, incoming, entity.CallRequest{
			Purpose:    entity.PurposeConfirmIncoming,
			To:         incoming.DeskNumber,
			MessageURL: e.messages.enabled(incoming.FirstName()),
		})
	}

	if skipsOutgoingConfirmation(report.phase) {
		report.add(entity.Skipped(entity.PurposeConfirmOutgoing, outgoing.CellNumber, "exiting passive on-call"))
		logger.Info(ctx, "Skipping the call to the person leaving (exiting passive on-call)")
		return
	}
	e.announce(ctx, report, placer, outgoing, entity.CallRequest{
		Purpose:    entity.PurposeConfirmOutgoing,
		To:         outgoing.CellNumber,
		MessageURL: e.messages.offDuty(outgoing.FirstName()),
	})
}

// escalate tells both people the controller may be inconsistent, then emails
// the operations team whatever the calls' outcome.
func (e *handoffExecutor) escalate(ctx context.Context, report *handoffReport, placer contract.CallPlacer, outgoing, incoming entity.PersonContact, testMode bool) error {
	logger.Error(ctx, "Phone_Ctlr is in an unknown state")

	e.announce(ctx, report, placer, outgoing, entity.CallRequest{
		Purpose:    entity.PurposeTroubleshootOutgoing,
		To:         outgoing.CellNumber,
		MessageURL: e.messages.inconsistentForOutgoing(outgoing.FirstName(), incoming.FirstName()),
	})
	if err := e.clock.Sleep(ctx, domain.TroubleshootDelay); err != nil {
		return err
	}
	e.announce(ctx, report, placer, incoming, entity.CallRequest{
		Purpose:    entity.PurposeTroubleshootIncoming,
		To:         incoming.CellNumber,
		MessageURL: e.messages.inconsistentForIncoming(incoming.FirstName(), outgoing.FirstName()),
	})

	if testMode {
		logger.Info(ctx, "Test mode: not sending the inconsistent state email")
		return nil
	}
	if err := e.notifier.Notify(ctx, inconsistentStateAlert(outgoing.Name, incoming.Name, e.logPath)); err != nil {
		logger.Error(ctx, "Failed to send mail", "error", err)
	}
	return nil
}

func (e *handoffExecutor) announce(ctx context.Context, report *handoffReport, placer contract.CallPlacer, person entity.PersonContact, req entity.CallRequest) {
	result := report.add(e.place(ctx, placer, req))
	if result.Success {
		logger.Infof(ctx, "Success calling %-10s at %s -- Call sid: %s", person.FirstName(), req.To, result.CallID)
		return
	}
	logger.Errorf(ctx, "Failed  calling %-10s at %s -- %s", person.FirstName(), req.To, result.Reason)
}

func (e *handoffExecutor) place(ctx context.Context, placer contract.CallPlacer, req entity.CallRequest) entity.PhoneActionResult {
	var result entity.PhoneActionResult
	callID, err := placer.PlaceCall(ctx, req)
	if err != nil {
		result = entity.Failed(req, err.Error())
	} else {
		result = entity.Succeeded(req, callID)
	}
	e.recorder.CallPlaced(req.Purpose, result)
	return result
}
