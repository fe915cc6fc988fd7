package service

import (
	"fmt"
	"html"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

func fetchFailureAlert(attempt int, err error) entity.Alert {
	return entity.Alert{
		Level:    entity.LevelError,
		Error:    fmt.Sprintf("PagerDuty API connection problem (attempt %d of %d): %v.", attempt, domain.MaxFetchAttempts, esc(err)),
		Result:   "The schedule lookup will be retried.",
		Solution: "Review connectivity to PagerDuty.",
	}
}

func serviceErrorAlert(svcErr *domain.ServiceError) entity.Alert {
	return entity.Alert{
		Level:    entity.LevelError,
		Error:    fmt.Sprintf("Couldn't connect to PagerDuty: %s.", html.EscapeString(svcErr.Message)),
		Result:   "Phone_Ctlr was NOT switched over.",
		Solution: fmt.Sprintf("Review connectivity to PagerDuty URL:<br />%s", html.EscapeString(svcErr.URL)),
	}
}

func missingContactAlert(err *domain.MissingContactError, configPath string) entity.Alert {
	first := entity.FirstName(err.Person)
	return entity.Alert{
		Level:    entity.LevelError,
		Error:    fmt.Sprintf("The config file does not contain %s data for: %s (%s).", err.Field, html.EscapeString(err.Person), esc(err.Err)),
		Result:   fmt.Sprintf("Phone_Ctlr was NOT switched over %s %s.", err.Direction, html.EscapeString(first)),
		Solution: fmt.Sprintf("PLS add %s's phone numbers to the config file: <i>%s</i>", html.EscapeString(first), html.EscapeString(configPath)),
	}
}

func missingConfigAlert(err *domain.MissingConfigError, logPath string) entity.Alert {
	return entity.Alert{
		Level:  entity.LevelError,
		Error:  fmt.Sprintf("Phone_Ctlr might be in an inconsistent state. %s.", esc(err)),
		Result: "Phone_Ctlr might not be set to escalate to the correct person.",
		Solution: fmt.Sprintf("PLS manually turn on Phone_Ctlr (<a href=%q>cheat sheet</a>)<br>You can also check the log file <i>%s</i>",
			domain.CheatSheetURL, html.EscapeString(logPath)),
	}
}

func inconsistentStateAlert(outgoing, incoming, logPath string) entity.Alert {
	return entity.Alert{
		Level:  entity.LevelError,
		Error:  fmt.Sprintf("Phone_Ctlr might be in an inconsistent state after switching from %s to %s.", html.EscapeString(outgoing), html.EscapeString(incoming)),
		Result: "Phone_Ctlr might not be set to escalate to the correct person.",
		Solution: fmt.Sprintf("PLS manually turn on Phone_Ctlr (<a href=%q>cheat sheet</a>)<br>You can also check the log file <i>%s</i>",
			domain.CheatSheetURL, html.EscapeString(logPath)),
	}
}

func handoffAnnouncement(outgoing, incoming string, phase entity.OnCallPhase) entity.Alert {
	return entity.Alert{
		Level:  entity.LevelInfo,
		Result: fmt.Sprintf("Phone_Ctlr switched from %s to %s (%s on-call).", html.EscapeString(outgoing), html.EscapeString(incoming), phase),
	}
}

// Alert texts are HTML. Anything coming from the schedule service, the config
// file or an error is escaped before it is combined with markup.
func esc(err error) string {
	if err == nil {
		return ""
	}
	return html.EscapeString(err.Error())
}
