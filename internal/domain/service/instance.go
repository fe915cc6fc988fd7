package service

import (
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
)

// Settings are the per-site values of the handoff controller.
type Settings struct {
	Location         *time.Location
	Intervals        []DailyInterval
	DeskPrefix       string
	DeskReplacement  string
	ControllerNumber string
	TwimletBase      string
	DefaultLookahead time.Duration
	// ConfigPath and LogPath are quoted in alert emails.
	ConfigPath string
	LogPath    string
}

// Dependencies are built once per process and handed to every run.
type Dependencies struct {
	Config   contract.ConfigStore
	Schedule contract.ScheduleClient
	Calls    contract.CallPlacer
	DryRun   contract.CallPlacer
	Notifier contract.Notifier
	Clock    contract.Clock
	Recorder contract.Recorder
	// Data is optional; without it runs are not journaled.
	Data     contract.DataManager
	Settings Settings
}

type Instance struct {
	Handoff *handoffService
}

func NewInstance(deps Dependencies) *Instance {
	if deps.Clock == nil {
		deps.Clock = NewClock()
	}
	if deps.Recorder == nil {
		deps.Recorder = noopRecorder{}
	}

	return &Instance{
		Handoff: newHandoff(deps),
	}
}
