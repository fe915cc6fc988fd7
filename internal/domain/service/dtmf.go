package service

import (
	"fmt"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
)

type ToggleAction int

const (
	ToggleEnable ToggleAction = iota + 1
	ToggleDisable
)

func (a ToggleAction) String() string {
	switch a {
	case ToggleEnable:
		return "enable"
	case ToggleDisable:
		return "disable"
	default:
		return fmt.Sprintf("ToggleAction(%d)", int(a))
	}
}

// ToggleCommand is one request to the phone controller's remote setup line.
type ToggleCommand struct {
	Action    ToggleAction
	Extension int
}

// Digits formats the DTMF sequence: feature code, a pause, then the extension
// entered twice, each terminated by '#'.
func (c ToggleCommand) Digits() string {
	prefix := domain.DTMFEnablePrefix
	if c.Action == ToggleDisable {
		prefix = domain.DTMFDisablePrefix
	}
	return fmt.Sprintf("%sw%d#%d#", prefix, c.Extension, c.Extension)
}
