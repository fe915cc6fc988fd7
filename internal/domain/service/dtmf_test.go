package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleCommandDigits(t *testing.T) {
	tests := []struct {
		name string
		cmd  ToggleCommand
		want string
	}{
		{name: "enable", cmd: ToggleCommand{Action: ToggleEnable, Extension: 75678}, want: "121w75678#75678#"},
		{name: "disable", cmd: ToggleCommand{Action: ToggleDisable, Extension: 71234}, want: "122w71234#71234#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.Digits())
			assert.Equal(t, tt.name, tt.cmd.Action.String())
		})
	}

	assert.Equal(t, "ToggleAction(9)", ToggleAction(9).String())
}
