package service

import (
	"testing"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "1-408-555-0101", want: "+14085550101"},
		{raw: "4085550101", want: "+14085550101"},
		{raw: "(408) 555-0202", want: "+14085550202"},
		{raw: "408.555.0202", want: "+14085550202"},
		{raw: "+1 408 555 0303", want: "+14085550303"},
		{raw: "408-555-０１０１", want: "+1408555"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCell(tt.raw))
		})
	}
}

func TestExpandDesk(t *testing.T) {
	tests := []struct {
		name      string
		extension string
		want      string
	}{
		{name: "Should replace the internal prefix", extension: "71234", want: "+14085401234"},
		{name: "Should replace only the leading prefix", extension: "77777", want: "+14085407777"},
		{name: "Should keep an extension without the prefix", extension: "51234", want: "51234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandDesk(tt.extension, domain.DefaultDeskPrefix, domain.DefaultDeskReplacement))
		})
	}

	t.Run("Should keep the extension when no prefix is configured", func(t *testing.T) {
		assert.Equal(t, "71234", ExpandDesk("71234", "", "+1408540"))
	})
}
