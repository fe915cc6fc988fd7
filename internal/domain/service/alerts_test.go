package service

import (
	"errors"
	"testing"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestAlertsEscapeOutsideText(t *testing.T) {
	tests := []struct {
		name     string
		alert    entity.Alert
		escaped  []string
		markup   []string
		rawInput string
	}{
		{
			name: "Should escape the service message and URL",
			alert: serviceErrorAlert(&domain.ServiceError{
				Message: `<img src=x onerror="alert(1)">`,
				URL:     "https://api.pagerduty.com/schedules/P1?a=1&b=<2>",
			}),
			escaped:  []string{"&lt;img src=x onerror=&#34;alert(1)&#34;&gt;", "a=1&amp;b=&lt;2&gt;"},
			markup:   []string{"<br />"},
			rawInput: "<img",
		},
		{
			name: "Should escape the person and the config error",
			alert: missingContactAlert(&domain.MissingContactError{
				Person:    "Eve <b>Admin</b>",
				Direction: "to",
				Field:     "desk_phone",
				Err:       errors.New(`key "<eve>" not found`),
			}, "/etc/phone-agent/<cfg>.toml"),
			escaped:  []string{"Eve &lt;b&gt;Admin&lt;/b&gt;", "&lt;eve&gt;", "/etc/phone-agent/&lt;cfg&gt;.toml"},
			markup:   []string{"<i>", "</i>"},
			rawInput: "<b>Admin",
		},
		{
			name:     "Should escape names in the inconsistent state alert",
			alert:    inconsistentStateAlert("Alice & Co", "<Bob>", "host:/var/log/<x>.log"),
			escaped:  []string{"Alice &amp; Co", "&lt;Bob&gt;", "host:/var/log/&lt;x&gt;.log"},
			markup:   []string{`<a href="` + domain.CheatSheetURL + `">`, "<br>"},
			rawInput: "<Bob>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.alert.Error + tt.alert.Result + tt.alert.Solution
			for _, want := range tt.escaped {
				assert.Contains(t, text, want)
			}
			for _, want := range tt.markup {
				assert.Contains(t, text, want)
			}
			assert.NotContains(t, text, tt.rawInput)
		})
	}
}
