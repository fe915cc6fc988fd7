package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

var testAlert = entity.Alert{
	Level:    entity.LevelError,
	Error:    "Phone_Ctlr might be in an inconsistent state after switching from Alice Smith to Bob Jones.",
	Result:   "Phone_Ctlr might not be set to escalate to the correct person.",
	Solution: `PLS manually turn on Phone_Ctlr (<a href="https://docs.my_company.com/Phone_Ctlr+Cheat+Sheet">cheat sheet</a>)`,
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	renderer.host = "ops-box-1"
	renderer.binary = "/opt/tools/phone-agent/phone-agent"
	renderer.now = func() time.Time { return time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC) }
	return renderer
}

func TestRender(t *testing.T) {
	body, err := newTestRenderer(t).Render(testAlert)
	require.NoError(t, err)

	assert.Contains(t, body, "<dt><b>Error:</b></dt><dd>Phone_Ctlr might be in an inconsistent state")
	assert.Contains(t, body, "<dt><b>Result:</b></dt>")
	assert.Contains(t, body, `<a href="https://docs.my_company.com/Phone_Ctlr+Cheat+Sheet">cheat sheet</a>`)
	assert.Contains(t, body, "Sent by phone-agent on ops-box-1 at 2024-01-03T14:00:00")

	t.Run("Should omit empty sections", func(t *testing.T) {
		body, err := newTestRenderer(t).Render(entity.Alert{Level: entity.LevelError, Error: "boom"})
		require.NoError(t, err)
		assert.NotContains(t, body, "Result:")
		assert.NotContains(t, body, "Solution:")
	})

	t.Run("Should name an unknown host", func(t *testing.T) {
		renderer := newTestRenderer(t)
		renderer.host = ""
		body, err := renderer.Render(testAlert)
		require.NoError(t, err)
		assert.Contains(t, body, "on unknown host")
	})
}

func TestMailerNotify(t *testing.T) {
	ctx := context.Background()
	to := []string{"sysEng@my_company.com", "alice@my_company.com"}

	tests := []struct {
		name      string
		alert     entity.Alert
		to        []string
		senderErr error
		wantSent  int
		wantErr   bool
	}{
		{name: "Should mail an error alert", alert: testAlert, to: to, wantSent: 1},
		{name: "Should not mail an informational alert", alert: entity.Alert{Level: entity.LevelInfo, Result: "switched"}, to: to},
		{name: "Should fail without recipients", alert: testAlert, wantErr: true},
		{name: "Should return the sender error", alert: testAlert, to: to, senderErr: errors.New("throttled"), wantSent: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{err: tt.senderErr}
			m := New(sender, newTestRenderer(t), "opsTeam@saasmail.my_company.com", tt.to)

			err := m.Notify(ctx, tt.alert)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			require.Len(t, sender.sent, tt.wantSent)
			if tt.wantSent > 0 {
				msg := sender.sent[0]
				assert.Equal(t, domain.AlertSubject, msg.Subject)
				assert.Equal(t, "opsTeam@saasmail.my_company.com", msg.From)
				assert.Equal(t, to, msg.To)
				assert.Contains(t, msg.HTML, "Alice Smith to Bob Jones")
			}
		})
	}
}

func TestSMTPSender(t *testing.T) {
	var (
		gotAddr string
		gotAuth smtp.Auth
		gotFrom string
		gotTo   []string
		gotMsg  []byte
	)
	sender := NewSMTPSender("smtp.my_company.com", 587, "ops", "secret")
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	err := sender.Send(context.Background(), Message{
		From:    "ops@my_company.com",
		To:      []string{"sysEng@my_company.com\r\nBcc: evil@example.com"},
		Subject: domain.AlertSubject,
		HTML:    "<dl></dl>",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.my_company.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "ops@my_company.com", gotFrom)
	assert.Equal(t, []string{"sysEng@my_company.comBcc: evil@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Subject: "+domain.AlertSubject+"\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.NotContains(t, msg, "\r\nBcc:")
	assert.True(t, strings.HasSuffix(msg, base64.StdEncoding.EncodeToString([]byte("<dl></dl>"))+"\r\n"))

	t.Run("Should not authenticate without a user", func(t *testing.T) {
		sender := NewSMTPSender("localhost", 25, "", "")
		sender.sendMail = func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
			assert.Nil(t, a)
			return nil
		}
		require.NoError(t, sender.Send(context.Background(), Message{From: "a@b", To: []string{"c@d"}}))
	})
}

type fakeSES struct {
	input *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, nil
}

func TestSESSender(t *testing.T) {
	api := &fakeSES{}
	sender := &SESSender{api: api}

	err := sender.Send(context.Background(), Message{
		From:    "opsTeam@saasmail.my_company.com",
		To:      []string{"sysEng@my_company.com"},
		Subject: domain.AlertSubject,
		HTML:    "<dl></dl>",
	})
	require.NoError(t, err)

	require.NotNil(t, api.input)
	assert.Equal(t, "opsTeam@saasmail.my_company.com", *api.input.FromEmailAddress)
	assert.Equal(t, []string{"sysEng@my_company.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, domain.AlertSubject, *api.input.Content.Simple.Subject.Data)
	assert.Equal(t, "<dl></dl>", *api.input.Content.Simple.Body.Html.Data)
}
