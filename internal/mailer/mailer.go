// Package mailer emails alerts to the operations team.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
)

var errNoRecipients = errors.New("no email recipients configured")

// Message is one rendered email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer is a Notifier that emails error alerts. Informational alerts are not mailed.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	from     string
	to       []string
}

var _ contract.Notifier = (*Mailer)(nil)

func New(sender Sender, renderer *Renderer, from string, to []string) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, from: from, to: to}
}

func (m *Mailer) Notify(ctx context.Context, alert entity.Alert) error {
	if alert.Level != entity.LevelError {
		return nil
	}
	if len(m.to) == 0 {
		return errNoRecipients
	}

	body, err := m.renderer.Render(alert)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Sending an email", "to", strings.Join(m.to, ","), "subject", domain.AlertSubject)
	if err := m.sender.Send(ctx, Message{From: m.from, To: m.to, Subject: domain.AlertSubject, HTML: body}); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
