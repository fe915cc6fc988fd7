// Package slack mirrors alerts into a Slack channel and parses the /oncall command.
package slack

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/slack-go/slack"
)

var (
	linkPattern = regexp.MustCompile(`<a href="([^"]+)">([^<]*)</a>`)
	tagReplacer = strings.NewReplacer("<br />", "\n", "<br/>", "\n", "<br>", "\n", "<i>", "_", "</i>", "_", "<b>", "*", "</b>", "*")
)

// Notifier posts alerts to one channel.
type Notifier struct {
	client  contract.SlackClient
	channel string
}

var _ contract.Notifier = (*Notifier)(nil)

func NewNotifier(client contract.SlackClient, channel string) *Notifier {
	return &Notifier{client: client, channel: channel}
}

func (n *Notifier) Notify(ctx context.Context, alert entity.Alert) error {
	_, _, err := n.client.PostMessage(n.channel,
		slack.MsgOptionText(FormatAlert(alert), false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("failed to post to slack: %w", err)
	}
	return nil
}

// FormatAlert renders an alert as Slack mrkdwn.
func FormatAlert(alert entity.Alert) string {
	if alert.Level == entity.LevelInfo {
		return ":telephone_receiver: " + toMrkdwn(alert.Result)
	}

	var b strings.Builder
	b.WriteString(":rotating_light: *On-call phone switch error*\n")
	b.WriteString("*Error:* " + toMrkdwn(alert.Error) + "\n")
	if alert.Result != "" {
		b.WriteString("*Result:* " + toMrkdwn(alert.Result) + "\n")
	}
	if alert.Solution != "" {
		b.WriteString("*Solution:* " + toMrkdwn(alert.Solution) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func toMrkdwn(s string) string {
	return html.UnescapeString(tagReplacer.Replace(linkPattern.ReplaceAllString(s, "<$1|$2>")))
}

type fanout []contract.Notifier

// Fanout delivers every alert to all notifiers, even when one of them fails.
func Fanout(notifiers ...contract.Notifier) contract.Notifier {
	var out fanout
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (f fanout) Notify(ctx context.Context, alert entity.Alert) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
