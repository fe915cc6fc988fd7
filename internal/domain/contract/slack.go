package contract

import "github.com/slack-go/slack"

// SlackClient is the part of *slack.Client the alert notifier posts through.
type SlackClient interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}
