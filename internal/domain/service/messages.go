package service

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// DefaultTwimletBase serves TwiML given in the query string back to the caller.
const DefaultTwimletBase = "http://twimlets.com"

// voiceMessages builds the spoken-message URLs played on confirmation and troubleshooting calls.
type voiceMessages struct {
	twimletBase string
}

func newVoiceMessages(twimletBase string) voiceMessages {
	if twimletBase == "" {
		twimletBase = DefaultTwimletBase
	}
	return voiceMessages{twimletBase: strings.TrimRight(twimletBase, "/")}
}

func (m voiceMessages) echoURL(voice, text string) string {
	say := "<Say>"
	if voice != "" {
		say = fmt.Sprintf("<Say voice=%q>", voice)
	}
	twiml := "<Response>" + say + html.EscapeString(text) + "</Say></Response>"
	return m.twimletBase + "/echo?Twiml=" + url.QueryEscape(twiml)
}

func (m voiceMessages) enabled(incoming string) string {
	return m.echoURL("", fmt.Sprintf(
		"Hello %s, this is the Phone Monkey from My_Company. The support extension has been enabled for your phone. "+
			"You are officially on-call. Have a good one! Good bye!", incoming))
}

func (m voiceMessages) offDuty(outgoing string) string {
	return m.echoURL("woman", fmt.Sprintf(
		"Hello %s, this is the Phone Monkey from My_Company. The support extension switchover was successful. "+
			"You are now off-duty. Take it easy! Good bye!", outgoing))
}

func (m voiceMessages) inconsistentForOutgoing(outgoing, incoming string) string {
	return m.echoURL("", fmt.Sprintf(
		"Hello %s, this is Romeo from My_Company reporting an error. The Phone_Ctlr might be in an inconsistent state. "+
			"Please contact %s, the new on-call person, to troubleshoot. Thank you.", outgoing, incoming))
}

func (m voiceMessages) inconsistentForIncoming(incoming, outgoing string) string {
	return m.echoURL("woman", fmt.Sprintf(
		"Hello %s, this is Juliette from My_Company reporting an error. The Phone_Ctlr might be in an inconsistent state. "+
			"Please contact %s, the previous on-call person, to troubleshoot. Thank you.", incoming, outgoing))
}
