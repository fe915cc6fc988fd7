package domain

import "time"

// Toggle and notification pacing
const (
	// EnableSettleDelay lets the phone controller register the enable before the disable arrives.
	EnableSettleDelay = 5 * time.Second
	// SwitchSettleDelay lets the phone controller finish the switch before anyone is called.
	SwitchSettleDelay = 25 * time.Second
	// TroubleshootDelay separates the two troubleshooting calls.
	TroubleshootDelay = 25 * time.Second
	// CallTimeout is how long an outbound call rings before giving up.
	CallTimeout = 10 * time.Second
)

// Schedule lookup defaults
const (
	DefaultLookahead      = 8 * time.Minute
	MaxFetchAttempts      = 5
	DefaultScheduleFormat = "2006-01-02T15:04:05-0700"
	// QueryTimeout bounds read-only lookups such as the Slack who command.
	QueryTimeout = 2500 * time.Millisecond
)

// Reference time sentinels accepted on the command line
var NowSentinels = []string{"", "now", "0"}

// DTMF prefixes understood by the phone controller's remote setup line
const (
	DTMFEnablePrefix  = "121"
	DTMFDisablePrefix = "122"
)

// Phone number rewriting defaults
const (
	DefaultDeskPrefix      = "7"
	DefaultDeskReplacement = "+1408540"
	CountryCode            = "+1"
)

// Process exit codes
const (
	ExitOK           = 0
	ExitMissingData  = 1
	ExitServiceError = 2
)

// Email defaults
const (
	AlertSubject  = "OPS Automation -- On-call Phone Switcher Script - Error"
	CheatSheetURL = "https://docs.my_company.com/Phone_Ctlr+Cheat+Sheet"
)
