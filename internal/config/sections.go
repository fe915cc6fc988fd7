package config

import (
	"fmt"
	"strings"
	"time"
)

type AWS struct {
	AccessKey string
	SecretKey string
}

type PagerDuty struct {
	BaseURL string
	User    string
	Token   string
	Timeout time.Duration
}

type Twilio struct {
	Account     string
	Token       string
	CallerID    string
	Controller  string
	TwimletBase string
}

type Agent struct {
	Location        *time.Location
	DeskPrefix      string
	DeskReplacement string
	Lookahead       time.Duration
}

type Email struct {
	Driver       string
	From         string
	To           []string
	Region       string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

type Slack struct {
	Token         string
	Channel       string
	SigningSecret string
}

type Serve struct {
	Cron   string
	Listen string
}

func (s *Store) AWS() AWS {
	return AWS{
		AccessKey: s.get("awsprod.access_key"),
		SecretKey: s.get("awsprod.secret_key"),
	}
}

func (s *Store) PagerDuty() (PagerDuty, error) {
	timeout, err := s.duration("pagerduty.timeout")
	if err != nil {
		return PagerDuty{}, err
	}
	return PagerDuty{
		BaseURL: s.get("pagerduty.base_url"),
		User:    s.get("pagerduty.user"),
		Token:   s.get("pagerduty.token"),
		Timeout: timeout,
	}, nil
}

// Twilio requires the account and token; without them no call can be placed.
func (s *Store) Twilio() (Twilio, error) {
	tw := Twilio{
		Account:     s.get("twilio.account"),
		Token:       s.get("twilio.token"),
		CallerID:    s.get("twilio.caller_id"),
		Controller:  s.get("twilio.controller_number"),
		TwimletBase: s.get("twilio.twimlet_base"),
	}
	if tw.Account == "" || tw.Token == "" {
		return tw, fmt.Errorf("%w: [twilio] account and token", ErrNotFound)
	}
	return tw, nil
}

func (s *Store) Agent() (Agent, error) {
	loc, err := time.LoadLocation(s.get("agent.timezone"))
	if err != nil {
		return Agent{}, fmt.Errorf("invalid [agent] timezone: %w", err)
	}
	lookahead, err := s.duration("agent.lookahead")
	if err != nil {
		return Agent{}, err
	}
	return Agent{
		Location:        loc,
		DeskPrefix:      s.get("agent.desk_prefix"),
		DeskReplacement: s.get("agent.desk_replacement"),
		Lookahead:       lookahead,
	}, nil
}

// Email returns the mail settings. The owner, when set, is added to the recipients.
func (s *Store) Email() Email {
	var to []string
	for _, addr := range strings.Split(s.get("email.to")+","+s.get("email.owner"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	return Email{
		Driver:       strings.ToLower(s.get("email.driver")),
		From:         s.get("email.from"),
		To:           to,
		Region:       s.get("email.region"),
		SMTPHost:     s.get("email.smtp_host"),
		SMTPPort:     s.v.GetInt("email.smtp_port"),
		SMTPUser:     s.get("email.smtp_user"),
		SMTPPassword: s.get("email.smtp_password"),
	}
}

func (s *Store) Slack() Slack {
	return Slack{
		Token:         s.get("slack.token"),
		Channel:       s.get("slack.channel"),
		SigningSecret: s.get("slack.signing_secret"),
	}
}

func (s *Store) Serve() Serve {
	return Serve{
		Cron:   s.get("serve.cron"),
		Listen: s.get("serve.listen"),
	}
}

// JournalPath is empty when runs are not journaled.
func (s *Store) JournalPath() string {
	return s.get("journal.path")
}

// MetricsTextfile is empty when one-shot runs do not export metrics.
func (s *Store) MetricsTextfile() string {
	return s.get("metrics.textfile")
}

// LogFile is empty when the default state location should be used.
func (s *Store) LogFile() string {
	return s.get("logging.file")
}
