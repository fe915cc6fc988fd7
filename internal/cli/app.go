package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/diegoclair/oncall-phone-agent/internal/config"
	"github.com/diegoclair/oncall-phone-agent/internal/database"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/service"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/diegoclair/oncall-phone-agent/internal/mailer"
	"github.com/diegoclair/oncall-phone-agent/internal/metrics"
	"github.com/diegoclair/oncall-phone-agent/internal/pagerduty"
	slacknotify "github.com/diegoclair/oncall-phone-agent/internal/slack"
	"github.com/diegoclair/oncall-phone-agent/internal/telephony"
	"github.com/slack-go/slack"
)

const defaultLogFile = "phone-agent/phone-agent.log"

// app holds the long-lived clients of one process.
type app struct {
	store    *config.Store
	agent    config.Agent
	schedule contract.ScheduleClient
	metrics  *metrics.Recorder
	handoff  contract.HandoffService
	logPath  string
	test     bool
	closers  []io.Closer
}

// newApp loads the config file, switches ctx to the application logger and
// wires every client. The returned context carries the logger.
func newApp(ctx context.Context, opts *globalOptions, configPath string) (context.Context, *app, error) {
	store, err := config.Load(configPath)
	if err != nil {
		return ctx, nil, err
	}

	a := &app{store: store, metrics: metrics.New(), test: opts.test}

	a.logPath, err = logFilePath(store.LogFile())
	if err != nil {
		return ctx, nil, err
	}
	logFile := logger.NewRotatingFile(a.logPath)
	a.closers = append(a.closers, logFile)
	ctx = logger.WithLogger(ctx, logger.NewLogger(append(opts.loggerOptions(), logger.WithWriter(logFile))...))

	if a.agent, err = store.Agent(); err != nil {
		return ctx, a, err
	}

	pd, err := store.PagerDuty()
	if err != nil {
		return ctx, a, err
	}
	a.schedule = pagerduty.New(pd.BaseURL, pd.User, pd.Token, pagerduty.WithTimeout(pd.Timeout))

	notifier, err := a.notifier(ctx)
	if err != nil {
		return ctx, a, err
	}

	var calls contract.CallPlacer = telephony.DryRunPlacer{}
	tw, err := store.Twilio()
	switch {
	case err == nil:
		calls = telephony.NewTwilioPlacer(tw.Account, tw.Token, tw.CallerID, tw.TwimletBase)
	case !opts.test:
		return ctx, a, err
	default:
		logger.Warn(ctx, "No Twilio credentials; only test mode calls are possible")
	}

	var data contract.DataManager
	if path := store.JournalPath(); path != "" {
		db, err := database.Open(path)
		if err != nil {
			return ctx, a, err
		}
		a.closers = append(a.closers, db)
		data = database.NewInstance(db)
	}

	absConfig, _ := filepath.Abs(configPath)
	host, _ := os.Hostname()
	instance := service.NewInstance(service.Dependencies{
		Config:   store,
		Schedule: a.schedule,
		Calls:    calls,
		DryRun:   telephony.DryRunPlacer{},
		Notifier: notifier,
		Recorder: a.metrics,
		Data:     data,
		Settings: service.Settings{
			Location:         a.agent.Location,
			DeskPrefix:       a.agent.DeskPrefix,
			DeskReplacement:  a.agent.DeskReplacement,
			ControllerNumber: tw.Controller,
			TwimletBase:      tw.TwimletBase,
			DefaultLookahead: a.agent.Lookahead,
			ConfigPath:       absConfig,
			LogPath:          fmt.Sprintf("%s:%s", host, a.logPath),
		},
	})
	a.handoff = instance.Handoff

	return ctx, a, nil
}

func (a *app) notifier(ctx context.Context) (contract.Notifier, error) {
	renderer, err := mailer.NewRenderer()
	if err != nil {
		return nil, err
	}

	email := a.store.Email()
	var sender mailer.Sender
	switch email.Driver {
	case "smtp":
		sender = mailer.NewSMTPSender(email.SMTPHost, email.SMTPPort, email.SMTPUser, email.SMTPPassword)
	case "ses", "":
		aws := a.store.AWS()
		sender = mailer.NewSESSender(email.Region, aws.AccessKey, aws.SecretKey)
	default:
		return nil, fmt.Errorf("unknown [email] driver %q", email.Driver)
	}
	notifiers := []contract.Notifier{mailer.New(sender, renderer, email.From, email.To)}

	sl := a.store.Slack()
	if sl.Token != "" && sl.Channel != "" {
		notifiers = append(notifiers, slacknotify.NewNotifier(slack.New(sl.Token), sl.Channel))
		logger.Debug(ctx, "Alerts are mirrored to Slack", "channel", sl.Channel)
	}
	return slacknotify.Fanout(notifiers...), nil
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

// logFilePath returns the configured log file or one under the XDG state directory.
func logFilePath(configured string) (string, error) {
	if configured != "" {
		if err := os.MkdirAll(filepath.Dir(configured), 0o750); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		return configured, nil
	}
	path, err := xdg.StateFile(defaultLogFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve the log file: %w", err)
	}
	return path, nil
}
