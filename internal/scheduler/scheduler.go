// Package scheduler runs the handoff controller on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/robfig/cron/v3"
)

// DefaultSpec checks the schedule every five minutes.
const DefaultSpec = "*/5 * * * *"

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

type Scheduler struct {
	handoff contract.HandoffService
	request contract.RunRequest
	cron    *cron.Cron
	job     cron.Job

	ctx    context.Context
	cancel context.CancelFunc
}

// New schedules handoff runs on spec, evaluated in loc. A tick is skipped
// while the previous run is still switching phones.
func New(ctx context.Context, handoff contract.HandoffService, spec string, loc *time.Location, req contract.RunRequest) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if loc == nil {
		loc = time.Local
	}

	cl := cronLogger{log: logger.FromContext(ctx)}
	s := &Scheduler{
		handoff: handoff,
		request: req,
		cron:    cron.New(cron.WithLocation(loc), cron.WithParser(cronParser), cron.WithLogger(cl)),
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.job = cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(s.tick))

	if _, err := s.cron.AddJob(spec, s.job); err != nil {
		s.cancel()
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info(s.ctx, "Scheduler started", "next", s.Next())
}

// Stop cancels the run in flight and waits for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	logger.Info(s.ctx, "Scheduler stopped")
}

// Next returns the time of the next run.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now())
}

func (s *Scheduler) tick() {
	ctx := s.ctx
	if ctx.Err() != nil {
		return
	}

	run, err := s.handoff.Run(ctx, s.request)
	if err != nil {
		// Fatal for a one-shot run; the next tick tries again.
		logger.Error(ctx, "Run failed", "error", err, "exit_code", domain.ExitCode(err))
		return
	}
	logger.Debug(ctx, "Run finished", "run_id", run.ID, "outcome", run.Outcome)
}

// cronLogger sends cron's own messages to the application logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
