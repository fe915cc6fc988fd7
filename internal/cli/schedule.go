package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/service"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/spf13/cobra"
)

// scheduleCmd shows what a run would decide without placing any call.
func scheduleCmd(opts *globalOptions) *cobra.Command {
	var lookahead int

	cmd := &cobra.Command{
		Use:   "schedule CONFIG_FILE [START_DATETIME]",
		Short: "Show the on-call entries around a time and the handoff they imply",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			literal := ""
			if len(args) > 1 {
				literal = args[1]
			}
			return withApp(cmd, opts, args[0], func(ctx context.Context, a *app) error {
				reference, err := service.ResolveReference(literal, time.Now(), a.agent.Location)
				if err != nil {
					return err
				}
				window := service.ResolveWindow(reference, a.agent.Lookahead)
				if cmd.Flags().Changed("lookahead") {
					window = service.ResolveWindow(reference, time.Duration(lookahead)*time.Minute)
				}

				scheduleID, err := a.store.Get(service.SectionAWS, service.KeyScheduleID)
				if err != nil {
					return fmt.Errorf("missing %s: %w", service.KeyScheduleID, err)
				}

				schedule, err := a.schedule.FetchEntries(ctx, scheduleID, window, func(attempt int, err error) {
					logger.Warn(ctx, "Schedule fetch failed", "attempt", attempt, "error", err)
				})
				if err != nil {
					return err
				}

				phase := service.NewPassiveGate(a.agent.Location, nil).Classify(reference)
				fmt.Fprintln(cmd.OutOrStdout(), renderSchedule(schedule.Entries, service.Decide(schedule.Entries), phase, a.agent.Location))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&lookahead, "lookahead", "l", 8, "minutes of schedule to examine around the start time")
	return cmd
}
