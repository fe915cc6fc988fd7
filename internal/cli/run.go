package cli

import (
	"context"
	"fmt"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/spf13/cobra"
)

func runOnce(cmd *cobra.Command, opts *globalOptions, configPath string, req contract.RunRequest, extra []string) error {
	return withApp(cmd, opts, configPath, func(ctx context.Context, a *app) error {
		if len(extra) > 0 {
			logger.Debug(ctx, "End datetime is accepted but not used", "end", extra[0])
		}

		run, err := a.handoff.Run(ctx, req)
		if run != nil && opts.verbose {
			fmt.Fprintln(cmd.OutOrStdout(), renderRun(run, a.agent.Location))
		}

		if path := a.store.MetricsTextfile(); path != "" {
			if werr := a.metrics.WriteTextfile(path); werr != nil {
				logger.Warn(ctx, "Failed to write the metrics textfile", "path", path, "error", werr)
			}
		}
		return err
	})
}
