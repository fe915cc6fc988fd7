package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history CONFIG_FILE",
		Short: "List the latest journaled runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, args[0], func(ctx context.Context, a *app) error {
				runs, err := a.handoff.RecentRuns(ctx, limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
					return nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderHistory(runs, a.agent.Location))
				if limit == 1 && len(runs[0].Calls) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), renderCalls(runs[0].Calls))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "number", "n", 10, "number of runs to show")
	return cmd
}
