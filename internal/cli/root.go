package cli

import (
	"context"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	debug     bool
	verbose   bool
	test      bool
	logFormat string
}

func (o *globalOptions) loggerOptions() []logger.Option {
	opts := []logger.Option{logger.WithFormat(o.logFormat)}
	if o.debug {
		opts = append(opts, logger.WithDebug())
	}
	if o.verbose {
		opts = append(opts, logger.WithVerbose())
	}
	return opts
}

// NewRootCmd builds the one-shot handoff command and attaches the subcommands.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var lookahead int

	cmd := &cobra.Command{
		Use:   "phone-agent CONFIG_FILE [START_DATETIME [END_DATETIME]]",
		Short: "Switch the on-call phone forwarding when the PagerDuty schedule hands off",
		Long: `Checks the PagerDuty schedule around START_DATETIME (default: now) and, when the
on-call person changes, moves the phone forwarding from the outgoing person to the
incoming one and calls both of them to confirm.`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, extra := runRequest(cmd, opts, args, lookahead)
			return runOnce(cmd, opts, args[0], req, extra)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.debug, "debug", "d", false, "log debug messages")
	flags.BoolVar(&opts.verbose, "verbose", false, "show info messages on the console")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format (text or json)")
	cmd.Flags().BoolVarP(&opts.test, "test", "t", false, "place no real calls and send no escalation email")
	cmd.Flags().IntVarP(&lookahead, "lookahead", "l", 8, "minutes of schedule to examine before and after the start time")

	cmd.AddCommand(serveCmd(opts), scheduleCmd(opts), historyCmd(opts))
	return cmd
}

// runRequest turns the positionals and flags into a run request. The returned
// slice holds the unused END_DATETIME, if given.
func runRequest(cmd *cobra.Command, opts *globalOptions, args []string, lookahead int) (contract.RunRequest, []string) {
	req := contract.RunRequest{TestMode: opts.test}
	var extra []string
	if len(args) > 1 {
		req.Reference = args[1]
		extra = args[2:]
	}
	if cmd.Flags().Changed("lookahead") {
		width := time.Duration(lookahead) * time.Minute
		req.Lookahead = &width
	}
	return req, extra
}

// withApp builds the application for configPath, runs fn and releases it.
func withApp(cmd *cobra.Command, opts *globalOptions, configPath string, fn func(ctx context.Context, a *app) error) error {
	ctx := logger.WithLogger(cmd.Context(), logger.NewLogger(opts.loggerOptions()...))
	ctx, a, err := newApp(ctx, opts, configPath)
	if a != nil {
		defer func() {
			if cerr := a.Close(); cerr != nil {
				logger.Warn(ctx, "Failed to release resources", "error", cerr)
			}
		}()
	}
	if err != nil {
		logger.Error(ctx, "Failed to start", "error", err)
		return err
	}
	return fn(ctx, a)
}
