package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/handlers"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/diegoclair/oncall-phone-agent/internal/scheduler"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// serveCmd runs the handoff on a cron schedule and serves health, metrics and Slack commands.
func serveCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve CONFIG_FILE",
		Short: "Run the handoff check on a schedule and serve the HTTP endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			return withApp(cmd, opts, args[0], func(ctx context.Context, a *app) error {
				return serve(ctx, a)
			})
		},
	}
	cmd.Flags().BoolVarP(&opts.test, "test", "t", false, "place no real calls and send no escalation email")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	cfg := a.store.Serve()

	sched, err := scheduler.New(ctx, a.handoff, cfg.Cron, a.agent.Location, contract.RunRequest{TestMode: a.test})
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           a.routes(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Server starting", "addr", cfg.Listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (a *app) routes(ctx context.Context) http.Handler {
	handler := handlers.New(a.handoff, a.store.Slack().SigningSecret, a.agent.Location)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handler.HandleHealth)
	mux.Handle("/metrics", a.metrics.Handler())
	if a.store.Slack().SigningSecret != "" {
		mux.HandleFunc("/slack/commands", handler.HandleSlashCommand)
	} else {
		logger.Warn(ctx, "No Slack signing secret; slash commands are disabled")
	}

	log := logger.FromContext(ctx)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), log)))
	})
}
