package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run background jobs until interrupted",
	Long: `Run the periodic jobs: warming every objective's practice queue with a
generated question and pruning old LLM events. Logs are JSON unless
log.format is set.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		v.SetDefault("log.format", "json")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := a.Cron()
			if err := runner.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			runner.Stop()
			return nil
		})
	},
}
