package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/config"
	"github.com/abhisek/prepdeck/internal/logging"
	"github.com/abhisek/prepdeck/internal/ratelimit"
	"github.com/abhisek/prepdeck/internal/scheduler"
	"github.com/abhisek/prepdeck/internal/store"
)

// v holds configuration for the process. Persistent flags are bound to it.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:           "prepdeck",
	Short:         "Adaptive interview practice",
	Long:          "Prepdeck picks the interview question you should practice next, tracks how well you recall each one and estimates how ready you are.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./prepdeck.yaml or $XDG_CONFIG_HOME/prepdeck/prepdeck.yaml)")
	flags.String("db", "", "Database DSN; a file path for sqlite (overrides PREPDECK_DB)")
	flags.String("user", "", "Learner id (default $USER)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	_ = v.BindPFlag("database.dsn", flags.Lookup("db"))
	_ = v.BindPFlag("user", flags.Lookup("user"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(objectiveCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(readinessCmd)
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration, honouring --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, file)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == store.DriverSQLite && cfg.Database.DSN != ":memory:" {
		if err := store.EnsureDir(cfg.Database.DSN); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	return cfg, nil
}

// withApp builds the application for one command run and closes it after fn
// returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// errorMessage turns core errors into messages for the terminal.
func errorMessage(err error) string {
	var limited *ratelimit.ErrLimited
	var pe *store.PersistenceError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "not found: " + err.Error()
	case errors.As(err, &limited):
		return fmt.Sprintf("question generation is rate limited, try again in %s", limited.RetryAfter.Round(time.Second))
	case errors.Is(err, scheduler.ErrGenerationFailed):
		return "could not generate a new question: " + err.Error()
	case errors.As(err, &pe):
		return "storage error: " + err.Error()
	default:
		return err.Error()
	}
}
