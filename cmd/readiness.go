package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/readiness"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Estimate how ready you are for an interview",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			s, err := a.Readiness.Calculate(ctx, a.Config.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				return json.NewEncoder(out).Encode(struct {
					*readiness.Score
					Level string `json:"level"`
				}{s, s.Level()})
			}

			b := s.Breakdown
			bars := []components.ProgressBar{
				components.NewProgressBar("Mastery", 12, b.Mastery/100, 30),
				components.NewProgressBar("Consistency", 12, b.Consistency/100, 30),
				components.NewProgressBar("Coverage", 12, b.Coverage/100, 30),
				components.NewProgressBar("Recency", 12, b.Recency/100, 30),
			}
			var body string
			for i, bar := range bars {
				if i > 0 {
					body += "\n"
				}
				body += bar.View()
			}

			fmt.Fprintln(out, components.Section(fmt.Sprintf("Readiness %d/100  %s", s.Overall, levelStyle(s.Level())), body))
			return nil
		})
	},
}

func init() {
	readinessCmd.Flags().Bool("json", false, "Print the score as JSON")
}

func levelStyle(level string) string {
	switch level {
	case readiness.LevelReady:
		return theme.Good.Render(level)
	case readiness.LevelDeveloping:
		return theme.Warn.Render(level)
	default:
		return theme.Bad.Render(level)
	}
}
