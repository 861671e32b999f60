package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show mastery trend, recent reviews and topic mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			an, err := a.Progress.Analytics(ctx, a.Config.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(an)
			}

			o := an.OverallProgress
			fmt.Fprintln(out, components.Section("Overall", components.KVList(
				components.KV{Key: "Reviews", Value: fmt.Sprint(o.TotalQuestions)},
				components.KV{Key: "Correct", Value: fmt.Sprint(o.CorrectAnswers)},
				components.KV{Key: "Incorrect", Value: fmt.Sprint(o.IncorrectAnswers)},
				components.KV{Key: "Mastery", Value: fmt.Sprintf("%d%%", o.MasteryScore)},
			)))

			if len(an.ProgressTrend) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, theme.Title.Render("Mastery trend"))
				for _, p := range an.ProgressTrend {
					fmt.Fprintln(out, components.NewProgressBar(p.Date, 10, float64(p.Score)/100, 30).View())
				}
			}

			if len(an.RecentReviews) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, theme.Title.Render("Recent reviews"))
				for _, r := range an.RecentReviews {
					fmt.Fprintf(out, "%s  %s  %s\n",
						r.ReviewedAt.Local().Format("2006-01-02 15:04"), outcome(r.Remembered), r.QuestionID)
				}
			}

			if len(an.TopicMastery) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, theme.Title.Render("Topic mastery"))
				width := 0
				for _, t := range an.TopicMastery {
					if len(t.Topic) > width {
						width = len(t.Topic)
					}
				}
				for _, t := range an.TopicMastery {
					fmt.Fprintln(out, components.NewProgressBar(t.Topic, width, t.MasteryLevel/100, 30).View())
				}
			}
			return nil
		})
	},
}

func init() {
	analyticsCmd.Flags().Bool("json", false, "Print analytics as JSON")
}
