package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review totals and upcoming reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			m, err := a.Progress.UserMetrics(ctx, a.Config.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, components.Section("Progress", components.KVList(
				components.KV{Key: "Reviews", Value: fmt.Sprint(m.TotalQuestions)},
				components.KV{Key: "Correct", Value: fmt.Sprint(m.CorrectAnswers)},
				components.KV{Key: "Incorrect", Value: fmt.Sprint(m.IncorrectAnswers)},
				components.KV{Key: "Mastery", Value: fmt.Sprintf("%d%%", m.MasteryScore)},
			)))

			if len(m.NextReviewDates) == 0 {
				fmt.Fprintln(out, theme.Hint.Render("No questions yet."))
				return nil
			}

			type due struct {
				id string
				at time.Time
			}
			upcoming := make([]due, 0, len(m.NextReviewDates))
			for id, at := range m.NextReviewDates {
				upcoming = append(upcoming, due{id, at})
			}
			sort.Slice(upcoming, func(i, j int) bool {
				if upcoming[i].at.Equal(upcoming[j].at) {
					return upcoming[i].id < upcoming[j].id
				}
				return upcoming[i].at.Before(upcoming[j].at)
			})
			if limit > 0 && len(upcoming) > limit {
				upcoming = upcoming[:limit]
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.Title.Render("Next reviews"))
			for _, d := range upcoming {
				fmt.Fprintf(out, "%-10s  %s\n", d.at.Local().Format("2006-01-02"), d.id)
			}
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of upcoming reviews to show (0 = all)")
}
