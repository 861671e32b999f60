package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var reviewCmd = &cobra.Command{
	Use:   "review <question-id>",
	Short: "Record how well you answered a question",
	Long: `Record a review of a question.

--score takes a 0-100 self-assessment and reschedules the question; a score
of 60 or more counts as remembered. --remembered only appends the outcome to
the review ledger and leaves the schedule untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		scoreSet := flags.Changed("score")
		rememberedSet := flags.Changed("remembered")
		if scoreSet == rememberedSet {
			return fmt.Errorf("exactly one of --score or --remembered is required")
		}
		score, _ := flags.GetInt("score")
		remembered, _ := flags.GetBool("remembered")

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			user := a.Config.User

			if rememberedSet {
				if _, err := a.Store.GetQuestion(ctx, user, args[0]); err != nil {
					return err
				}
				if err := a.Progress.RecordReview(ctx, user, args[0], remembered); err != nil {
					return err
				}
				fmt.Fprintln(out, outcome(remembered))
				return nil
			}

			q, err := a.Progress.SubmitReview(ctx, user, args[0], score)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, outcome(srs.Passed(score)))
			fmt.Fprintln(out, components.KVList(
				components.KV{Key: "Next review", Value: srs.NextReviewDate(*q, *q.LastReviewed).Local().Format("2006-01-02")},
				components.KV{Key: "Interval", Value: fmt.Sprintf("%dd", q.ReviewInterval)},
				components.KV{Key: "Ease", Value: fmt.Sprintf("%.2f", q.ReviewEase)},
			))
			return nil
		})
	},
}

func init() {
	reviewCmd.Flags().IntP("score", "s", 0, "Self-assessed score, 0-100")
	reviewCmd.Flags().Bool("remembered", false, "Record a remembered/forgotten outcome without rescheduling")
}

func outcome(remembered bool) string {
	if remembered {
		return theme.Good.Render("✓ Remembered")
	}
	return theme.Bad.Render("✗ Forgotten")
}
