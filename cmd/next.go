package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the question to practice next",
	Long: `Show the highest-priority question of an objective.

Questions due for review come first, then struggling questions, then new
ones, then those still being learned. When the objective has none of these
a new question is generated and added to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		objectiveID, _ := cmd.Flags().GetString("objective")
		showAnswer, _ := cmd.Flags().GetBool("answer")

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			q, err := a.Scheduler.NextQuestion(ctx, a.Config.User, objectiveID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderQuestion(*q, showAnswer))
			fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("Record your answer with `prepdeck review %s --score 0-100`.", q.ID)))
			return nil
		})
	},
}

func init() {
	nextCmd.Flags().StringP("objective", "o", "", "Objective ID (required)")
	nextCmd.Flags().Bool("answer", false, "Also print the reference answer")
	_ = nextCmd.MarkFlagRequired("objective")
}
