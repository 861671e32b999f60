package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/questiongen"
	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/ui/components"
)

var questionCmd = &cobra.Command{
	Use:     "question",
	Aliases: []string{"q"},
	Short:   "Manage questions",
}

var questionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question to an objective",
	RunE: func(cmd *cobra.Command, args []string) error {
		objectiveID, _ := cmd.Flags().GetString("objective")
		content, _ := cmd.Flags().GetString("content")
		answer, _ := cmd.Flags().GetString("answer")
		topics, _ := cmd.Flags().GetStringSlice("topics")
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		content = strings.TrimSpace(content)
		if content == "" {
			return fmt.Errorf("--content is required")
		}
		switch difficulty {
		case questiongen.DifficultyEasy, questiongen.DifficultyMedium, questiongen.DifficultyHard:
		default:
			return fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", difficulty)
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			// Fails with ErrNotFound for objectives of other users.
			if _, err := a.Store.GetObjective(ctx, a.Config.User, objectiveID); err != nil {
				return err
			}

			q := srs.NewQuestion("", a.Config.User, content, strings.TrimSpace(answer))
			q.Topics = questiongen.NormalizeTopics(topics)
			q.Category = category
			q.Difficulty = difficulty
			if err := a.Store.CreateQuestionInObjective(ctx, objectiveID, &q); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), q.ID)
			return nil
		})
	},
}

var questionShowCmd = &cobra.Command{
	Use:   "show <question-id>",
	Short: "Show a question and its review state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			q, err := a.Store.GetQuestion(ctx, a.Config.User, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderQuestion(*q, true))
			return nil
		})
	},
}

func init() {
	questionAddCmd.Flags().StringP("objective", "o", "", "Objective ID (required)")
	questionAddCmd.Flags().StringP("content", "c", "", "Question text (required)")
	questionAddCmd.Flags().StringP("answer", "a", "", "Reference answer")
	questionAddCmd.Flags().StringSlice("topics", nil, "Comma-separated topics")
	questionAddCmd.Flags().String("category", "", "Free-form category")
	questionAddCmd.Flags().String("difficulty", questiongen.DifficultyMedium, "easy, medium or hard")
	_ = questionAddCmd.MarkFlagRequired("objective")
	_ = questionAddCmd.MarkFlagRequired("content")

	questionCmd.AddCommand(questionAddCmd)
	questionCmd.AddCommand(questionShowCmd)
}

// renderQuestion formats q as a card. The reference answer is included only
// when withAnswer is set.
func renderQuestion(q srs.Question, withAnswer bool) string {
	pairs := []components.KV{
		{Key: "ID", Value: q.ID},
		{Key: "Difficulty", Value: q.Difficulty},
	}
	if len(q.Topics) > 0 {
		pairs = append(pairs, components.KV{Key: "Topics", Value: strings.Join(q.Topics, ", ")})
	}
	if q.Category != "" {
		pairs = append(pairs, components.KV{Key: "Category", Value: q.Category})
	}
	pairs = append(pairs,
		components.KV{Key: "Reviews", Value: fmt.Sprint(q.ReviewCount)},
		components.KV{Key: "Interval", Value: fmt.Sprintf("%dd", q.ReviewInterval)},
		components.KV{Key: "Ease", Value: fmt.Sprintf("%.2f", q.ReviewEase)},
	)
	if withAnswer && q.Answer != "" {
		pairs = append(pairs, components.KV{Key: "Answer", Value: q.Answer})
	}
	return components.Section(q.Content, components.KVList(pairs...))
}
