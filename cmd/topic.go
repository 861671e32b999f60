package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/store"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Maintain per-topic mastery levels",
}

var topicSetCmd = &cobra.Command{
	Use:   "set <topic> <level>",
	Short: "Set the mastery level (0-100) of a topic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.ToLower(strings.TrimSpace(args[0]))
		if topic == "" {
			return fmt.Errorf("topic is required")
		}
		level, err := strconv.ParseFloat(args[1], 64)
		if err != nil || level < 0 || level > 100 {
			return fmt.Errorf("invalid level %q: must be a number from 0 to 100", args[1])
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return a.Store.SetTopicMastery(ctx, store.TopicMastery{
				UserID:       a.Config.User,
				Topic:        topic,
				MasteryLevel: level,
			})
		})
	},
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topic mastery levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			topics, err := a.Store.ListTopicMastery(ctx, a.Config.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(topics) == 0 {
				fmt.Fprintln(out, "No topic mastery recorded.")
				return nil
			}
			for _, t := range topics {
				fmt.Fprintf(out, "%-24s  %6.1f  %s\n", t.Topic, t.MasteryLevel, t.UpdatedAt.Local().Format("2006-01-02"))
			}
			return nil
		})
	},
}

func init() {
	topicCmd.AddCommand(topicSetCmd)
	topicCmd.AddCommand(topicListCmd)
}
