package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var objectiveCmd = &cobra.Command{
	Use:     "objective",
	Aliases: []string{"obj"},
	Short:   "Manage learning objectives",
}

var objectiveCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an objective",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			o := &store.Objective{
				UserID:      a.Config.User,
				Name:        strings.TrimSpace(args[0]),
				Description: desc,
			}
			if o.Name == "" {
				return fmt.Errorf("objective name is required")
			}
			if err := a.Store.CreateObjective(ctx, o); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.ID)
			return nil
		})
	},
}

var objectiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your objectives",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			objs, err := a.Store.ListObjectives(ctx, a.Config.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(objs) == 0 {
				fmt.Fprintln(out, theme.Hint.Render("No objectives yet. Create one with `prepdeck objective create`."))
				return nil
			}

			fmt.Fprintf(out, "%-36s  %-10s  %s\n", "ID", "Created", "Name")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, o := range objs {
				fmt.Fprintf(out, "%-36s  %-10s  %s\n", o.ID, o.CreatedAt.Local().Format("2006-01-02"), o.Name)
			}
			return nil
		})
	},
}

var objectiveShowCmd = &cobra.Command{
	Use:   "show <objective-id>",
	Short: "Show an objective's review buckets and practice queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			obj, err := a.Store.GetObjective(ctx, a.Config.User, args[0])
			if err != nil {
				return err
			}
			buckets, err := a.Scheduler.Categorized(ctx, a.Config.User, obj.ID)
			if err != nil {
				return err
			}

			counts := srs.Counts(buckets)
			summary := components.KVList(
				components.KV{Key: "To review", Value: fmt.Sprint(counts[srs.BucketToReview])},
				components.KV{Key: "Struggling", Value: fmt.Sprint(counts[srs.BucketStruggling])},
				components.KV{Key: "New", Value: fmt.Sprint(counts[srs.BucketNew])},
				components.KV{Key: "Learning", Value: fmt.Sprint(counts[srs.BucketLearning])},
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, components.Section(obj.Name, summary))
			if obj.Description != "" {
				fmt.Fprintln(out, theme.Hint.Render(obj.Description))
			}

			queue := buckets.Queue()
			if len(queue) == 0 {
				fmt.Fprintln(out, theme.Hint.Render("No questions yet. `prepdeck next` will generate one."))
				return nil
			}
			fmt.Fprintln(out)
			for i, q := range queue {
				fmt.Fprintf(out, "%2d. %s  %s\n", i+1, q.ID, truncate(oneLine(q.Content), 60))
			}
			return nil
		})
	},
}

func init() {
	objectiveCreateCmd.Flags().StringP("description", "d", "", "Objective description")

	objectiveCmd.AddCommand(objectiveCreateCmd)
	objectiveCmd.AddCommand(objectiveListCmd)
	objectiveCmd.AddCommand(objectiveShowCmd)
}

// oneLine collapses whitespace so content fits a table row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
