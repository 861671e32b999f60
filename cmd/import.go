package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/importer"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck of questions from YAML or XLSX",
	Long: `Import a deck of questions into an objective.

YAML decks name their objective in the "objective" key. XLSX decks use the
sheet name as the objective; pass --sheet to pick a sheet other than the first.
Questions already present in the objective are skipped.

Use --template to write an empty XLSX deck with the expected columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")
		template, _ := cmd.Flags().GetBool("template")
		out := cmd.OutOrStdout()

		if template {
			name := sheet
			if name == "" {
				name = "Questions"
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := importer.WriteXLSXTemplate(f, name); err != nil {
				f.Close()
				return fmt.Errorf("write template: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote template to %s\n", args[0])
			return nil
		}

		deck, err := readDeck(args[0], sheet)
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			res, err := a.Importer.Import(ctx, a.Config.User, deck)
			if err != nil {
				return err
			}

			verb := "Updated"
			if res.CreatedObjective {
				verb = "Created"
			}
			fmt.Fprintf(out, "%s objective %s (%s)\n", verb, deck.Objective, res.ObjectiveID)
			fmt.Fprintf(out, "%s  %s\n",
				theme.Good.Render(fmt.Sprintf("%d imported", res.Imported)),
				theme.Label.Render(fmt.Sprintf("%d skipped", res.Skipped)))
			for _, e := range res.Errors {
				fmt.Fprintln(out, theme.Bad.Render("  "+e))
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d questions failed to import", len(res.Errors))
			}
			return nil
		})
	},
}

func init() {
	importCmd.Flags().String("sheet", "", "XLSX sheet to read or, with --template, to create")
	importCmd.Flags().Bool("template", false, "Write an empty XLSX deck to <file> instead of importing")
}

func readDeck(path, sheet string) (*importer.Deck, error) {
	if sheet == "" {
		return importer.ReadFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return importer.ParseXLSX(f, sheet)
}
