package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/llm"
	"github.com/abhisek/prepdeck/internal/logging"
	"github.com/abhisek/prepdeck/internal/questiongen"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a role (no database)",
	Long: `Generate a batch of questions for a role and print them.

This is a stateless tool: nothing is stored and no LLM events are logged.
Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("role", "", "Role or objective to generate for (required)")
	previewCmd.Flags().String("difficulty", questiongen.DifficultyMedium, "easy, medium or hard")
	previewCmd.Flags().Int("count", 3, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("role")
}

func runPreview(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("role")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	switch strings.ToLower(difficulty) {
	case questiongen.DifficultyEasy, questiongen.DifficultyMedium, questiongen.DifficultyHard:
		difficulty = strings.ToLower(difficulty)
	default:
		return fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", difficulty)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	llmCfg, ok := llm.DiscoverConfig(cfg.LLM)
	if !ok {
		return fmt.Errorf("no LLM provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY")
	}

	// No event repo: preview runs are not logged.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, llmCfg, nil, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, cfg.QuestionGen.GeneratorConfig())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Role: %s (%s, %s)\n", role, difficulty, provider.ModelID())
	fmt.Fprintf(out, "Generating %d questions...\n\n", count)

	qs, err := gen.Generate(ctx, questiongen.GenerateInput{
		UserID:     cfg.User,
		Role:       role,
		Difficulty: difficulty,
		Count:      count,
	})
	if err != nil {
		return err
	}

	for i, q := range qs {
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("── Question %d/%d ──", i+1, len(qs))))
		fmt.Fprintln(out, q.Text)
		if len(q.Topics) > 0 {
			fmt.Fprintln(out, theme.Label.Render("Topics: "+strings.Join(q.Topics, ", ")))
		}
		if q.IdealAnswerSummary != "" {
			fmt.Fprintln(out, theme.Hint.Render(q.IdealAnswerSummary))
		}
		fmt.Fprintln(out)
	}
	return nil
}
