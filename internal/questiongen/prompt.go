package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a pragmatic, expert technical interviewer writing practice questions that a candidate answers out loud.

Rules:
- Test practical, real-world knowledge, not textbook definitions.
- Each question has three parts: explain a concept, principle or technology; say why it is used or what problem it solves; apply it with a short code example, a refactoring task or a walk-through of a process.
- Write each question as one self-contained paragraph addressed to the candidate.
- The ideal answer summary lists what a strong answer covers for all three parts. Another model grades answers against it, so be specific.
- Tag every question with 1-5 short lowercase topics, hyphenated, e.g. "system-design", "data-structures", "react-hooks".
- Set difficulty to "easy", "medium" or "hard".
- Do not produce a question that is substantively the same as one in the "already asked" list.

Example for a PHP role:
"Let's start with the 'S' in SOLID, the Single Responsibility Principle. Can you explain what it states? What is the main benefit of following it, and could you show a small PHP class that violates it and how you would refactor it?"`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Role: %s\n", input.Role)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildExclusions(input.ExistingQuestions, cfg.MaxExistingQuestions))

	fmt.Fprintf(&b, "\n\nGenerate %d question(s) for the role of %q.", input.Count, input.Role)
	return b.String()
}

// buildExclusions formats existing questions for the prompt, keeping the
// last max entries. Returns "None" when there are none.
func buildExclusions(existing []string, max int) string {
	if len(existing) == 0 {
		return "None"
	}

	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for _, q := range existing {
		fmt.Fprintf(&b, "- %s\n", strings.Join(strings.Fields(q), " "))
	}
	return strings.TrimRight(b.String(), "\n")
}
