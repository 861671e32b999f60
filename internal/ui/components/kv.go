package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// KV is one labelled value.
type KV struct {
	Key   string
	Value string
}

// KVList renders pairs as aligned "key  value" lines.
func KVList(pairs ...KV) string {
	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p.Key); w > width {
			width = w
		}
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		pad := strings.Repeat(" ", width-lipgloss.Width(p.Key))
		lines[i] = theme.Label.Render(p.Key) + pad + "  " + theme.Body.Render(p.Value)
	}
	return strings.Join(lines, "\n")
}

// Section renders a title above body inside a card.
func Section(title, body string) string {
	return theme.Card.Render(theme.Title.Render(title) + "\n" + body)
}
