package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// ProgressBar displays a horizontal 0-100 score bar.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Percent    float64 // 0.0 - 1.0
	Width      int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, labelWidth int, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:      label,
		LabelWidth: labelWidth,
		Percent:    percent,
		Width:      width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		label := theme.Label.Render(p.Label)
		b.WriteString(label)
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString("  ")
	}

	barWidth := p.Width
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*p.Percent + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat("█", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString(fmt.Sprintf(" %3.0f%%", p.Percent*100))
	return b.String()
}
