package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/tui/tuistyles"
)

// ShareBar shows what fraction of gross pay is kept
type ShareBar struct {
	Label    string
	Fraction float64
	Width    int
}

// NewShareBar creates a bar; fraction is clamped into [0, 1]
func NewShareBar(label string, fraction float64) *ShareBar {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return &ShareBar{Label: label, Fraction: fraction, Width: 40}
}

// WithWidth sets the bar width
func (b *ShareBar) WithWidth(width int) *ShareBar {
	b.Width = width
	return b
}

// Render returns the label, the bar and the percentage
func (b *ShareBar) Render() string {
	var content strings.Builder

	if b.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(b.Label))
		content.WriteString("\n")
	}

	filled := int(float64(b.Width) * b.Fraction)
	empty := b.Width - filled

	keptStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	takenStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)

	content.WriteString("[")
	content.WriteString(keptStyle.Render(strings.Repeat("█", filled)))
	content.WriteString(takenStyle.Render(strings.Repeat("░", empty)))
	content.WriteString("] ")

	percentStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	content.WriteString(percentStyle.Render(fmt.Sprintf("%.1f%%", b.Fraction*100)))

	return content.String()
}
