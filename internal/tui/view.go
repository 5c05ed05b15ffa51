package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/output"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/tui/components"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/tui/tuistyles"
)

// View renders the input panel beside the live result panel
func (m Model) View() string {
	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.renderInputs(), m.renderResults())
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(), panels, m.renderStatusBar())
}

// renderTitleBar renders the application title and current mode
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("CalcMyMoney - UK Take-Home Pay")
	sub := m.mode.String()
	if m.cfg != nil {
		sub = fmt.Sprintf("%s • tax year %s", sub, m.cfg.Key)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(sub))
}

func (m Model) renderInputs() string {
	amountLabel := "Gross salary"
	if m.mode == ModeNetToGross {
		amountLabel = "Target net"
	}

	advanced := "off"
	if m.advanced {
		advanced = "on"
	} else if m.Options().UsesAdvanced() {
		advanced = "auto"
	}

	rows := []string{
		m.row(FieldAmount, amountLabel, m.amount.View()),
		m.row(FieldPension, "Pension", m.pension.Render()),
		m.row(FieldRegion, "Region", tuistyles.FieldValueStyle.Render(string(m.region))),
		m.row(FieldStudentLoan, "Student loan", tuistyles.FieldValueStyle.Render(string(m.StudentLoan()))),
		m.row(FieldAdvanced, "Advanced", tuistyles.FieldValueStyle.Render(advanced)),
	}
	return tuistyles.ActiveBorderStyle.Render(strings.Join(rows, "\n\n"))
}

func (m Model) row(f Field, label, value string) string {
	style := tuistyles.FieldLabelStyle
	marker := "  "
	if m.focus == f {
		style = tuistyles.FocusedLabelStyle
		marker = "› "
	}
	return marker + style.Render(label) + value
}

func (m Model) renderResults() string {
	if m.err != nil {
		return tuistyles.BorderStyle.Render(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
	}
	if m.salary == nil {
		return tuistyles.BorderStyle.Render(tuistyles.HintStyle.Render("Enter an amount to see your take-home pay"))
	}

	r := m.salary
	monthly := r.Monthly()
	weekly := r.Weekly()

	var sections []string
	if m.solve != nil {
		status := "converged"
		if !m.solve.Converged() {
			status = fmt.Sprintf("best guess after %d iterations", m.solve.Iterations)
		}
		sections = append(sections, components.NewMetricCard("Gross needed", output.FormatCurrency(m.solve.Gross)).
			WithDescription(status).
			WithWidth(50).
			Render())
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Take-home / year", output.FormatCurrency(r.NetAnnual)),
		components.NewMetricCard("Take-home / month", output.FormatCurrency(monthly.Net)),
		components.NewMetricCard("Income tax", output.FormatCurrency(r.IncomeTax)).AsDeduction(),
		components.NewMetricCard("National Insurance", output.FormatCurrency(r.NationalInsurance)).AsDeduction(),
		components.NewMetricCard("Student loan", output.FormatCurrency(r.StudentLoan)).AsDeduction(),
		components.NewMetricCard("Pension", output.FormatCurrency(r.Pension)).AsDeduction(),
	}
	sections = append(sections, components.MetricGrid(cards, 2))

	sections = append(sections,
		components.NewMetricCard("Take-home / week", output.FormatCurrency(weekly.Net)).RenderCompact(),
		components.NewMetricCard("Personal allowance", output.FormatCurrency(r.PersonalAllowance)).RenderCompact(),
		components.NewMetricCard("Effective rate", output.FormatPercentage(r.EffectiveTaxRate())).RenderCompact(),
	)

	if r.GrossAnnual.IsPositive() {
		kept, _ := r.NetAnnual.Div(r.GrossAnnual).Float64()
		sections = append(sections, "", components.NewShareBar("Share of gross kept", kept).Render())
	}
	return tuistyles.BorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	for _, b := range m.keys.shortHelp() {
		help := b.Help()
		shortcuts = append(shortcuts, tuistyles.StatusKeyStyle.Render(help.Key)+" "+help.Desc)
	}
	if m.focus == FieldPension {
		shortcuts = append(shortcuts, tuistyles.StatusKeyStyle.Render("← →")+" adjust")
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}
