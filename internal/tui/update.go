package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ResultMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.err = msg.Err
		m.salary = msg.Salary
		m.solve = msg.Solve
		return m, nil
	}

	var cmd tea.Cmd
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input. Shortcut letters never reach the
// amount field, which only takes digits and separators.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		if m.mode == ModeGrossToNet {
			m.mode = ModeNetToGross
		} else {
			m.mode = ModeGrossToNet
		}
		return m.changed()

	case key.Matches(msg, m.keys.Region):
		m.toggleRegion()
		return m.changed()

	case key.Matches(msg, m.keys.Loan):
		m.cyclePlan()
		return m.changed()

	case key.Matches(msg, m.keys.Advanced):
		m.advanced = !m.advanced
		return m.changed()
	}

	switch m.focus {
	case FieldAmount:
		before := m.amount.Value()
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		if m.amount.Value() == before {
			return m, cmd
		}
		next, calc := m.changed()
		return next, tea.Batch(cmd, calc)

	case FieldPension:
		switch {
		case key.Matches(msg, m.keys.Decrease):
			m.pension.Decrement()
			return m.changed()
		case key.Matches(msg, m.keys.Increase):
			m.pension.Increment()
			return m.changed()
		}

	case FieldRegion:
		if key.Matches(msg, m.keys.Toggle, m.keys.Decrease, m.keys.Increase) {
			m.toggleRegion()
			return m.changed()
		}

	case FieldStudentLoan:
		if key.Matches(msg, m.keys.Toggle, m.keys.Increase) {
			m.cyclePlan()
			return m.changed()
		}

	case FieldAdvanced:
		if key.Matches(msg, m.keys.Toggle) {
			m.advanced = !m.advanced
			return m.changed()
		}
	}
	return m, nil
}

// changed bumps the sequence and recalculates
func (m Model) changed() (tea.Model, tea.Cmd) {
	m.seq++
	return m, m.calculateCmd()
}

func (m *Model) setFocus(f Field) {
	m.focus = f
	m.pension.SetFocused(f == FieldPension)
	if f == FieldAmount {
		m.amount.Focus()
	} else {
		m.amount.Blur()
	}
}

func (m *Model) toggleRegion() {
	if m.region == domain.RegionScotland {
		m.region = domain.RegionEngland
	} else {
		m.region = domain.RegionScotland
	}
}

func (m *Model) cyclePlan() {
	m.planIndex = (m.planIndex + 1) % len(domain.StudentLoanPlans)
}
