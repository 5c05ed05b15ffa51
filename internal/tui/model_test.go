package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/taxyear"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, gross string) Model {
	t.Helper()
	cfg, err := taxyear.MustNewRegistry().Lookup("2024-25")
	require.NoError(t, err)
	return NewModel(cfg, gross)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and, when it triggers a calculation, feeds the result back
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return settle(t, next.(Model))
}

func settle(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(m.calculateCmd()())
	return next.(Model)
}

func TestModel_InitialCalculation(t *testing.T) {
	m := settle(t, newTestModel(t, "30000"))

	require.NoError(t, m.err)
	require.NotNil(t, m.salary)
	assert.True(t, decimal.RequireFromString("25119.60").Equal(m.salary.NetAnnual), "net %s", m.salary.NetAnnual)
	assert.Nil(t, m.solve)
	assert.Contains(t, m.View(), "£25,119.60")
}

func TestModel_Init(t *testing.T) {
	m := newTestModel(t, "30000")
	assert.NotNil(t, m.Init())
}

func TestModel_RegionToggle(t *testing.T) {
	m := settle(t, newTestModel(t, "30000"))
	england := m.salary.IncomeTax

	m = press(t, m, runes("r"))
	assert.Equal(t, domain.RegionScotland, m.region)
	assert.False(t, m.salary.IncomeTax.Equal(england), "Scottish tax should differ")

	m = press(t, m, runes("r"))
	assert.Equal(t, domain.RegionEngland, m.region)
	assert.True(t, m.salary.IncomeTax.Equal(england))
}

func TestModel_StudentLoanCycle(t *testing.T) {
	m := settle(t, newTestModel(t, "30000"))
	assert.Equal(t, domain.StudentLoanNone, m.StudentLoan())

	m = press(t, m, runes("l"))
	assert.Equal(t, domain.StudentLoanPlan1, m.StudentLoan())
	assert.False(t, m.advanced)
	assert.True(t, m.salary.StudentLoan.IsPositive(), "plan applies without pressing a")
	assert.Contains(t, m.View(), "auto")

	for range domain.StudentLoanPlans[1:] {
		m = press(t, m, runes("l"))
	}
	assert.Equal(t, domain.StudentLoanNone, m.StudentLoan())
}

func TestModel_PensionSlider(t *testing.T) {
	m := settle(t, newTestModel(t, "30000"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FieldPension, m.focus)
	assert.True(t, m.pension.IsFocused)

	for i := 0; i < 10; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.InDelta(t, 5.0, m.pension.Value, 1e-9)
	assert.True(t, decimal.NewFromInt(1500).Equal(m.salary.Pension), "pension %s", m.salary.Pension)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.InDelta(t, 4.5, m.pension.Value, 1e-9)
}

func TestModel_FocusWraps(t *testing.T) {
	m := newTestModel(t, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	assert.Equal(t, FieldAdvanced, m.focus)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, FieldAmount, m.focus)
	assert.True(t, m.amount.Focused())
}

func TestModel_NetToGross(t *testing.T) {
	m := settle(t, newTestModel(t, "25119.60"))

	m = press(t, m, runes("n"))
	assert.Equal(t, ModeNetToGross, m.mode)
	require.NoError(t, m.err)
	require.NotNil(t, m.solve)
	assert.True(t, m.solve.Converged())
	assert.True(t, m.solve.Gross.Sub(decimal.NewFromInt(30000)).Abs().LessThan(decimal.NewFromInt(1)),
		"gross %s", m.solve.Gross)
	assert.Contains(t, m.View(), "Gross needed")
	assert.Contains(t, m.View(), "Target net")
}

func TestModel_TypingRecalculates(t *testing.T) {
	m := settle(t, newTestModel(t, "3000"))
	seq := m.seq

	m = press(t, m, runes("0"))
	assert.Equal(t, "30000", m.amount.Value())
	assert.Equal(t, seq+1, m.seq)
	assert.True(t, decimal.RequireFromString("25119.60").Equal(m.salary.NetAnnual))
}

func TestModel_StaleResultDropped(t *testing.T) {
	m := newTestModel(t, "30000")
	stale := m.calculateCmd()().(ResultMsg)

	next, _ := m.Update(runes("r"))
	m = next.(Model)

	next, _ = m.Update(stale)
	m = next.(Model)
	assert.Nil(t, m.salary, "result computed before the change must be ignored")
}

func TestModel_NegativeAmountShowsError(t *testing.T) {
	m := settle(t, newTestModel(t, "-5"))
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, "30000")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, "30000")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
