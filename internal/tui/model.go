package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/input"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/solver"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/tui/components"
	"github.com/shopspring/decimal"
)

// keyMap lists the bindings shown in the status bar
type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Decrease key.Binding
	Increase key.Binding
	Toggle   key.Binding
	Mode     key.Binding
	Region   key.Binding
	Loan     key.Binding
	Advanced key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Decrease: key.NewBinding(key.WithKeys("left", "-"), key.WithHelp("←", "less")),
		Increase: key.NewBinding(key.WithKeys("right", "+"), key.WithHelp("→", "more")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		Mode:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "net↔gross")),
		Region:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "region")),
		Loan:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "student loan")),
		Advanced: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "advanced")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Mode, k.Region, k.Loan, k.Advanced, k.Quit}
}

// Model is the take-home pay calculator state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	cfg  *domain.TaxYearConfig
	keys keyMap

	mode      Mode
	focus     Field
	amount    textinput.Model
	pension   *components.Slider
	region    domain.Region
	planIndex int
	advanced  bool

	// seq increases on every input change; only the matching ResultMsg is kept
	seq    int
	salary *domain.DeductionResult
	solve  *solver.Result
	err    error
}

// NewModel creates the calculator for a tax year, optionally prefilled with a gross salary
func NewModel(cfg *domain.TaxYearConfig, gross string) Model {
	amount := textinput.New()
	amount.Prompt = "£ "
	amount.Placeholder = "30,000"
	amount.CharLimit = 16
	amount.Width = 16
	amount.SetValue(gross)
	amount.Focus()

	return Model{
		width:   80,
		height:  24,
		cfg:     cfg,
		keys:    defaultKeyMap(),
		mode:    ModeGrossToNet,
		focus:   FieldAmount,
		amount:  amount,
		pension: components.NewSlider("Pension", 0, 0, 100, 0.5).WithUnit("%"),
		region:  domain.RegionEngland,
	}
}

// Init starts the cursor blinking and runs the first calculation
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.calculateCmd())
}

// StudentLoan returns the selected plan
func (m Model) StudentLoan() domain.StudentLoanPlan {
	return domain.StudentLoanPlans[m.planIndex]
}

// Options assembles the deduction options from the current inputs
func (m Model) Options() domain.DeductionOptions {
	options := domain.DefaultDeductionOptions()
	options.Region = m.region
	options.Pension = domain.PensionContribution{
		Mode:  domain.PensionPercentage,
		Value: decimal.NewFromFloat(m.pension.Value).Round(1),
	}
	options.StudentLoan = m.StudentLoan()
	return options
}

// calculateCmd snapshots the inputs and computes off the update loop
func (m Model) calculateCmd() tea.Cmd {
	seq := m.seq
	cfg := m.cfg
	mode := m.mode
	amount := input.Amount(m.amount.Value())
	options := m.Options()
	advanced := m.advanced || options.UsesAdvanced()

	return func() tea.Msg {
		return calculate(seq, cfg, mode, amount, options, advanced)
	}
}

func calculate(seq int, cfg *domain.TaxYearConfig, mode Mode, amount decimal.Decimal, options domain.DeductionOptions, advanced bool) ResultMsg {
	msg := ResultMsg{Seq: seq}
	gross := amount

	if mode == ModeNetToGross {
		solved, err := solver.GrossFromNet(amount, options, cfg, advanced)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Solve = &solved
		gross = solved.Gross
	}

	salary, err := calculation.CalculateDeductions(gross, options, cfg, advanced)
	if err != nil {
		msg.Err = err
		return msg
	}
	msg.Salary = &salary
	return msg
}
