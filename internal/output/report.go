package output

import (
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/solver"
	"github.com/shopspring/decimal"
)

// Row is one labelled, already formatted figure
type Row struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Section groups rows under a heading
type Section struct {
	Heading string `json:"heading" yaml:"heading"`
	Rows    []Row  `json:"rows" yaml:"rows"`
}

// Report is a calculator result prepared for display. Data holds the raw
// result for machine-readable formats.
type Report struct {
	Title    string      `json:"title" yaml:"title"`
	TaxYear  string      `json:"tax_year,omitempty" yaml:"tax_year,omitempty"`
	Sections []Section   `json:"sections" yaml:"sections"`
	Data     interface{} `json:"-" yaml:"-"`
}

func (r *Report) add(heading string, rows ...Row) {
	r.Sections = append(r.Sections, Section{Heading: heading, Rows: rows})
}

func row(label, value string) Row {
	return Row{Label: label, Value: value}
}

func money(label string, amount decimal.Decimal) Row {
	return row(label, FormatCurrency(amount))
}

func breakdownRows(entries []domain.BracketBreakdownEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		label := fmt.Sprintf("%s (%s on %s)", e.Name, FormatRate(e.Rate), FormatCurrency(e.TaxableAmount))
		rows = append(rows, money(label, e.Amount))
	}
	return rows
}

// SalaryReport describes a gross-to-net calculation
func SalaryReport(result domain.DeductionResult) Report {
	r := Report{Title: "Take-Home Pay", TaxYear: result.TaxYear, Data: result}

	r.add("Summary",
		row("Region", string(result.Region)),
		money("Gross annual salary", result.GrossAnnual),
		money("Personal allowance", result.PersonalAllowance),
		money("Taxable income", result.TaxableIncome),
		money("Income tax", result.IncomeTax),
		money("National Insurance", result.NationalInsurance),
		money("Student loan", result.StudentLoan),
		money("Pension", result.Pension),
		money("Total deductions", result.TotalDeductions),
		money("Net annual pay", result.NetAnnual),
		row("Effective deduction rate", FormatPercentage(result.EffectiveTaxRate())),
	)

	if !result.SEISRelief.IsZero() || !result.EISRelief.IsZero() {
		r.add("Investment Relief",
			money("SEIS relief", result.SEISRelief),
			money("EIS relief", result.EISRelief),
		)
	}
	if len(result.TaxBreakdown) > 0 {
		r.add("Income Tax Bands", breakdownRows(result.TaxBreakdown)...)
	}
	if len(result.NIBreakdown) > 0 {
		r.add("National Insurance Bands", breakdownRows(result.NIBreakdown)...)
	}

	monthly, weekly := result.Monthly(), result.Weekly()
	r.add("Per Period",
		money("Monthly gross", monthly.Gross),
		money("Monthly net", monthly.Net),
		money("Weekly gross", weekly.Gross),
		money("Weekly net", weekly.Net),
	)
	return r
}

// GrossFromNetReport describes a net-to-gross solve and the salary it found
func GrossFromNetReport(result solver.Result, salary domain.DeductionResult) Report {
	r := SalaryReport(salary)
	r.Title = "Gross Salary Needed"
	r.Data = struct {
		Solve  solver.Result          `json:"solve"`
		Salary domain.DeductionResult `json:"salary"`
	}{result, salary}

	solve := Section{Heading: "Solver", Rows: []Row{
		money("Target net pay", result.Target),
		money("Gross salary required", result.Gross),
		money("Net pay at that gross", result.NetAtGross),
		row("Status", string(result.Status)),
		row("Iterations", fmt.Sprintf("%d", result.Iterations)),
	}}
	r.Sections = append([]Section{solve}, r.Sections...)
	return r
}

// DividendReport describes dividend tax on top of a salary
func DividendReport(taxYear string, result calculation.DividendTaxResult) Report {
	r := Report{Title: "Dividend Tax", TaxYear: taxYear, Data: result}
	r.add("Summary",
		money("Salary", result.Salary),
		money("Dividends", result.Dividends),
		money("Personal allowance", result.PersonalAllowance),
		money("Allowance set against dividends", result.AllowanceAgainstDivs),
		money("Dividend allowance used", result.DividendAllowanceUsed),
		money("Taxable dividends", result.TaxableDividends),
		money("Dividend tax", result.Tax),
	)
	if len(result.Breakdown) > 0 {
		r.add("Dividend Bands", breakdownRows(result.Breakdown)...)
	}
	return r
}

// CorporationTaxReport describes corporation tax on company profit
func CorporationTaxReport(taxYear string, result calculation.CorporationTaxResult) Report {
	r := Report{Title: "Corporation Tax", TaxYear: taxYear, Data: result}
	r.add("Summary",
		money("Taxable profit", result.Profit),
		row("Band", string(result.Band)),
		money("Lower threshold", result.LowerThreshold),
		money("Upper threshold", result.UpperThreshold),
		money("Marginal relief", result.MarginalRelief),
		money("Corporation tax", result.Tax),
		row("Effective rate", FormatPercentage(result.EffectiveRate)),
		money("Profit after tax", result.ProfitAfterTax),
	)
	return r
}

// StampDutyReport describes SDLT on a purchase
func StampDutyReport(taxYear string, result calculation.StampDutyResult) Report {
	r := Report{Title: "Stamp Duty Land Tax", TaxYear: taxYear, Data: result}
	r.add("Summary",
		money("Property value", result.PropertyValue),
		row("First-time buyer relief", yesNo(result.FirstTimeBuyer)),
		row("Additional property surcharge", yesNo(result.SurchargeApplied)),
		money("Stamp duty", result.Tax),
		row("Effective rate", FormatPercentage(result.EffectiveRate)),
	)
	if len(result.Breakdown) > 0 {
		r.add("Slabs", breakdownRows(result.Breakdown)...)
	}
	return r
}

// MaternityReport describes statutory maternity pay
func MaternityReport(taxYear string, result calculation.MaternityPayResult) Report {
	r := Report{Title: "Statutory Maternity Pay", TaxYear: taxYear, Data: result}
	r.add("Summary",
		money("Average weekly earnings", result.AverageWeeklyEarnings),
		row("Eligible", yesNo(result.Eligible)),
		money(fmt.Sprintf("First %d weeks (weekly)", result.HigherRateWeeks), result.HigherRateWeekly),
		money(fmt.Sprintf("First %d weeks (total)", result.HigherRateWeeks), result.HigherRateTotal),
		money(fmt.Sprintf("Next %d weeks (weekly)", result.FlatRateWeeks), result.FlatRateWeekly),
		money(fmt.Sprintf("Next %d weeks (total)", result.FlatRateWeeks), result.FlatRateTotal),
		money("Total SMP", result.Total),
	)
	return r
}

// MortgageReport describes a loan and its yearly amortization
func MortgageReport(result calculation.MortgageResult) Report {
	r := Report{Title: "Mortgage", Data: result}
	kind := "Repayment"
	if result.Input.InterestOnly {
		kind = "Interest only"
	}
	r.add("Summary",
		row("Type", kind),
		money("Loan amount", result.Input.Principal),
		row("Interest rate", result.Input.AnnualRatePercent.String()+"%"),
		row("Term", fmt.Sprintf("%d years", result.Input.TermYears)),
		money("Monthly payment", result.MonthlyPayment),
		money("Total paid", result.TotalPaid),
		money("Total interest", result.TotalInterest),
		money("Balloon payment", result.Balloon),
	)
	if result.BalanceAfterFixedRate != nil {
		r.add("Fixed Rate",
			row("Fixed period", fmt.Sprintf("%d years", result.Input.FixedRateYears)),
			money("Balance when the fix ends", *result.BalanceAfterFixedRate),
		)
	}

	schedule := make([]Row, 0, len(result.Schedule))
	for _, y := range result.Schedule {
		schedule = append(schedule, row(fmt.Sprintf("Year %d", y.Year),
			fmt.Sprintf("interest %s, principal %s, balance %s",
				FormatCurrency(y.InterestPaid), FormatCurrency(y.PrincipalPaid), FormatCurrency(y.ClosingBalance))))
	}
	r.add("Schedule", schedule...)
	return r
}

// TaxYearsReport lists the known tax years
func TaxYearsReport(keys []string, defaultKey string) Report {
	r := Report{Title: "Tax Years", Data: struct {
		Years   []string `json:"years"`
		Default string   `json:"default"`
	}{keys, defaultKey}}
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		v := ""
		if k == defaultKey {
			v = "default"
		}
		rows = append(rows, row(k, v))
	}
	r.add("Available", rows...)
	return r
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
