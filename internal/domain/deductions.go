package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Region selects the income tax band table
type Region string

const (
	RegionEngland  Region = "england"
	RegionScotland Region = "scotland"
)

// Valid reports whether the region is one the engine knows
func (r Region) Valid() bool {
	return r == RegionEngland || r == RegionScotland
}

// ParseRegion maps user input onto a Region. Wales and Northern Ireland share
// the England bands for earned income.
func ParseRegion(s string) (Region, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "england", "eng", "wales", "northern-ireland", "northern_ireland", "ni", "ruk":
		return RegionEngland, true
	case "scotland", "scot", "sco":
		return RegionScotland, true
	}
	return "", false
}

// StudentLoanPlan identifies a student loan repayment plan
type StudentLoanPlan string

const (
	StudentLoanNone         StudentLoanPlan = "none"
	StudentLoanPlan1        StudentLoanPlan = "plan1"
	StudentLoanPlan2        StudentLoanPlan = "plan2"
	StudentLoanPlan4        StudentLoanPlan = "plan4"
	StudentLoanPlan5        StudentLoanPlan = "plan5"
	StudentLoanPostgraduate StudentLoanPlan = "postgraduate"
)

// StudentLoanPlans lists the selectable plans in display order
var StudentLoanPlans = []StudentLoanPlan{
	StudentLoanNone,
	StudentLoanPlan1,
	StudentLoanPlan2,
	StudentLoanPlan4,
	StudentLoanPlan5,
	StudentLoanPostgraduate,
}

// Valid reports whether the plan is known
func (p StudentLoanPlan) Valid() bool {
	for _, known := range StudentLoanPlans {
		if p == known {
			return true
		}
	}
	return false
}

// PensionMode selects how a pension contribution is expressed
type PensionMode string

const (
	PensionPercentage   PensionMode = "percentage"
	PensionFixedMonthly PensionMode = "fixed_monthly"
)

// PensionContribution is either a percentage of gross (Value=5 means 5%)
// or a fixed monthly amount.
type PensionContribution struct {
	Mode  PensionMode     `json:"mode" yaml:"mode"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// DeductionOptions is the user-selected configuration for one salary calculation
type DeductionOptions struct {
	Region          Region              `json:"region"`
	Pension         PensionContribution `json:"pension"`
	StudentLoan     StudentLoanPlan     `json:"student_loan"`
	SEISInvestment  decimal.Decimal     `json:"seis_investment"`
	EISInvestment   decimal.Decimal     `json:"eis_investment"`
	OtherAllowances decimal.Decimal     `json:"other_allowances"`
	TaxCode         string              `json:"tax_code"`
}

// DefaultDeductionOptions returns England, no pension, no student loan
func DefaultDeductionOptions() DeductionOptions {
	return DeductionOptions{
		Region:      RegionEngland,
		Pension:     PensionContribution{Mode: PensionPercentage},
		StudentLoan: StudentLoanNone,
	}
}

// UsesAdvanced reports whether any option only takes effect in advanced mode
// has been set. Callers pass useAdvanced || UsesAdvanced() so a pension or
// student loan the user entered is never silently ignored.
func (o DeductionOptions) UsesAdvanced() bool {
	return o.Pension.Value.IsPositive() ||
		(o.StudentLoan != "" && o.StudentLoan != StudentLoanNone) ||
		o.SEISInvestment.IsPositive() ||
		o.EISInvestment.IsPositive() ||
		o.OtherAllowances.IsPositive() ||
		strings.TrimSpace(o.TaxCode) != ""
}

// DeductionResult is the gross-to-net breakdown for one annual salary
type DeductionResult struct {
	TaxYear           string                  `json:"tax_year"`
	Region            Region                  `json:"region"`
	GrossAnnual       decimal.Decimal         `json:"gross_annual"`
	PersonalAllowance decimal.Decimal         `json:"personal_allowance"`
	TaxableIncome     decimal.Decimal         `json:"taxable_income"`
	IncomeTax         decimal.Decimal         `json:"income_tax"`
	TaxBreakdown      []BracketBreakdownEntry `json:"tax_breakdown"`
	NationalInsurance decimal.Decimal         `json:"national_insurance"`
	NIBreakdown       []BracketBreakdownEntry `json:"ni_breakdown"`
	StudentLoan       decimal.Decimal         `json:"student_loan"`
	Pension           decimal.Decimal         `json:"pension"`
	SEISRelief        decimal.Decimal         `json:"seis_relief"`
	EISRelief         decimal.Decimal         `json:"eis_relief"`
	TotalDeductions   decimal.Decimal         `json:"total_deductions"`
	NetAnnual         decimal.Decimal         `json:"net_annual"`
}

// PeriodAmounts is a DeductionResult scaled to a pay period
type PeriodAmounts struct {
	Gross             decimal.Decimal `json:"gross"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance"`
	StudentLoan       decimal.Decimal `json:"student_loan"`
	Pension           decimal.Decimal `json:"pension"`
	Net               decimal.Decimal `json:"net"`
}

// Monthly returns the result divided over 12 months
func (r DeductionResult) Monthly() PeriodAmounts {
	return r.per(decimal.NewFromInt(12))
}

// Weekly returns the result divided over 52 weeks
func (r DeductionResult) Weekly() PeriodAmounts {
	return r.per(decimal.NewFromInt(52))
}

func (r DeductionResult) per(periods decimal.Decimal) PeriodAmounts {
	return PeriodAmounts{
		Gross:             r.GrossAnnual.Div(periods),
		IncomeTax:         r.IncomeTax.Div(periods),
		NationalInsurance: r.NationalInsurance.Div(periods),
		StudentLoan:       r.StudentLoan.Div(periods),
		Pension:           r.Pension.Div(periods),
		Net:               r.NetAnnual.Div(periods),
	}
}

// EffectiveTaxRate is total deductions as a fraction of gross (0 when gross is 0)
func (r DeductionResult) EffectiveTaxRate() decimal.Decimal {
	if r.GrossAnnual.IsZero() {
		return decimal.Zero
	}
	return r.TotalDeductions.Div(r.GrossAnnual)
}
