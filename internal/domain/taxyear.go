package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxYearConfig bundles every rate table and threshold for one UK tax year.
// It is loaded from the embedded tax-year catalogue and never mutated after load.
type TaxYearConfig struct {
	Key               string                              `yaml:"key" json:"key"`
	Description       string                              `yaml:"description" json:"description"`
	IncomeTax         IncomeTaxRules                      `yaml:"income_tax" json:"income_tax"`
	NationalInsurance NationalInsurance                   `yaml:"national_insurance" json:"national_insurance"`
	Dividend          DividendRules                       `yaml:"dividend" json:"dividend"`
	CorporationTax    CorporationTaxRules                 `yaml:"corporation_tax" json:"corporation_tax"`
	StampDuty         StampDutyRules                      `yaml:"stamp_duty" json:"stamp_duty"`
	StudentLoans      map[StudentLoanPlan]StudentLoanRule `yaml:"student_loans" json:"student_loans"`
	MaternityPay      MaternityPayRules                   `yaml:"maternity_pay" json:"maternity_pay"`
	InvestmentRelief  InvestmentRelief                    `yaml:"investment_relief" json:"investment_relief"`
}

// IncomeTaxRules contains the personal allowance, its taper and regional bands
type IncomeTaxRules struct {
	PersonalAllowance decimal.Decimal         `yaml:"personal_allowance" json:"personal_allowance"`
	Taper             TaperRules              `yaml:"taper" json:"taper"`
	Regions           map[Region]BracketTable `yaml:"regions" json:"regions"`
}

// TaperRules describes how the personal allowance is withdrawn for high earners
type TaperRules struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	// Rate is the allowance lost per pound of income over the threshold
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// ExhaustionPoint is the income at which the given allowance is fully withdrawn
func (t TaperRules) ExhaustionPoint(allowance decimal.Decimal) decimal.Decimal {
	if t.Rate.IsZero() {
		return t.Threshold
	}
	return t.Threshold.Add(allowance.Div(t.Rate))
}

// NationalInsurance holds employee bands and the employer (secondary) rate
type NationalInsurance struct {
	Employee           BracketTable    `yaml:"employee" json:"employee"`
	EmployerRate       decimal.Decimal `yaml:"employer_rate" json:"employer_rate"`
	EmployerThreshold  decimal.Decimal `yaml:"employer_threshold" json:"employer_threshold"`
	LowerEarningsLimit decimal.Decimal `yaml:"lower_earnings_limit" json:"lower_earnings_limit"`
}

// DividendRules contains the tax-free dividend allowance and dividend bands.
// Dividend bands are expressed in taxable income (income above the personal allowance).
type DividendRules struct {
	Allowance decimal.Decimal `yaml:"allowance" json:"allowance"`
	Brackets  BracketTable    `yaml:"brackets" json:"brackets"`
}

// CorporationTaxRules holds small-profits and main rates with marginal relief
type CorporationTaxRules struct {
	SmallProfitsRate       decimal.Decimal `yaml:"small_profits_rate" json:"small_profits_rate"`
	MainRate               decimal.Decimal `yaml:"main_rate" json:"main_rate"`
	LowerThreshold         decimal.Decimal `yaml:"lower_threshold" json:"lower_threshold"`
	UpperThreshold         decimal.Decimal `yaml:"upper_threshold" json:"upper_threshold"`
	MarginalReliefFraction decimal.Decimal `yaml:"marginal_relief_fraction" json:"marginal_relief_fraction"`
}

// StampDutyRules holds residential SDLT slabs
type StampDutyRules struct {
	Standard                    BracketTable    `yaml:"standard" json:"standard"`
	FirstTimeBuyer              BracketTable    `yaml:"first_time_buyer" json:"first_time_buyer"`
	FirstTimeBuyerCap           decimal.Decimal `yaml:"first_time_buyer_cap" json:"first_time_buyer_cap"`
	AdditionalPropertySurcharge decimal.Decimal `yaml:"additional_property_surcharge" json:"additional_property_surcharge"`
}

// StudentLoanRule is the single-band repayment rule for one plan
type StudentLoanRule struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// MaternityPayRules contains the statutory maternity pay parameters
type MaternityPayRules struct {
	FlatRate        decimal.Decimal `yaml:"flat_rate" json:"flat_rate"`
	HigherRate      decimal.Decimal `yaml:"higher_rate" json:"higher_rate"`
	HigherRateWeeks int             `yaml:"higher_rate_weeks" json:"higher_rate_weeks"`
	FlatRateWeeks   int             `yaml:"flat_rate_weeks" json:"flat_rate_weeks"`
}

// InvestmentRelief holds the income tax relief rates for SEIS and EIS subscriptions
type InvestmentRelief struct {
	SEISRate decimal.Decimal `yaml:"seis_rate" json:"seis_rate"`
	EISRate  decimal.Decimal `yaml:"eis_rate" json:"eis_rate"`
}

// IncomeTaxBrackets returns the bracket table for a region
func (c *TaxYearConfig) IncomeTaxBrackets(region Region) (BracketTable, error) {
	table, ok := c.IncomeTax.Regions[region]
	if !ok {
		return nil, fmt.Errorf("tax year %s has no income tax bands for region %q", c.Key, region)
	}
	return table, nil
}

// StudentLoan returns the repayment rule for a plan
func (c *TaxYearConfig) StudentLoan(plan StudentLoanPlan) (StudentLoanRule, bool) {
	rule, ok := c.StudentLoans[plan]
	return rule, ok
}

// Clone returns a deep copy so lookups never hand out shared tables
func (c *TaxYearConfig) Clone() *TaxYearConfig {
	out := *c
	out.IncomeTax.Regions = make(map[Region]BracketTable, len(c.IncomeTax.Regions))
	for r, t := range c.IncomeTax.Regions {
		out.IncomeTax.Regions[r] = t.Clone()
	}
	out.NationalInsurance.Employee = c.NationalInsurance.Employee.Clone()
	out.Dividend.Brackets = c.Dividend.Brackets.Clone()
	out.StampDuty.Standard = c.StampDuty.Standard.Clone()
	out.StampDuty.FirstTimeBuyer = c.StampDuty.FirstTimeBuyer.Clone()
	out.StudentLoans = make(map[StudentLoanPlan]StudentLoanRule, len(c.StudentLoans))
	for p, r := range c.StudentLoans {
		out.StudentLoans[p] = r
	}
	return &out
}

// Validate checks every table and the scalar constants of the tax year
func (c *TaxYearConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("tax year key is required")
	}
	if c.IncomeTax.PersonalAllowance.LessThan(decimal.Zero) {
		return fmt.Errorf("personal allowance cannot be negative")
	}
	if len(c.IncomeTax.Regions) == 0 {
		return fmt.Errorf("at least one income tax region is required")
	}
	for region, table := range c.IncomeTax.Regions {
		if !region.Valid() {
			return fmt.Errorf("unknown income tax region %q", region)
		}
		if err := table.Validate(); err != nil {
			return fmt.Errorf("income tax %s: %w", region, err)
		}
	}
	tables := map[string]BracketTable{
		"national insurance": c.NationalInsurance.Employee,
		"dividend":           c.Dividend.Brackets,
		"stamp duty":         c.StampDuty.Standard,
	}
	for name, table := range tables {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if len(c.StampDuty.FirstTimeBuyer) > 0 {
		if err := c.StampDuty.FirstTimeBuyer.Validate(); err != nil {
			return fmt.Errorf("first time buyer stamp duty: %w", err)
		}
	}
	ct := c.CorporationTax
	if !ct.UpperThreshold.GreaterThan(ct.LowerThreshold) {
		return fmt.Errorf("corporation tax upper threshold must exceed lower threshold")
	}
	for plan, rule := range c.StudentLoans {
		if !plan.Valid() || plan == StudentLoanNone {
			return fmt.Errorf("unknown student loan plan %q", plan)
		}
		if rule.Rate.LessThan(decimal.Zero) || rule.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("student loan %s: rate must be between 0 and 1", plan)
		}
	}
	if c.MaternityPay.HigherRateWeeks < 0 || c.MaternityPay.FlatRateWeeks < 0 {
		return fmt.Errorf("maternity pay weeks cannot be negative")
	}
	return nil
}
