package scenario

import (
	"errors"
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultDaysPerYear is the billable days assumed when a day rate is given
const DefaultDaysPerYear = 220

var one = decimal.NewFromInt(1)

// Income returns the annual contract value
func (in IR35Input) Income() decimal.Decimal {
	if !in.ContractIncome.IsZero() {
		return in.ContractIncome
	}
	days := in.DaysPerYear
	if days <= 0 {
		days = DefaultDaysPerYear
	}
	return in.DayRate.Mul(decimal.NewFromInt(int64(days)))
}

func (in IR35Input) validate() error {
	for name, v := range map[string]decimal.Decimal{
		"contract income": in.ContractIncome,
		"day rate":        in.DayRate,
		"umbrella margin": in.UmbrellaMargin,
		"expenses":        in.Expenses,
		"director salary": in.DirectorSalary,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s %s: %w", name, v.String(), calculation.ErrNegativeAmount)
		}
	}
	return nil
}

// CompareIR35 works out take-home pay for the same contract taxed inside IR35
// through an umbrella company and outside IR35 through a limited company that
// pays a director salary and distributes all post-tax profit as dividends.
func CompareIR35(in IR35Input, cfg *domain.TaxYearConfig) (*IR35Comparison, error) {
	if cfg == nil {
		return nil, errors.New("tax year is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Region == "" {
		in.Region = domain.RegionEngland
	}

	inside, err := insideIR35(in, cfg)
	if err != nil {
		return nil, fmt.Errorf("inside IR35: %w", err)
	}
	outside, err := outsideIR35(in, cfg)
	if err != nil {
		return nil, fmt.Errorf("outside IR35: %w", err)
	}

	comparison := &IR35Comparison{
		TaxYear:    cfg.Key,
		Inside:     inside,
		Outside:    outside,
		Difference: outside.TakeHome.Sub(inside.TakeHome),
		Better:     OptionEqual,
	}
	switch {
	case comparison.Difference.IsPositive():
		comparison.Better = OptionOutside
	case comparison.Difference.IsNegative():
		comparison.Better = OptionInside
	}
	return comparison, nil
}

// insideIR35 pays the contract through an umbrella: after its margin, the
// remainder funds a salary plus the employer NI due on that salary.
func insideIR35(in IR35Input, cfg *domain.TaxYearConfig) (IR35Outcome, error) {
	income := in.Income()
	pot := decimal.Max(decimal.Zero, income.Sub(in.UmbrellaMargin))

	ni := cfg.NationalInsurance
	salary := pot
	if pot.GreaterThan(ni.EmployerThreshold) {
		// salary + (salary - threshold) * rate = pot
		salary = pot.Add(ni.EmployerThreshold.Mul(ni.EmployerRate)).Div(one.Add(ni.EmployerRate))
	}
	employerNI := calculation.EmployerNI(salary, cfg)

	options := domain.DefaultDeductionOptions()
	options.Region = in.Region
	deductions, err := calculation.CalculateDeductions(salary, options, cfg, false)
	if err != nil {
		return IR35Outcome{}, err
	}

	out := IR35Outcome{
		Option:            OptionInside,
		ContractIncome:    income,
		UmbrellaMargin:    in.UmbrellaMargin,
		Salary:            salary,
		EmployerNI:        employerNI,
		IncomeTax:         deductions.IncomeTax,
		NationalInsurance: deductions.NationalInsurance,
		TotalTax:          employerNI.Add(deductions.IncomeTax).Add(deductions.NationalInsurance),
		TakeHome:          deductions.NetAnnual,
	}
	out.EffectiveRate = effectiveRate(income, out.TakeHome)
	return out, nil
}

// outsideIR35 runs the contract through a limited company
func outsideIR35(in IR35Input, cfg *domain.TaxYearConfig) (IR35Outcome, error) {
	income := in.Income()
	salary := in.DirectorSalary
	if salary.IsZero() {
		salary = cfg.IncomeTax.PersonalAllowance
	}
	salary = decimal.Min(salary, income)
	employerNI := calculation.EmployerNI(salary, cfg)

	profit := decimal.Max(decimal.Zero, income.Sub(salary).Sub(employerNI).Sub(in.Expenses))
	ct, err := calculation.CalculateCorporationTax(profit, cfg, 0)
	if err != nil {
		return IR35Outcome{}, err
	}
	dividends := profit.Sub(ct.Tax)

	options := domain.DefaultDeductionOptions()
	options.Region = in.Region
	deductions, err := calculation.CalculateDeductions(salary, options, cfg, false)
	if err != nil {
		return IR35Outcome{}, err
	}
	divTax, err := calculation.CalculateDividendTax(salary, dividends, cfg)
	if err != nil {
		return IR35Outcome{}, err
	}

	out := IR35Outcome{
		Option:            OptionOutside,
		ContractIncome:    income,
		Expenses:          in.Expenses,
		Salary:            salary,
		EmployerNI:        employerNI,
		IncomeTax:         deductions.IncomeTax,
		NationalInsurance: deductions.NationalInsurance,
		CompanyProfit:     profit,
		CorporationTax:    ct.Tax,
		Dividends:         dividends,
		DividendTax:       divTax.Tax,
		TakeHome:          deductions.NetAnnual.Add(dividends).Sub(divTax.Tax),
	}
	out.TotalTax = employerNI.
		Add(deductions.IncomeTax).
		Add(deductions.NationalInsurance).
		Add(ct.Tax).
		Add(divTax.Tax)
	out.EffectiveRate = effectiveRate(income, out.TakeHome)
	return out, nil
}

// effectiveRate is the share of income that does not reach the contractor
func effectiveRate(income, takeHome decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(takeHome).Div(income)
}
