package calculation

import (
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// DividendTaxResult is the tax due on a dividend pot stacked on top of salary
type DividendTaxResult struct {
	Salary                decimal.Decimal                `json:"salary"`
	Dividends             decimal.Decimal                `json:"dividends"`
	PersonalAllowance     decimal.Decimal                `json:"personal_allowance"`
	AllowanceAgainstDivs  decimal.Decimal                `json:"allowance_against_dividends"`
	DividendAllowanceUsed decimal.Decimal                `json:"dividend_allowance_used"`
	TaxableDividends      decimal.Decimal                `json:"taxable_dividends"`
	Tax                   decimal.Decimal                `json:"tax"`
	Breakdown             []domain.BracketBreakdownEntry `json:"breakdown"`
}

// CalculateDividendTax taxes dividends as the top slice of income.
//
// The personal allowance is tapered on salary plus dividends, independently of
// the salary calculation's own taper. Allowance not used by salary shelters
// dividends first; the dividend allowance then covers the next slice but still
// occupies band space, so the remaining dividends are charged from that point
// upward through the dividend bands.
func CalculateDividendTax(salary, dividends decimal.Decimal, cfg *domain.TaxYearConfig) (DividendTaxResult, error) {
	if err := requireNonNegative("salary", salary); err != nil {
		return DividendTaxResult{}, err
	}
	if err := requireNonNegative("dividends", dividends); err != nil {
		return DividendTaxResult{}, err
	}

	total := salary.Add(dividends)
	pa := TaperPersonalAllowanceWithRules(total, cfg.IncomeTax.PersonalAllowance, cfg.IncomeTax.Taper)

	unusedAllowance := decimal.Max(decimal.Zero, pa.Sub(salary))
	shelteredByPA := decimal.Min(unusedAllowance, dividends)
	afterPA := dividends.Sub(shelteredByPA)
	allowanceUsed := decimal.Min(cfg.Dividend.Allowance, afterPA)

	taxableSalary := decimal.Max(decimal.Zero, salary.Sub(pa))
	bands, err := EvaluateBands(taxableSalary.Add(afterPA), cfg.Dividend.Brackets, taxableSalary.Add(allowanceUsed))
	if err != nil {
		return DividendTaxResult{}, fmt.Errorf("dividend tax: %w", err)
	}

	return DividendTaxResult{
		Salary:                salary,
		Dividends:             dividends,
		PersonalAllowance:     pa,
		AllowanceAgainstDivs:  shelteredByPA,
		DividendAllowanceUsed: allowanceUsed,
		TaxableDividends:      afterPA.Sub(allowanceUsed),
		Tax:                   bands.Total,
		Breakdown:             bands.Breakdown,
	}, nil
}

// EmployerNI is the employer's secondary Class 1 contribution on a salary
func EmployerNI(salary decimal.Decimal, cfg *domain.TaxYearConfig) decimal.Decimal {
	ni := cfg.NationalInsurance
	return decimal.Max(decimal.Zero, salary.Sub(ni.EmployerThreshold)).Mul(ni.EmployerRate)
}
