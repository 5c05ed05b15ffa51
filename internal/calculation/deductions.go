package calculation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	taxCodePattern = regexp.MustCompile(`^(\d+)L$`)
	hundred        = decimal.NewFromInt(100)
	twelve         = decimal.NewFromInt(12)
)

// AllowanceFromTaxCode returns digits x 10 for "NNNNL" codes
func AllowanceFromTaxCode(code string) (decimal.Decimal, bool) {
	m := taxCodePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(code)))
	if m == nil {
		return decimal.Zero, false
	}
	digits, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false
	}
	return digits.Mul(decimal.NewFromInt(10)), true
}

// PensionAmount returns the annual contribution for a gross salary
func PensionAmount(gross decimal.Decimal, pension domain.PensionContribution) decimal.Decimal {
	switch pension.Mode {
	case domain.PensionFixedMonthly:
		return pension.Value.Mul(twelve)
	default:
		return gross.Mul(pension.Value).Div(hundred)
	}
}

// ResolvePersonalAllowance applies tax code, other allowances and the taper
func ResolvePersonalAllowance(gross decimal.Decimal, options domain.DeductionOptions, cfg *domain.TaxYearConfig, useAdvanced bool) decimal.Decimal {
	base := cfg.IncomeTax.PersonalAllowance
	if useAdvanced {
		if fromCode, ok := AllowanceFromTaxCode(options.TaxCode); ok {
			base = fromCode
		}
		base = base.Add(options.OtherAllowances)
	}
	return TaperPersonalAllowanceWithRules(gross, base, cfg.IncomeTax.Taper)
}

func validateOptions(options domain.DeductionOptions, useAdvanced bool) error {
	if !options.Region.Valid() {
		return fmt.Errorf("unknown region %q", options.Region)
	}
	if !useAdvanced {
		return nil
	}
	fields := map[string]decimal.Decimal{
		"pension contribution": options.Pension.Value,
		"SEIS investment":      options.SEISInvestment,
		"EIS investment":       options.EISInvestment,
		"other allowances":     options.OtherAllowances,
	}
	for name, v := range fields {
		if err := requireNonNegative(name, v); err != nil {
			return err
		}
	}
	if options.Pension.Mode != "" && options.Pension.Mode != domain.PensionPercentage && options.Pension.Mode != domain.PensionFixedMonthly {
		return fmt.Errorf("unknown pension mode %q", options.Pension.Mode)
	}
	if options.StudentLoan != "" && !options.StudentLoan.Valid() {
		return fmt.Errorf("unknown student loan plan %q", options.StudentLoan)
	}
	return nil
}

// CalculateDeductions turns an annual gross salary into tax, National
// Insurance, student loan and pension deductions and the resulting net pay.
//
// Advanced options (tax code, other allowances, pension, SEIS/EIS relief and
// student loan) only apply when useAdvanced is set. Net pay is not clamped:
// a pension contribution above 100% of gross produces a negative net.
func CalculateDeductions(grossAnnual decimal.Decimal, options domain.DeductionOptions, cfg *domain.TaxYearConfig, useAdvanced bool) (domain.DeductionResult, error) {
	if err := requireNonNegative("gross annual income", grossAnnual); err != nil {
		return domain.DeductionResult{}, err
	}
	if options.Region == "" {
		options.Region = domain.RegionEngland
	}
	if err := validateOptions(options, useAdvanced); err != nil {
		return domain.DeductionResult{}, err
	}
	brackets, err := cfg.IncomeTaxBrackets(options.Region)
	if err != nil {
		return domain.DeductionResult{}, err
	}

	result := domain.DeductionResult{
		TaxYear:     cfg.Key,
		Region:      options.Region,
		GrossAnnual: grossAnnual,
		Pension:     decimal.Zero,
		StudentLoan: decimal.Zero,
		SEISRelief:  decimal.Zero,
		EISRelief:   decimal.Zero,
	}

	// 1. Personal allowance
	personalAllowance := ResolvePersonalAllowance(grossAnnual, options, cfg, useAdvanced)
	result.PersonalAllowance = personalAllowance

	// 2. Pension
	if useAdvanced {
		result.Pension = PensionAmount(grossAnnual, options.Pension)
	}

	// 3. Income subject to tax
	result.TaxableIncome = decimal.Max(decimal.Zero, grossAnnual.Sub(personalAllowance).Sub(result.Pension))

	// 4. Income tax over the region's bands
	configured := cfg.IncomeTax.PersonalAllowance
	rebased := RebaseForAllowance(brackets, configured, personalAllowance, cfg.IncomeTax.Taper.ExhaustionPoint(configured))
	taxBase := decimal.Max(decimal.Zero, grossAnnual.Sub(result.Pension))
	tax, err := EvaluateBands(taxBase, rebased, personalAllowance)
	if err != nil {
		return domain.DeductionResult{}, fmt.Errorf("income tax: %w", err)
	}
	result.IncomeTax = tax.Total
	result.TaxBreakdown = tax.Breakdown

	// 5. SEIS/EIS relief, limited by the tax actually due
	if useAdvanced && (options.SEISInvestment.IsPositive() || options.EISInvestment.IsPositive()) {
		seisClaim := options.SEISInvestment.Mul(cfg.InvestmentRelief.SEISRate)
		eisClaim := options.EISInvestment.Mul(cfg.InvestmentRelief.EISRate)
		claimed := seisClaim.Add(eisClaim)
		after := decimal.Max(decimal.Zero, result.IncomeTax.Sub(claimed))
		used := result.IncomeTax.Sub(after)
		if claimed.IsPositive() {
			result.SEISRelief = used.Mul(seisClaim).Div(claimed)
			result.EISRelief = used.Sub(result.SEISRelief)
		}
		result.IncomeTax = after
	}

	// 6. National Insurance
	ni, err := EvaluateBands(grossAnnual, cfg.NationalInsurance.Employee, decimal.Zero)
	if err != nil {
		return domain.DeductionResult{}, fmt.Errorf("national insurance: %w", err)
	}
	result.NationalInsurance = ni.Total
	result.NIBreakdown = ni.Breakdown

	// 7. Student loan
	if useAdvanced && options.StudentLoan != "" && options.StudentLoan != domain.StudentLoanNone {
		rule, ok := cfg.StudentLoan(options.StudentLoan)
		if !ok {
			return domain.DeductionResult{}, fmt.Errorf("tax year %s has no rule for student loan %s", cfg.Key, options.StudentLoan)
		}
		result.StudentLoan = StudentLoanRepayment(grossAnnual, rule)
	}

	// 8. Totals
	result.TotalDeductions = result.IncomeTax.
		Add(result.NationalInsurance).
		Add(result.StudentLoan).
		Add(result.Pension)
	result.NetAnnual = grossAnnual.Sub(result.TotalDeductions)

	return result, nil
}

// StudentLoanRepayment is the single-band repayment: rate on income above the threshold
func StudentLoanRepayment(gross decimal.Decimal, rule domain.StudentLoanRule) decimal.Decimal {
	return decimal.Max(decimal.Zero, gross.Sub(rule.Threshold)).Mul(rule.Rate)
}
