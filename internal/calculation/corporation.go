package calculation

import (
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// CorporationTaxBand names which part of the schedule a profit falls in
type CorporationTaxBand string

const (
	BandSmallProfits   CorporationTaxBand = "small_profits"
	BandMarginalRelief CorporationTaxBand = "marginal_relief"
	BandMainRate       CorporationTaxBand = "main_rate"
)

// CorporationTaxResult is the tax on one accounting period's profit
type CorporationTaxResult struct {
	Profit         decimal.Decimal    `json:"profit"`
	Band           CorporationTaxBand `json:"band"`
	LowerThreshold decimal.Decimal    `json:"lower_threshold"`
	UpperThreshold decimal.Decimal    `json:"upper_threshold"`
	MarginalRelief decimal.Decimal    `json:"marginal_relief"`
	Tax            decimal.Decimal    `json:"tax"`
	EffectiveRate  decimal.Decimal    `json:"effective_rate"`
	ProfitAfterTax decimal.Decimal    `json:"profit_after_tax"`
}

// CalculateCorporationTax applies the small profits rate, the main rate, or
// main rate less marginal relief between the two thresholds. Thresholds are
// shared between associated companies.
func CalculateCorporationTax(profit decimal.Decimal, cfg *domain.TaxYearConfig, associatedCompanies int) (CorporationTaxResult, error) {
	if err := requireNonNegative("profit", profit); err != nil {
		return CorporationTaxResult{}, err
	}
	if associatedCompanies < 0 {
		return CorporationTaxResult{}, fmt.Errorf("associated companies cannot be negative")
	}

	rules := cfg.CorporationTax
	divisor := decimal.NewFromInt(int64(associatedCompanies + 1))
	lower := rules.LowerThreshold.Div(divisor)
	upper := rules.UpperThreshold.Div(divisor)

	result := CorporationTaxResult{
		Profit:         profit,
		LowerThreshold: lower,
		UpperThreshold: upper,
		MarginalRelief: decimal.Zero,
	}

	switch {
	case profit.LessThanOrEqual(lower):
		result.Band = BandSmallProfits
		result.Tax = profit.Mul(rules.SmallProfitsRate)
	case profit.GreaterThanOrEqual(upper):
		result.Band = BandMainRate
		result.Tax = profit.Mul(rules.MainRate)
	default:
		result.Band = BandMarginalRelief
		result.MarginalRelief = upper.Sub(profit).Mul(rules.MarginalReliefFraction)
		result.Tax = decimal.Max(decimal.Zero, profit.Mul(rules.MainRate).Sub(result.MarginalRelief))
	}

	if profit.IsPositive() {
		result.EffectiveRate = result.Tax.Div(profit)
	}
	result.ProfitAfterTax = profit.Sub(result.Tax)
	return result, nil
}
