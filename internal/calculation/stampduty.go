package calculation

import (
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// StampDutyOptions selects the relief or surcharge that applies to a purchase
type StampDutyOptions struct {
	FirstTimeBuyer     bool `json:"first_time_buyer"`
	AdditionalProperty bool `json:"additional_property"`
}

// StampDutyResult is the SDLT due on a residential purchase
type StampDutyResult struct {
	PropertyValue    decimal.Decimal                `json:"property_value"`
	Tax              decimal.Decimal                `json:"tax"`
	EffectiveRate    decimal.Decimal                `json:"effective_rate"`
	FirstTimeBuyer   bool                           `json:"first_time_buyer_relief"`
	SurchargeApplied bool                           `json:"surcharge_applied"`
	Breakdown        []domain.BracketBreakdownEntry `json:"breakdown"`
}

// CalculateStampDuty sums (min(value, upper) - lower) * rate across the
// configured slabs. First-time buyer slabs apply only up to the relief cap and
// never together with the additional property surcharge.
func CalculateStampDuty(value decimal.Decimal, cfg *domain.TaxYearConfig, opts StampDutyOptions) (StampDutyResult, error) {
	if err := requireNonNegative("property value", value); err != nil {
		return StampDutyResult{}, err
	}

	rules := cfg.StampDuty
	slabs := rules.Standard
	result := StampDutyResult{PropertyValue: value}

	switch {
	case opts.AdditionalProperty:
		slabs = surcharged(slabs, rules.AdditionalPropertySurcharge)
		result.SurchargeApplied = true
	case opts.FirstTimeBuyer && len(rules.FirstTimeBuyer) > 0 && value.LessThanOrEqual(rules.FirstTimeBuyerCap):
		slabs = rules.FirstTimeBuyer
		result.FirstTimeBuyer = true
	}

	bands, err := EvaluateBands(value, slabs, decimal.Zero)
	if err != nil {
		return StampDutyResult{}, err
	}
	result.Tax = bands.Total
	result.Breakdown = bands.Breakdown
	if value.IsPositive() {
		result.EffectiveRate = bands.Total.Div(value)
	}
	return result, nil
}

// StampDuty returns only the tax figure for the standard residential rates
func StampDuty(value decimal.Decimal, cfg *domain.TaxYearConfig) (decimal.Decimal, error) {
	result, err := CalculateStampDuty(value, cfg, StampDutyOptions{})
	if err != nil {
		return decimal.Zero, err
	}
	return result.Tax, nil
}

func surcharged(slabs domain.BracketTable, surcharge decimal.Decimal) domain.BracketTable {
	out := slabs.Clone()
	for i := range out {
		out[i].Rate = out[i].Rate.Add(surcharge)
	}
	return out
}
