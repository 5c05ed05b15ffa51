package calculation

import (
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Personal allowance taper defaults: £1 of allowance is lost for every £2 of
// income above £100,000.
var (
	DefaultTaperThreshold = decimal.NewFromInt(100000)
	DefaultTaperRate      = decimal.NewFromFloat(0.5)
)

// TaperPersonalAllowance reduces the allowance for incomes above £100,000
func TaperPersonalAllowance(grossIncome, basePersonalAllowance decimal.Decimal) decimal.Decimal {
	return TaperPersonalAllowanceWithRules(grossIncome, basePersonalAllowance, domain.TaperRules{
		Threshold: DefaultTaperThreshold,
		Rate:      DefaultTaperRate,
	})
}

// TaperPersonalAllowanceWithRules reduces the allowance by (income - threshold) * rate,
// never below zero. A zero threshold in rules falls back to the defaults.
func TaperPersonalAllowanceWithRules(grossIncome, basePersonalAllowance decimal.Decimal, rules domain.TaperRules) decimal.Decimal {
	threshold := rules.Threshold
	if threshold.IsZero() {
		threshold = DefaultTaperThreshold
	}
	rate := rules.Rate
	if rate.IsZero() {
		rate = DefaultTaperRate
	}

	if grossIncome.LessThanOrEqual(threshold) {
		return basePersonalAllowance
	}
	reduction := grossIncome.Sub(threshold).Mul(rate)
	return decimal.Max(decimal.Zero, basePersonalAllowance.Sub(reduction))
}
