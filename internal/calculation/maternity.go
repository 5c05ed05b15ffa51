package calculation

import (
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Statutory maternity pay defaults used when a tax year leaves them unset
const (
	DefaultSMPHigherRateWeeks = 6
	DefaultSMPFlatRateWeeks   = 33
)

var (
	DefaultSMPHigherRate = decimal.NewFromFloat(0.9)
	fiftyTwo             = decimal.NewFromInt(52)
)

// MaternityPayResult is the two-tier statutory maternity pay entitlement
type MaternityPayResult struct {
	AverageWeeklyEarnings decimal.Decimal `json:"average_weekly_earnings"`
	Eligible              bool            `json:"eligible"`
	LowerEarningsLimit    decimal.Decimal `json:"lower_earnings_limit_weekly"`
	HigherRateWeekly      decimal.Decimal `json:"higher_rate_weekly"`
	HigherRateWeeks       int             `json:"higher_rate_weeks"`
	HigherRateTotal       decimal.Decimal `json:"higher_rate_total"`
	FlatRateWeekly        decimal.Decimal `json:"flat_rate_weekly"`
	FlatRateWeeks         int             `json:"flat_rate_weeks"`
	FlatRateTotal         decimal.Decimal `json:"flat_rate_total"`
	Total                 decimal.Decimal `json:"total"`
}

// MaternityPay pays 90% of average weekly earnings for the first 6 weeks,
// uncapped, then the lower of 90% and the flat rate for 33 weeks.
func MaternityPay(averageWeeklyEarnings, flatRate decimal.Decimal) (MaternityPayResult, error) {
	return maternityPay(averageWeeklyEarnings, domain.MaternityPayRules{
		FlatRate:        flatRate,
		HigherRate:      DefaultSMPHigherRate,
		HigherRateWeeks: DefaultSMPHigherRateWeeks,
		FlatRateWeeks:   DefaultSMPFlatRateWeeks,
	})
}

// MaternityPayForYear uses the tax year's SMP rules and checks the employee
// earns at least the weekly lower earnings limit. Ineligible earnings produce
// a zero entitlement with Eligible unset.
func MaternityPayForYear(averageWeeklyEarnings decimal.Decimal, cfg *domain.TaxYearConfig) (MaternityPayResult, error) {
	rules := cfg.MaternityPay
	if rules.HigherRate.IsZero() {
		rules.HigherRate = DefaultSMPHigherRate
	}
	if rules.HigherRateWeeks == 0 {
		rules.HigherRateWeeks = DefaultSMPHigherRateWeeks
	}
	if rules.FlatRateWeeks == 0 {
		rules.FlatRateWeeks = DefaultSMPFlatRateWeeks
	}

	result, err := maternityPay(averageWeeklyEarnings, rules)
	if err != nil {
		return MaternityPayResult{}, err
	}

	weeklyLEL := cfg.NationalInsurance.LowerEarningsLimit.Div(fiftyTwo)
	result.LowerEarningsLimit = weeklyLEL
	if averageWeeklyEarnings.LessThan(weeklyLEL) {
		result.Eligible = false
		result.HigherRateWeekly = decimal.Zero
		result.HigherRateTotal = decimal.Zero
		result.FlatRateWeekly = decimal.Zero
		result.FlatRateTotal = decimal.Zero
		result.Total = decimal.Zero
	}
	return result, nil
}

func maternityPay(awe decimal.Decimal, rules domain.MaternityPayRules) (MaternityPayResult, error) {
	if err := requireNonNegative("average weekly earnings", awe); err != nil {
		return MaternityPayResult{}, err
	}
	if err := requireNonNegative("flat rate", rules.FlatRate); err != nil {
		return MaternityPayResult{}, err
	}

	higher := awe.Mul(rules.HigherRate)
	flat := decimal.Min(higher, rules.FlatRate)
	higherTotal := higher.Mul(decimal.NewFromInt(int64(rules.HigherRateWeeks)))
	flatTotal := flat.Mul(decimal.NewFromInt(int64(rules.FlatRateWeeks)))

	return MaternityPayResult{
		AverageWeeklyEarnings: awe,
		Eligible:              true,
		LowerEarningsLimit:    decimal.Zero,
		HigherRateWeekly:      higher,
		HigherRateWeeks:       rules.HigherRateWeeks,
		HigherRateTotal:       higherTotal,
		FlatRateWeekly:        flat,
		FlatRateWeeks:         rules.FlatRateWeeks,
		FlatRateTotal:         flatTotal,
		Total:                 higherTotal.Add(flatTotal),
	}, nil
}
