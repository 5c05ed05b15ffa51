package calculation

import (
	"testing"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPence(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assertDecimal(t, expected, actual.Round(2), msgAndArgs...)
}

func TestCalculateCorporationTax(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	tests := []struct {
		name       string
		profit     string
		associated int
		band       CorporationTaxBand
		relief     string
		tax        string
	}{
		{"small profits", "40000", 0, BandSmallProfits, "0", "7600"},
		{"at lower threshold", "50000", 0, BandSmallProfits, "0", "9500"},
		{"marginal relief", "100000", 0, BandMarginalRelief, "2250", "22750"},
		{"at upper threshold", "250000", 0, BandMainRate, "0", "62500"},
		{"main rate", "300000", 0, BandMainRate, "0", "75000"},
		{"associated company halves thresholds", "100000", 1, BandMarginalRelief, "375", "24625"},
		{"zero profit", "0", 0, BandSmallProfits, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateCorporationTax(dec(tt.profit), cfg, tt.associated)
			require.NoError(t, err)
			assert.Equal(t, tt.band, result.Band)
			assertDecimal(t, tt.relief, result.MarginalRelief)
			assertDecimal(t, tt.tax, result.Tax)
			assertDecimal(t, dec(tt.profit).Sub(dec(tt.tax)).String(), result.ProfitAfterTax)
		})
	}
}

func TestCalculateCorporationTax_Errors(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	_, err := CalculateCorporationTax(dec("-1"), cfg, 0)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = CalculateCorporationTax(dec("1000"), cfg, -1)
	assert.Error(t, err)
}

func TestCalculateStampDuty(t *testing.T) {
	tests := []struct {
		name     string
		year     string
		value    string
		opts     StampDutyOptions
		tax      string
		ftb      bool
		surchage bool
	}{
		{"nil rate band", "2024-25", "200000", StampDutyOptions{}, "0", false, false},
		{"five hundred thousand", "2024-25", "500000", StampDutyOptions{}, "12500", false, false},
		{"all slabs", "2024-25", "2000000", StampDutyOptions{}, "151250", false, false},
		{"2025-26 two percent slab", "2025-26", "500000", StampDutyOptions{}, "15000", false, false},
		{"first time buyer", "2024-25", "500000", StampDutyOptions{FirstTimeBuyer: true}, "3750", true, false},
		{"first time buyer over cap", "2024-25", "700000", StampDutyOptions{FirstTimeBuyer: true}, "22500", false, false},
		{"additional property", "2024-25", "500000", StampDutyOptions{AdditionalProperty: true}, "37500", false, true},
		{"surcharge wins over relief", "2024-25", "500000", StampDutyOptions{AdditionalProperty: true, FirstTimeBuyer: true}, "37500", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateStampDuty(dec(tt.value), loadTaxYear(t, tt.year), tt.opts)
			require.NoError(t, err)
			assertDecimal(t, tt.tax, result.Tax)
			assert.Equal(t, tt.ftb, result.FirstTimeBuyer)
			assert.Equal(t, tt.surchage, result.SurchargeApplied)
		})
	}
}

func TestStampDuty_Scenario(t *testing.T) {
	cfg := loadTaxYear(t, "2024-25")

	tax, err := StampDuty(dec("500000"), cfg)
	require.NoError(t, err)
	assertDecimal(t, "12500", tax)

	result, err := CalculateStampDuty(dec("500000"), cfg, StampDutyOptions{})
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 1)
	assertDecimal(t, "250000", result.Breakdown[0].TaxableAmount)
	assertDecimal(t, "0.025", result.EffectiveRate)

	_, err = StampDuty(dec("-1"), cfg)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestMaternityPay(t *testing.T) {
	result, err := MaternityPay(dec("600"), dec("184.03"))
	require.NoError(t, err)

	assertDecimal(t, "540", result.HigherRateWeekly)
	assertDecimal(t, "3240", result.HigherRateTotal)
	assertDecimal(t, "184.03", result.FlatRateWeekly)
	assertDecimal(t, "6072.99", result.FlatRateTotal)
	assertDecimal(t, "9312.99", result.Total)
	assert.Equal(t, 6, result.HigherRateWeeks)
	assert.Equal(t, 33, result.FlatRateWeeks)
}

func TestMaternityPayForYear(t *testing.T) {
	cfg := loadTaxYear(t, "2024-25")

	t.Run("matches the flat rate scenario", func(t *testing.T) {
		result, err := MaternityPayForYear(dec("600"), cfg)
		require.NoError(t, err)
		assert.True(t, result.Eligible)
		assertDecimal(t, "123", result.LowerEarningsLimit)
		assertDecimal(t, "9312.99", result.Total)
	})

	t.Run("low earner keeps ninety percent throughout", func(t *testing.T) {
		result, err := MaternityPayForYear(dec("150"), cfg)
		require.NoError(t, err)
		assert.True(t, result.Eligible)
		assertDecimal(t, "135", result.FlatRateWeekly)
		assertDecimal(t, "5265", result.Total)
	})

	t.Run("below lower earnings limit", func(t *testing.T) {
		result, err := MaternityPayForYear(dec("100"), cfg)
		require.NoError(t, err)
		assert.False(t, result.Eligible)
		assertDecimal(t, "0", result.Total)
	})

	t.Run("negative earnings", func(t *testing.T) {
		_, err := MaternityPayForYear(dec("-1"), cfg)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestMortgagePayment(t *testing.T) {
	t.Run("repayment", func(t *testing.T) {
		result, err := MortgagePayment(MortgageInput{
			Principal:         dec("200000"),
			AnnualRatePercent: dec("4"),
			TermYears:         25,
		})
		require.NoError(t, err)
		assertPence(t, "1055.67", result.MonthlyPayment)
		assertPence(t, "116702.10", result.TotalInterest)
		assertDecimal(t, "0", result.Balloon)

		require.Len(t, result.Schedule, 25)
		assertDecimal(t, "200000", result.Schedule[0].OpeningBalance)
		assertPence(t, "195245.38", result.Schedule[0].ClosingBalance)
		assert.True(t, result.Schedule[24].ClosingBalance.IsZero())

		repaid := decimal.Zero
		for _, year := range result.Schedule {
			repaid = repaid.Add(year.PrincipalPaid)
		}
		assertPence(t, "200000", repaid)
	})

	t.Run("zero rate", func(t *testing.T) {
		result, err := MortgagePayment(MortgageInput{
			Principal:         dec("120000"),
			AnnualRatePercent: dec("0"),
			TermYears:         10,
		})
		require.NoError(t, err)
		assertDecimal(t, "1000", result.MonthlyPayment)
		assertDecimal(t, "0", result.TotalInterest)
	})

	t.Run("interest only", func(t *testing.T) {
		result, err := MortgagePayment(MortgageInput{
			Principal:         dec("200000"),
			AnnualRatePercent: dec("4"),
			TermYears:         25,
			InterestOnly:      true,
		})
		require.NoError(t, err)
		assertPence(t, "666.67", result.MonthlyPayment)
		assertDecimal(t, "200000", result.Balloon)
		assertPence(t, "200000", result.TotalInterest)
		assertDecimal(t, "200000", result.Schedule[24].ClosingBalance)
	})
}

func TestRemainingBalance(t *testing.T) {
	in := MortgageInput{Principal: dec("200000"), AnnualRatePercent: dec("4"), TermYears: 25}

	balance, err := RemainingBalance(in, 0)
	require.NoError(t, err)
	assertDecimal(t, "200000", balance)

	balance, err = RemainingBalance(in, 12)
	require.NoError(t, err)
	assertPence(t, "195245.38", balance)

	balance, err = RemainingBalance(in, 300)
	require.NoError(t, err)
	assertDecimal(t, "0", balance)

	flat := MortgageInput{Principal: dec("120000"), AnnualRatePercent: dec("0"), TermYears: 10}
	balance, err = RemainingBalance(flat, 60)
	require.NoError(t, err)
	assertDecimal(t, "60000", balance)
}

func TestMortgagePayment_FixedRatePeriod(t *testing.T) {
	in := MortgageInput{Principal: dec("200000"), AnnualRatePercent: dec("4"), TermYears: 25, FixedRateYears: 1}
	result, err := MortgagePayment(in)
	require.NoError(t, err)
	require.NotNil(t, result.BalanceAfterFixedRate)
	assertPence(t, "195245.38", *result.BalanceAfterFixedRate)

	in.FixedRateYears = 0
	result, err = MortgagePayment(in)
	require.NoError(t, err)
	assert.Nil(t, result.BalanceAfterFixedRate)

	in.FixedRateYears = 30
	_, err = MortgagePayment(in)
	assert.ErrorIs(t, err, ErrInvalidTerm)
}

func TestMortgagePayment_Errors(t *testing.T) {
	_, err := MortgagePayment(MortgageInput{Principal: dec("-1"), AnnualRatePercent: dec("4"), TermYears: 25})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = MortgagePayment(MortgageInput{Principal: dec("1000"), AnnualRatePercent: dec("-4"), TermYears: 25})
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = MonthlyPayment(MortgageInput{Principal: dec("1000"), AnnualRatePercent: dec("4"), TermYears: 0})
	assert.ErrorIs(t, err, ErrInvalidTerm)
}

func TestCalculateDividendTax(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	t.Run("salary uses allowance", func(t *testing.T) {
		result, err := CalculateDividendTax(dec("12570"), dec("50000"), cfg)
		require.NoError(t, err)
		assertDecimal(t, "12570", result.PersonalAllowance)
		assertDecimal(t, "0", result.AllowanceAgainstDivs)
		assertDecimal(t, "500", result.DividendAllowanceUsed)
		assertDecimal(t, "49500", result.TaxableDividends)
		assertDecimal(t, "7406.25", result.Tax)
		require.Len(t, result.Breakdown, 2)
		assertDecimal(t, "37200", result.Breakdown[0].TaxableAmount)
		assertDecimal(t, "12300", result.Breakdown[1].TaxableAmount)
	})

	t.Run("unused allowance shelters dividends", func(t *testing.T) {
		result, err := CalculateDividendTax(dec("0"), dec("13070"), cfg)
		require.NoError(t, err)
		assertDecimal(t, "12570", result.AllowanceAgainstDivs)
		assertDecimal(t, "500", result.DividendAllowanceUsed)
		assertDecimal(t, "0", result.Tax)
	})

	t.Run("second taper on total income", func(t *testing.T) {
		result, err := CalculateDividendTax(dec("90000"), dec("20000"), cfg)
		require.NoError(t, err)
		assertDecimal(t, "7570", result.PersonalAllowance)
	})

	t.Run("negative dividends", func(t *testing.T) {
		_, err := CalculateDividendTax(dec("0"), dec("-1"), cfg)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestEmployerNI(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	assertDecimal(t, "1135.5", EmployerNI(dec("12570"), cfg))
	assertDecimal(t, "0", EmployerNI(dec("4000"), cfg))

	older := loadTaxYear(t, "2024-25")
	assertDecimal(t, "478.86", EmployerNI(dec("12570"), older))
}

func TestTaxYearConfig_IncomeTaxBracketsUnknownRegion(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")
	_, err := cfg.IncomeTaxBrackets(domain.Region("wales"))
	assert.Error(t, err)
}
