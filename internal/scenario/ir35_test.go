package scenario

import (
	"testing"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/taxyear"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTaxYear(t *testing.T, key string) *domain.TaxYearConfig {
	t.Helper()
	cfg, err := taxyear.MustNewRegistry().Lookup(key)
	require.NoError(t, err)
	return cfg
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertPence compares after rounding the actual value to pence
func assertPence(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual.Round(2)),
		append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func TestIR35Input_Income(t *testing.T) {
	assert.True(t, IR35Input{ContractIncome: dec("90000")}.Income().Equal(dec("90000")))
	assert.True(t, IR35Input{DayRate: dec("500")}.Income().Equal(dec("110000")), "defaults to 220 days")
	assert.True(t, IR35Input{DayRate: dec("500"), DaysPerYear: 200}.Income().Equal(dec("100000")))
}

func TestCompareIR35(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	result, err := CompareIR35(IR35Input{
		DayRate:        dec("500"),
		DaysPerYear:    200,
		UmbrellaMargin: dec("1000"),
	}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "2025-26", result.TaxYear)

	t.Run("inside funds salary and employer NI from the contract", func(t *testing.T) {
		in := result.Inside
		assert.Equal(t, OptionInside, in.Option)
		assertPence(t, "86739.13", in.Salary)
		assertPence(t, "99000", in.Salary.Add(in.EmployerNI))
		assertPence(t, "22127.65", in.IncomeTax)
		assertPence(t, "3745.38", in.NationalInsurance)
		assertPence(t, "60866.10", in.TakeHome)
		assert.True(t, in.CorporationTax.IsZero())
	})

	t.Run("outside pays salary then dividends", func(t *testing.T) {
		out := result.Outside
		assert.Equal(t, OptionOutside, out.Option)
		assertPence(t, "12570", out.Salary)
		assertPence(t, "1135.50", out.EmployerNI)
		assertPence(t, "86294.50", out.CompanyProfit)
		assertPence(t, "19118.04", out.CorporationTax)
		assertPence(t, "67176.46", out.Dividends)
		assertPence(t, "13203.30", out.DividendTax)
		assertPence(t, "66543.15", out.TakeHome)
		assertPence(t, "33456.85", out.TotalTax)
		assertPence(t, "0.33", out.EffectiveRate)
	})

	assert.Equal(t, OptionOutside, result.Better)
	assertPence(t, "5677.06", result.Difference)
}

func TestCompareIR35_HighExpensesFavourInside(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	result, err := CompareIR35(IR35Input{
		ContractIncome: dec("30000"),
		Expenses:       dec("20000"),
	}, cfg)
	require.NoError(t, err)

	assert.True(t, result.Outside.CompanyProfit.IsZero(), "profit never goes negative")
	assertPence(t, "12570", result.Outside.TakeHome)
	assert.Equal(t, OptionInside, result.Better)
	assert.True(t, result.Difference.IsNegative())
}

func TestCompareIR35_ZeroIncome(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	result, err := CompareIR35(IR35Input{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, OptionEqual, result.Better)
	assert.True(t, result.Inside.TakeHome.IsZero())
	assert.True(t, result.Outside.TakeHome.IsZero())
	assert.True(t, result.Outside.EffectiveRate.IsZero())
}

func TestCompareIR35_Scotland(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")
	in := IR35Input{ContractIncome: dec("100000"), UmbrellaMargin: dec("1000")}

	england, err := CompareIR35(in, cfg)
	require.NoError(t, err)

	in.Region = domain.RegionScotland
	scotland, err := CompareIR35(in, cfg)
	require.NoError(t, err)

	assert.True(t, scotland.Inside.IncomeTax.GreaterThan(england.Inside.IncomeTax))
	assert.True(t, scotland.Outside.DividendTax.Equal(england.Outside.DividendTax), "dividend bands are UK-wide")
}

func TestCompareIR35_Errors(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")

	_, err := CompareIR35(IR35Input{ContractIncome: dec("-1")}, cfg)
	assert.ErrorIs(t, err, calculation.ErrNegativeAmount)

	_, err = CompareIR35(IR35Input{ContractIncome: dec("1000")}, nil)
	assert.Error(t, err)

	_, err = CompareIR35(IR35Input{ContractIncome: dec("1000"), Region: domain.Region("atlantis")}, cfg)
	assert.Error(t, err)
}

func TestCompareEngine(t *testing.T) {
	calc := calculation.NewCalculationEngine(loadTaxYear(t, "2025-26"))
	engine := NewCompareEngine(calc)

	result, err := engine.IR35(IR35Input{ContractIncome: dec("100000"), UmbrellaMargin: dec("1000")})
	require.NoError(t, err)
	assert.Equal(t, OptionOutside, result.Better)

	analysis, err := engine.BRRRR(baseBRRRR())
	require.NoError(t, err)
	assert.True(t, analysis.CashOnCashROI.AllCapitalReturned())

	empty := NewCompareEngine(nil)
	_, err = empty.IR35(IR35Input{ContractIncome: dec("1000")})
	assert.Error(t, err)
	_, err = empty.BRRRR(baseBRRRR())
	assert.Error(t, err, "stamp duty needs a tax year")
}
