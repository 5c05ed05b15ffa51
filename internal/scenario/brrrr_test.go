package scenario

import (
	"encoding/json"
	"testing"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseBRRRR() BRRRRInput {
	return BRRRRInput{
		PurchasePrice:         dec("150000"),
		PurchaseCosts:         dec("3000"),
		IncludeStampDuty:      true,
		RehabCost:             dec("30000"),
		HoldingCosts:          dec("2000"),
		ARV:                   dec("260000"),
		RefinanceLTV:          dec("75"),
		RefinanceRatePercent:  dec("5"),
		RefinanceTermYears:    25,
		RefinanceClosingCosts: dec("2000"),
		InterestOnly:          true,
		MonthlyRent:           dec("1500"),
		MonthlyExpenses:       dec("300"),
		SellingCostsPercent:   dec("3"),
	}
}

func TestAnalyzeBRRRR_AllCapitalReturned(t *testing.T) {
	cfg := loadTaxYear(t, "2024-25")

	a, err := AnalyzeBRRRR(baseBRRRR(), cfg)
	require.NoError(t, err)

	assertPence(t, "7500", a.StampDuty)
	assertPence(t, "192500", a.TotalProjectCost)
	assertPence(t, "195000", a.NewLoanAmount)
	assertPence(t, "500", a.CashOut)
	assert.True(t, a.MoneyLeftInDeal.IsZero())
	assertPence(t, "812.50", a.MonthlyMortgage)
	assertPence(t, "387.50", a.MonthlyCashFlow)
	assertPence(t, "4650", a.AnnualCashFlow)

	assert.True(t, a.CashOnCashROI.AllCapitalReturned())
	assert.Equal(t, AllCapitalReturnedText, a.CashOnCashROI.String())

	assertPence(t, "7800", a.SellingCosts)
	assertPence(t, "59700", a.FlipProfit)
	assertPence(t, "31.01", a.FlipROI)
	assert.Equal(t, OptionHold, a.Recommended)
	assert.Contains(t, a.Recommendation, "all capital is returned")

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cash_on_cash_roi":"All Capital Returned"`)
}

func TestAnalyzeBRRRR_MoneyLeftInDeal(t *testing.T) {
	cfg := loadTaxYear(t, "2024-25")
	in := baseBRRRR()
	in.RefinanceLTV = dec("70")

	a, err := AnalyzeBRRRR(in, cfg)
	require.NoError(t, err)

	assertPence(t, "182000", a.NewLoanAmount)
	assertPence(t, "-12500", a.CashOut)
	assertPence(t, "12500", a.MoneyLeftInDeal)
	assertPence(t, "758.33", a.MonthlyMortgage)
	assert.False(t, a.CashOnCashROI.AllCapitalReturned())
	assertPence(t, "42.40", a.CashOnCashROI.Percent())
	assert.Equal(t, OptionHold, a.Recommended)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	_, isNumber := decoded["cash_on_cash_roi"].(float64)
	assert.True(t, isNumber, "numeric ROI encodes as a JSON number")
}

func TestAnalyzeBRRRR_Recommendations(t *testing.T) {
	cfg := loadTaxYear(t, "2024-25")

	t.Run("negative cash flow favours flip", func(t *testing.T) {
		in := baseBRRRR()
		in.RefinanceLTV = dec("70")
		in.MonthlyRent = dec("900")

		a, err := AnalyzeBRRRR(in, cfg)
		require.NoError(t, err)
		assert.True(t, a.MonthlyCashFlow.IsNegative())
		assert.Equal(t, OptionFlip, a.Recommended)
	})

	t.Run("loss making both ways", func(t *testing.T) {
		in := baseBRRRR()
		in.ARV = dec("150000")
		in.RefinanceLTV = dec("70")
		in.MonthlyRent = dec("500")

		a, err := AnalyzeBRRRR(in, cfg)
		require.NoError(t, err)
		assert.True(t, a.FlipProfit.IsNegative())
		assert.Equal(t, OptionNeither, a.Recommended)
	})

	t.Run("repayment mortgage uses the mortgage calculator", func(t *testing.T) {
		in := baseBRRRR()
		in.InterestOnly = false

		a, err := AnalyzeBRRRR(in, cfg)
		require.NoError(t, err)
		want, err := calculation.MonthlyPayment(calculation.MortgageInput{
			Principal:         dec("195000"),
			AnnualRatePercent: dec("5"),
			TermYears:         25,
		})
		require.NoError(t, err)
		assert.True(t, want.Equal(a.MonthlyMortgage))
	})

	t.Run("no stamp duty without a tax year", func(t *testing.T) {
		in := baseBRRRR()
		in.IncludeStampDuty = false

		a, err := AnalyzeBRRRR(in, nil)
		require.NoError(t, err)
		assert.True(t, a.StampDuty.IsZero())
		assertPence(t, "185000", a.TotalProjectCost)
	})
}

func TestAnalyzeBRRRR_Errors(t *testing.T) {
	cfg := loadTaxYear(t, "2024-25")

	in := baseBRRRR()
	in.PurchasePrice = dec("-1")
	_, err := AnalyzeBRRRR(in, cfg)
	assert.ErrorIs(t, err, calculation.ErrNegativeAmount)

	in = baseBRRRR()
	in.RefinanceLTV = dec("120")
	_, err = AnalyzeBRRRR(in, cfg)
	assert.ErrorIs(t, err, calculation.ErrInvalidRate)

	in = baseBRRRR()
	in.RefinanceTermYears = 0
	_, err = AnalyzeBRRRR(in, cfg)
	assert.ErrorIs(t, err, calculation.ErrInvalidTerm)

	_, err = AnalyzeBRRRR(baseBRRRR(), nil)
	assert.Error(t, err)
}

func TestROI_JSON(t *testing.T) {
	data, err := json.Marshal(NewROI(dec("42.4")))
	require.NoError(t, err)
	assert.Equal(t, "42.4", string(data))

	data, err = json.Marshal(AllCapitalReturnedROI())
	require.NoError(t, err)
	assert.Equal(t, `"All Capital Returned"`, string(data))

	var r ROI
	require.NoError(t, json.Unmarshal([]byte(`"All Capital Returned"`), &r))
	assert.True(t, r.AllCapitalReturned())

	require.NoError(t, json.Unmarshal([]byte(`12.5`), &r))
	assert.False(t, r.AllCapitalReturned())
	assert.True(t, r.Percent().Equal(dec("12.5")))
	assert.Equal(t, "12.50%", r.String())

	require.NoError(t, json.Unmarshal([]byte(`"7.25"`), &r))
	assert.True(t, r.Percent().Equal(dec("7.25")))

	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &r))
}
