package scenario

import (
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

func (in BRRRRInput) validate() error {
	for name, v := range map[string]decimal.Decimal{
		"purchase price":          in.PurchasePrice,
		"purchase costs":          in.PurchaseCosts,
		"rehab cost":              in.RehabCost,
		"holding costs":           in.HoldingCosts,
		"after repair value":      in.ARV,
		"refinance LTV":           in.RefinanceLTV,
		"refinance closing costs": in.RefinanceClosingCosts,
		"monthly rent":            in.MonthlyRent,
		"monthly expenses":        in.MonthlyExpenses,
		"selling costs percent":   in.SellingCostsPercent,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s %s: %w", name, v.String(), calculation.ErrNegativeAmount)
		}
	}
	if in.RefinanceLTV.GreaterThan(hundred) {
		return fmt.Errorf("refinance LTV %s%%: %w", in.RefinanceLTV.String(), calculation.ErrInvalidRate)
	}
	return nil
}

// AnalyzeBRRRR prices a buy, refurbish, refinance deal and compares holding
// it as a rental with selling it on. cfg is only needed when stamp duty is
// included.
func AnalyzeBRRRR(in BRRRRInput, cfg *domain.TaxYearConfig) (*BRRRRAnalysis, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	a := &BRRRRAnalysis{}
	if cfg != nil {
		a.TaxYear = cfg.Key
	}
	if in.IncludeStampDuty {
		if cfg == nil {
			return nil, fmt.Errorf("stamp duty needs a tax year")
		}
		sd, err := calculation.CalculateStampDuty(in.PurchasePrice, cfg, calculation.StampDutyOptions{AdditionalProperty: true})
		if err != nil {
			return nil, fmt.Errorf("stamp duty: %w", err)
		}
		a.StampDuty = sd.Tax
	}

	a.TotalProjectCost = in.PurchasePrice.
		Add(in.PurchaseCosts).
		Add(a.StampDuty).
		Add(in.RehabCost).
		Add(in.HoldingCosts)
	a.NewLoanAmount = in.ARV.Mul(in.RefinanceLTV).Div(hundred)
	a.CashOut = a.NewLoanAmount.Sub(a.TotalProjectCost).Sub(in.RefinanceClosingCosts)
	a.MoneyLeftInDeal = decimal.Max(decimal.Zero, a.TotalProjectCost.Sub(a.NewLoanAmount).Add(in.RefinanceClosingCosts))

	if a.NewLoanAmount.IsPositive() {
		payment, err := calculation.MonthlyPayment(calculation.MortgageInput{
			Principal:         a.NewLoanAmount,
			AnnualRatePercent: in.RefinanceRatePercent,
			TermYears:         in.RefinanceTermYears,
			InterestOnly:      in.InterestOnly,
		})
		if err != nil {
			return nil, fmt.Errorf("refinance mortgage: %w", err)
		}
		a.MonthlyMortgage = payment
	}

	a.MonthlyCashFlow = in.MonthlyRent.Sub(in.MonthlyExpenses).Sub(a.MonthlyMortgage)
	a.AnnualCashFlow = a.MonthlyCashFlow.Mul(twelve)

	if a.MoneyLeftInDeal.IsZero() {
		a.CashOnCashROI = AllCapitalReturnedROI()
	} else {
		a.CashOnCashROI = NewROI(a.AnnualCashFlow.Div(a.MoneyLeftInDeal).Mul(hundred))
	}

	a.SellingCosts = in.ARV.Mul(in.SellingCostsPercent).Div(hundred)
	a.FlipProfit = in.ARV.Sub(a.SellingCosts).Sub(a.TotalProjectCost)
	if a.TotalProjectCost.IsPositive() {
		a.FlipROI = a.FlipProfit.Div(a.TotalProjectCost).Mul(hundred)
	}

	a.Recommended, a.Recommendation = recommend(a)
	return a, nil
}

func recommend(a *BRRRRAnalysis) (Option, string) {
	holdWorks := a.MonthlyCashFlow.IsPositive()
	flipWorks := a.FlipProfit.IsPositive()

	switch {
	case holdWorks && a.CashOnCashROI.AllCapitalReturned():
		return OptionHold, fmt.Sprintf("Refinance and hold: all capital is returned and the rental makes %s a year",
			a.AnnualCashFlow.StringFixed(2))
	case holdWorks && (!flipWorks || a.CashOnCashROI.Percent().GreaterThanOrEqual(a.FlipROI)):
		return OptionHold, fmt.Sprintf("Refinance and hold: %s cash-on-cash return beats the %s%% flip return",
			a.CashOnCashROI, a.FlipROI.StringFixed(2))
	case flipWorks:
		if !holdWorks {
			return OptionFlip, fmt.Sprintf("Flip: the rental does not cash flow after refinancing; selling makes %s",
				a.FlipProfit.StringFixed(2))
		}
		return OptionFlip, fmt.Sprintf("Flip: %s%% return on project cost beats the %s cash-on-cash return",
			a.FlipROI.StringFixed(2), a.CashOnCashROI)
	default:
		return OptionNeither, "Neither: the rental does not cash flow and a sale would not cover project costs"
	}
}
