package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// compoundPrecision bounds the digits kept while raising (1+r) to a power
const compoundPrecision = 20

// MortgageInput describes a level-payment loan
type MortgageInput struct {
	Principal decimal.Decimal `json:"principal"`
	// AnnualRatePercent is the nominal yearly rate, 4 meaning 4%
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermYears         int             `json:"term_years"`
	InterestOnly      bool            `json:"interest_only"`
	// FixedRateYears, when set, reports the balance left when the initial
	// fixed rate ends
	FixedRateYears int `json:"fixed_rate_years,omitempty"`
}

// AmortizationYear summarises twelve monthly payments
type AmortizationYear struct {
	Year           int             `json:"year"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	InterestPaid   decimal.Decimal `json:"interest_paid"`
	PrincipalPaid  decimal.Decimal `json:"principal_paid"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// MortgageResult holds the monthly payment and lifetime cost of a loan
type MortgageResult struct {
	Input          MortgageInput      `json:"input"`
	MonthlyPayment decimal.Decimal    `json:"monthly_payment"`
	TotalPaid      decimal.Decimal    `json:"total_paid"`
	TotalInterest  decimal.Decimal    `json:"total_interest"`
	Balloon        decimal.Decimal    `json:"balloon"`
	Schedule       []AmortizationYear `json:"schedule"`

	BalanceAfterFixedRate *decimal.Decimal `json:"balance_after_fixed_rate,omitempty"`
}

func (in MortgageInput) validate() error {
	if err := requireNonNegative("principal", in.Principal); err != nil {
		return err
	}
	if in.AnnualRatePercent.IsNegative() {
		return fmt.Errorf("annual rate %s%%: %w", in.AnnualRatePercent.String(), ErrInvalidRate)
	}
	if in.TermYears <= 0 {
		return fmt.Errorf("term %d years: %w", in.TermYears, ErrInvalidTerm)
	}
	if in.FixedRateYears < 0 || in.FixedRateYears > in.TermYears {
		return fmt.Errorf("fixed rate period %d years must be within the %d year term: %w", in.FixedRateYears, in.TermYears, ErrInvalidTerm)
	}
	return nil
}

func (in MortgageInput) monthlyRate() decimal.Decimal {
	return in.AnnualRatePercent.Div(hundred).Div(twelve)
}

func (in MortgageInput) months() int {
	return in.TermYears * 12
}

// compound returns (1+r)^n by repeated squaring
func compound(r decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	base := r.Add(result)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(compoundPrecision)
		}
		base = base.Mul(base).Round(compoundPrecision)
		n >>= 1
	}
	return result
}

// MonthlyPayment is P*r(1+r)^n / ((1+r)^n - 1) for a repayment loan, P/n at a
// zero rate, and P*r for an interest-only loan.
func MonthlyPayment(in MortgageInput) (decimal.Decimal, error) {
	if err := in.validate(); err != nil {
		return decimal.Zero, err
	}
	return monthlyPayment(in), nil
}

func monthlyPayment(in MortgageInput) decimal.Decimal {
	r := in.monthlyRate()
	n := in.months()
	if in.InterestOnly {
		return in.Principal.Mul(r)
	}
	if r.IsZero() {
		return in.Principal.Div(decimal.NewFromInt(int64(n)))
	}
	factor := compound(r, n)
	return in.Principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
}

// RemainingBalance is the principal outstanding after the given number of
// monthly payments: P * ((1+r)^n - (1+r)^p) / ((1+r)^n - 1).
func RemainingBalance(in MortgageInput, paymentsMade int) (decimal.Decimal, error) {
	if err := in.validate(); err != nil {
		return decimal.Zero, err
	}
	n := in.months()
	switch {
	case in.InterestOnly, paymentsMade <= 0:
		return in.Principal, nil
	case paymentsMade >= n:
		return decimal.Zero, nil
	}

	r := in.monthlyRate()
	if r.IsZero() {
		paid := decimal.NewFromInt(int64(paymentsMade)).Div(decimal.NewFromInt(int64(n)))
		return in.Principal.Mul(decimal.NewFromInt(1).Sub(paid)), nil
	}
	factorN := compound(r, n)
	factorP := compound(r, paymentsMade)
	return in.Principal.Mul(factorN.Sub(factorP)).Div(factorN.Sub(decimal.NewFromInt(1))), nil
}

// MortgagePayment prices the loan and builds a yearly amortization schedule
func MortgagePayment(in MortgageInput) (MortgageResult, error) {
	if err := in.validate(); err != nil {
		return MortgageResult{}, err
	}

	payment := monthlyPayment(in)
	n := in.months()
	result := MortgageResult{
		Input:          in,
		MonthlyPayment: payment,
		Balloon:        decimal.Zero,
	}

	r := in.monthlyRate()
	balance := in.Principal
	for year := 1; year <= in.TermYears; year++ {
		row := AmortizationYear{
			Year:           year,
			OpeningBalance: balance,
			InterestPaid:   decimal.Zero,
			PrincipalPaid:  decimal.Zero,
		}
		for m := 0; m < 12; m++ {
			interest := balance.Mul(r)
			principal := payment.Sub(interest)
			if in.InterestOnly {
				principal = decimal.Zero
			}
			if year == in.TermYears && m == 11 && !in.InterestOnly {
				// last payment clears whatever rounding left behind
				principal = balance
			}
			balance = balance.Sub(principal)
			row.InterestPaid = row.InterestPaid.Add(interest)
			row.PrincipalPaid = row.PrincipalPaid.Add(principal)
		}
		row.ClosingBalance = balance
		result.Schedule = append(result.Schedule, row)
	}

	result.TotalPaid = payment.Mul(decimal.NewFromInt(int64(n)))
	if in.InterestOnly {
		result.Balloon = in.Principal
		result.TotalPaid = result.TotalPaid.Add(in.Principal)
	}
	result.TotalInterest = result.TotalPaid.Sub(in.Principal)

	if in.FixedRateYears > 0 {
		remaining, err := RemainingBalance(in, in.FixedRateYears*12)
		if err != nil {
			return MortgageResult{}, err
		}
		result.BalanceAfterFixedRate = &remaining
	}
	return result, nil
}
