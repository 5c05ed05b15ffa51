package calculation

import (
	"errors"
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeAmount is returned when a monetary input is below zero
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrInvalidRate is returned for rates outside their allowed range
	ErrInvalidRate = errors.New("invalid rate")
	// ErrInvalidTerm is returned for loan terms that are not positive
	ErrInvalidTerm = errors.New("term must be positive")
)

// requireNonNegative returns ErrNegativeAmount wrapped with the field name
func requireNonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%s %s: %w", field, amount.String(), ErrNegativeAmount)
	}
	return nil
}

// BandResult is the total charge across a bracket table and the taxed rows
type BandResult struct {
	Total     decimal.Decimal                `json:"total"`
	Breakdown []domain.BracketBreakdownEntry `json:"breakdown"`
}

// TaxableTotal sums the taxable amounts across the breakdown
func (r BandResult) TaxableTotal() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Breakdown {
		total = total.Add(row.TaxableAmount)
	}
	return total
}

// EvaluateBands charges amount against a progressive bracket table.
//
// Zero-rate brackets are skipped; the tax-free band is represented by
// allowanceOffset instead. Inside each charged bracket the taxable slice is
// min(amount, max) - max(min, allowanceOffset), clamped at zero, and rows with
// nothing taxable are left out of the breakdown. No rounding is applied.
func EvaluateBands(amount decimal.Decimal, brackets domain.BracketTable, allowanceOffset decimal.Decimal) (BandResult, error) {
	if err := requireNonNegative("amount", amount); err != nil {
		return BandResult{}, err
	}
	if err := requireNonNegative("allowance offset", allowanceOffset); err != nil {
		return BandResult{}, err
	}

	result := BandResult{Total: decimal.Zero}
	for _, bracket := range brackets {
		if !bracket.Rate.IsPositive() {
			continue
		}
		taxable := bracket.Clip(amount).Sub(decimal.Max(bracket.Min, allowanceOffset))
		if !taxable.IsPositive() {
			continue
		}
		charge := taxable.Mul(bracket.Rate)
		result.Total = result.Total.Add(charge)
		result.Breakdown = append(result.Breakdown, domain.BracketBreakdownEntry{
			Name:          bracket.Name,
			Rate:          bracket.Rate,
			TaxableAmount: taxable,
			Amount:        charge,
			BracketMin:    bracket.Min,
			BracketMax:    bracket.Max,
		})
	}
	return result, nil
}

// RebaseForAllowance moves band boundaries so the tax-free band ends at the
// applied allowance rather than the configured one. Boundaries at or above
// fixedFrom (the income at which the configured allowance is fully tapered
// away) are statutory absolutes and stay where they are; shifted boundaries
// never cross fixedFrom.
func RebaseForAllowance(brackets domain.BracketTable, configured, applied, fixedFrom decimal.Decimal) domain.BracketTable {
	shift := applied.Sub(configured)
	if shift.IsZero() {
		return brackets
	}

	move := func(bound decimal.Decimal) decimal.Decimal {
		if bound.IsZero() || bound.GreaterThanOrEqual(fixedFrom) {
			return bound
		}
		moved := decimal.Min(bound.Add(shift), fixedFrom)
		return decimal.Max(moved, decimal.Zero)
	}

	out := brackets.Clone()
	for i := range out {
		out[i].Min = move(out[i].Min)
		if out[i].Max != nil {
			m := move(*out[i].Max)
			out[i].Max = &m
		}
	}
	return out
}
