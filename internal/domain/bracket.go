package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one contiguous range of a progressive schedule.
// A nil Max means the bracket is unbounded above.
type Bracket struct {
	Name string           `yaml:"name" json:"name"`
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit
func (b Bracket) Unbounded() bool {
	return b.Max == nil
}

// Clip returns min(amount, Max), treating an unbounded Max as +infinity
func (b Bracket) Clip(amount decimal.Decimal) decimal.Decimal {
	if b.Max == nil {
		return amount
	}
	return decimal.Min(amount, *b.Max)
}

// Upper returns the upper bound and false when the bracket is unbounded
func (b Bracket) Upper() (decimal.Decimal, bool) {
	if b.Max == nil {
		return decimal.Zero, false
	}
	return *b.Max, true
}

// BracketTable is an ordered list of brackets, ascending by Min.
type BracketTable []Bracket

// NewBound is a helper for building bounded brackets in code and tests
func NewBound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Clone deep-copies the table so callers can never mutate shared configuration
func (t BracketTable) Clone() BracketTable {
	if t == nil {
		return nil
	}
	out := make(BracketTable, len(t))
	for i, b := range t {
		out[i] = b
		if b.Max != nil {
			m := *b.Max
			out[i].Max = &m
		}
	}
	return out
}

// Validate checks the table invariants: ascending, contiguous, non-overlapping,
// rates within [0,1] and only the final bracket unbounded.
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	one := decimal.NewFromInt(1)
	for i, b := range t {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(one) {
			return fmt.Errorf("bracket %d (%s): rate %s must be between 0 and 1", i, b.Name, b.Rate)
		}
		if b.Min.LessThan(decimal.Zero) {
			return fmt.Errorf("bracket %d (%s): min cannot be negative", i, b.Name)
		}
		last := i == len(t)-1
		if b.Max == nil {
			if !last {
				return fmt.Errorf("bracket %d (%s): only the final bracket may be unbounded", i, b.Name)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d (%s): final bracket must be unbounded", i, b.Name)
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d (%s): max %s must be greater than min %s", i, b.Name, b.Max, b.Min)
		}
		if !t[i+1].Min.Equal(*b.Max) {
			return fmt.Errorf("bracket %d (%s): next bracket starts at %s, expected %s", i, b.Name, t[i+1].Min, b.Max)
		}
	}
	return nil
}

// BracketBreakdownEntry is one taxed row produced by a single band evaluation
type BracketBreakdownEntry struct {
	Name          string           `json:"name"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Amount        decimal.Decimal  `json:"amount"`
	BracketMin    decimal.Decimal  `json:"bracket_min"`
	BracketMax    *decimal.Decimal `json:"bracket_max,omitempty"`
}
