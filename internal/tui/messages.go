package tui

import (
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/solver"
)

// Mode selects which way the calculator runs
type Mode int

const (
	ModeGrossToNet Mode = iota
	ModeNetToGross
)

func (m Mode) String() string {
	if m == ModeNetToGross {
		return "Net → Gross"
	}
	return "Gross → Net"
}

// Field is a focusable input row
type Field int

const (
	FieldAmount Field = iota
	FieldPension
	FieldRegion
	FieldStudentLoan
	FieldAdvanced
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldAmount:
		return "Amount"
	case FieldPension:
		return "Pension"
	case FieldRegion:
		return "Region"
	case FieldStudentLoan:
		return "Student loan"
	case FieldAdvanced:
		return "Advanced"
	default:
		return "Unknown"
	}
}

// ResultMsg carries a finished calculation back into the update loop.
// Seq ties it to the inputs it was computed from so stale results are dropped.
type ResultMsg struct {
	Seq    int
	Salary *domain.DeductionResult
	Solve  *solver.Result
	Err    error
}
