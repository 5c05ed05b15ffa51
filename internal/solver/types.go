package solver

import (
	"github.com/shopspring/decimal"
)

// Status reports how a solve finished
type Status string

const (
	StatusConverged     Status = "converged"      // net within tolerance of the target
	StatusMaxIterations Status = "max_iterations" // budget exhausted, best guess returned
)

// Options configures the bisection
type Options struct {
	Tolerance     decimal.Decimal // acceptable |net - target|
	MaxIterations int             // bisection steps
	MaxExpansions int             // times the upper bound may double before giving up
	LowFactor     decimal.Decimal // low = target * LowFactor
	HighFactor    decimal.Decimal // high = target * HighFactor
	GuessFactor   decimal.Decimal // first guess = target * GuessFactor
}

// DefaultOptions returns the standard solver configuration
func DefaultOptions() Options {
	return Options{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 50,
		MaxExpansions: 20,
		LowFactor:     decimal.NewFromInt(1),
		HighFactor:    decimal.NewFromFloat(2.5),
		GuessFactor:   decimal.NewFromFloat(1.5),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tolerance.IsZero() {
		o.Tolerance = d.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.MaxExpansions < 0 {
		o.MaxExpansions = 0
	} else if o.MaxExpansions == 0 {
		o.MaxExpansions = d.MaxExpansions
	}
	if o.LowFactor.IsZero() {
		o.LowFactor = d.LowFactor
	}
	if o.HighFactor.IsZero() {
		o.HighFactor = d.HighFactor
	}
	if o.GuessFactor.IsZero() {
		o.GuessFactor = d.GuessFactor
	}
	return o
}

// Result is the gross salary found for a target net income
type Result struct {
	Target     decimal.Decimal `json:"target_net"`
	Gross      decimal.Decimal `json:"gross"`
	NetAtGross decimal.Decimal `json:"net_at_gross"`
	Iterations int             `json:"iterations"`
	Expansions int             `json:"expansions"`
	Status     Status          `json:"status"`
}

// Converged reports whether the net at Gross is within tolerance of the target
func (r Result) Converged() bool {
	return r.Status == StatusConverged
}

// Deviation is |NetAtGross - Target|
func (r Result) Deviation() decimal.Decimal {
	return r.NetAtGross.Sub(r.Target).Abs()
}

// SolveError represents errors from the net-to-gross solver
type SolveError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolveError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolveError) Unwrap() error {
	return e.Cause
}
