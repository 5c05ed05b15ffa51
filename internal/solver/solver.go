package solver

import (
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver inverts the deduction aggregator by bisection
type Solver struct {
	Options Options
	Logger  calculation.Logger
}

// NewSolver creates a solver; unset options take their defaults
func NewSolver(options Options) *Solver {
	return &Solver{
		Options: options.withDefaults(),
		Logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions())
}

// GrossFromNet solves with the default options
func GrossFromNet(targetNet decimal.Decimal, options domain.DeductionOptions, cfg *domain.TaxYearConfig, useAdvanced bool) (Result, error) {
	return NewDefaultSolver().GrossFromNet(targetNet, options, cfg, useAdvanced)
}

// GrossFromNet finds the annual gross whose net pay is within tolerance of
// targetNet. The search starts on [target, 2.5 x target] with a first guess of
// 1.5 x target; the upper bound doubles until it yields at least the target
// net. Running out of iterations is not an error: the last guess comes back
// with StatusMaxIterations.
func (s *Solver) GrossFromNet(targetNet decimal.Decimal, options domain.DeductionOptions, cfg *domain.TaxYearConfig, useAdvanced bool) (Result, error) {
	if targetNet.IsNegative() {
		return Result{}, &SolveError{
			Operation: "gross_from_net",
			Message:   fmt.Sprintf("target net %s", targetNet.String()),
			Cause:     calculation.ErrNegativeAmount,
		}
	}
	opts := s.Options.withDefaults()
	logger := s.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}

	netAt := func(gross decimal.Decimal) (decimal.Decimal, error) {
		r, err := calculation.CalculateDeductions(gross, options, cfg, useAdvanced)
		if err != nil {
			return decimal.Zero, &SolveError{
				Operation: "gross_from_net",
				Message:   fmt.Sprintf("failed to calculate deductions at gross %s", gross.StringFixed(2)),
				Cause:     err,
			}
		}
		return r.NetAnnual, nil
	}

	result := Result{Target: targetNet}
	low := targetNet.Mul(opts.LowFactor)
	high := targetNet.Mul(opts.HighFactor)
	guess := targetNet.Mul(opts.GuessFactor)

	// Make sure the interval brackets the target before bisecting
	for {
		netHigh, err := netAt(high)
		if err != nil {
			return Result{}, err
		}
		if netHigh.GreaterThanOrEqual(targetNet) {
			break
		}
		if result.Expansions >= opts.MaxExpansions {
			logger.Warnf("net-to-gross: upper bound %s still below target %s after %d expansions",
				high.StringFixed(2), targetNet.StringFixed(2), result.Expansions)
			result.Gross = high
			result.NetAtGross = netHigh
			result.Status = StatusMaxIterations
			return result, nil
		}
		low = high
		high = high.Mul(two)
		result.Expansions++
	}
	if result.Expansions > 0 {
		guess = low.Add(high).Div(two)
	}

	for result.Iterations < opts.MaxIterations {
		result.Iterations++

		net, err := netAt(guess)
		if err != nil {
			return Result{}, err
		}
		if net.Sub(targetNet).Abs().LessThan(opts.Tolerance) {
			result.Gross = guess
			result.NetAtGross = net
			result.Status = StatusConverged
			return result, nil
		}

		if net.LessThan(targetNet) {
			low = guess
		} else {
			high = guess
		}
		guess = low.Add(high).Div(two)
	}

	net, err := netAt(guess)
	if err != nil {
		return Result{}, err
	}
	logger.Warnf("net-to-gross: no convergence after %d iterations, best guess %s gives net %s (target %s)",
		result.Iterations, guess.StringFixed(2), net.StringFixed(2), targetNet.StringFixed(2))
	result.Gross = guess
	result.NetAtGross = net
	result.Status = StatusMaxIterations
	return result, nil
}
