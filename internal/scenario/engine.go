package scenario

import (
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
)

// CompareEngine runs scenario comparisons against a calculation engine's tax year
type CompareEngine struct {
	CalcEngine *calculation.CalculationEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

func (ce *CompareEngine) logger() calculation.Logger {
	if ce.CalcEngine == nil || ce.CalcEngine.Logger == nil {
		return calculation.NopLogger{}
	}
	return ce.CalcEngine.Logger
}

// IR35 compares a contract inside and outside IR35
func (ce *CompareEngine) IR35(in IR35Input) (*IR35Comparison, error) {
	if ce.CalcEngine == nil || ce.CalcEngine.TaxYear == nil {
		return nil, fmt.Errorf("ir35: no tax year configured")
	}
	result, err := CompareIR35(in, ce.CalcEngine.TaxYear)
	if err != nil {
		ce.logger().Warnf("ir35 comparison failed: %v", err)
		return nil, err
	}
	if ce.CalcEngine.Debug {
		ce.logger().Debugf("ir35 %s: inside %s outside %s better=%s",
			result.TaxYear, result.Inside.TakeHome.StringFixed(2), result.Outside.TakeHome.StringFixed(2), result.Better)
	}
	return result, nil
}

// BRRRR analyses a refinance deal
func (ce *CompareEngine) BRRRR(in BRRRRInput) (*BRRRRAnalysis, error) {
	var cfg *domain.TaxYearConfig
	if ce.CalcEngine != nil {
		cfg = ce.CalcEngine.TaxYear
	}
	result, err := AnalyzeBRRRR(in, cfg)
	if err != nil {
		ce.logger().Warnf("brrrr analysis failed: %v", err)
		return nil, err
	}
	if ce.CalcEngine != nil && ce.CalcEngine.Debug {
		ce.logger().Debugf("brrrr: money left %s roi %s recommended=%s",
			result.MoneyLeftInDeal.StringFixed(2), result.CashOnCashROI, result.Recommended)
	}
	return result, nil
}
