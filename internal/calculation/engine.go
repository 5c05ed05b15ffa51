package calculation

import (
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Logger is the logging surface the engine writes to. *logrus.Logger
// satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// CalculationEngine binds the calculators to one tax year
type CalculationEngine struct {
	TaxYear *domain.TaxYearConfig
	Logger  Logger
	Debug   bool // log intermediate figures at debug level
}

// NewCalculationEngine creates an engine for a tax year
func NewCalculationEngine(cfg *domain.TaxYearConfig) *CalculationEngine {
	return &CalculationEngine{
		TaxYear: cfg,
		Logger:  NopLogger{},
	}
}

// SetLogger replaces the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) config() (*domain.TaxYearConfig, error) {
	if ce.TaxYear == nil {
		return nil, fmt.Errorf("calculation engine has no tax year configured")
	}
	return ce.TaxYear, nil
}

// Salary runs the deduction aggregator for an annual gross salary
func (ce *CalculationEngine) Salary(gross decimal.Decimal, options domain.DeductionOptions, useAdvanced bool) (domain.DeductionResult, error) {
	cfg, err := ce.config()
	if err != nil {
		return domain.DeductionResult{}, err
	}
	result, err := CalculateDeductions(gross, options, cfg, useAdvanced)
	if err != nil {
		ce.Logger.Warnf("salary calculation for %s failed: %v", gross.StringFixed(2), err)
		return domain.DeductionResult{}, err
	}
	if ce.Debug {
		ce.Logger.Debugf("salary %s (%s, %s): allowance %s, tax %s, NI %s, net %s",
			gross.StringFixed(2), cfg.Key, result.Region,
			result.PersonalAllowance.StringFixed(2), result.IncomeTax.StringFixed(2),
			result.NationalInsurance.StringFixed(2), result.NetAnnual.StringFixed(2))
	}
	return result, nil
}

// DividendTax taxes dividends stacked on a salary
func (ce *CalculationEngine) DividendTax(salary, dividends decimal.Decimal) (DividendTaxResult, error) {
	cfg, err := ce.config()
	if err != nil {
		return DividendTaxResult{}, err
	}
	result, err := CalculateDividendTax(salary, dividends, cfg)
	if err != nil {
		return DividendTaxResult{}, err
	}
	if ce.Debug {
		ce.Logger.Debugf("dividends %s on salary %s: allowance %s, taxable %s, tax %s",
			dividends.StringFixed(2), salary.StringFixed(2), result.PersonalAllowance.StringFixed(2),
			result.TaxableDividends.StringFixed(2), result.Tax.StringFixed(2))
	}
	return result, nil
}

// CorporationTax taxes company profit, sharing thresholds with associated companies
func (ce *CalculationEngine) CorporationTax(profit decimal.Decimal, associatedCompanies int) (CorporationTaxResult, error) {
	cfg, err := ce.config()
	if err != nil {
		return CorporationTaxResult{}, err
	}
	result, err := CalculateCorporationTax(profit, cfg, associatedCompanies)
	if err != nil {
		return CorporationTaxResult{}, err
	}
	if ce.Debug {
		ce.Logger.Debugf("corporation tax on %s: band %s, relief %s, tax %s",
			profit.StringFixed(2), result.Band, result.MarginalRelief.StringFixed(2), result.Tax.StringFixed(2))
	}
	return result, nil
}

// StampDuty prices SDLT on a purchase
func (ce *CalculationEngine) StampDuty(value decimal.Decimal, opts StampDutyOptions) (StampDutyResult, error) {
	cfg, err := ce.config()
	if err != nil {
		return StampDutyResult{}, err
	}
	if opts.FirstTimeBuyer && opts.AdditionalProperty {
		ce.Logger.Warnf("first-time buyer relief ignored for an additional property purchase")
	}
	return CalculateStampDuty(value, cfg, opts)
}

// MaternityPay returns the SMP entitlement under the engine's tax year
func (ce *CalculationEngine) MaternityPay(averageWeeklyEarnings decimal.Decimal) (MaternityPayResult, error) {
	cfg, err := ce.config()
	if err != nil {
		return MaternityPayResult{}, err
	}
	result, err := MaternityPayForYear(averageWeeklyEarnings, cfg)
	if err != nil {
		return MaternityPayResult{}, err
	}
	if !result.Eligible {
		ce.Logger.Infof("average weekly earnings %s below lower earnings limit %s",
			averageWeeklyEarnings.StringFixed(2), result.LowerEarningsLimit.StringFixed(2))
	}
	return result, nil
}

// Mortgage prices a loan; it does not depend on the tax year
func (ce *CalculationEngine) Mortgage(in MortgageInput) (MortgageResult, error) {
	result, err := MortgagePayment(in)
	if err != nil {
		return MortgageResult{}, err
	}
	if ce.Debug {
		ce.Logger.Debugf("mortgage %s over %d years: monthly %s, interest %s",
			in.Principal.StringFixed(2), in.TermYears, result.MonthlyPayment.StringFixed(2), result.TotalInterest.StringFixed(2))
	}
	return result, nil
}
