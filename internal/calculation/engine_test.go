package calculation

import (
	"testing"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	cfg := loadTaxYear(t, "2025-26")
	engine := NewCalculationEngine(cfg)

	assert.NotNil(t, engine, "Should create engine")
	assert.Equal(t, cfg, engine.TaxYear, "Should keep tax year")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine(loadTaxYear(t, "2025-26"))

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine(loadTaxYear(t, "2025-26"))
	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.Salary(dec("60000"), domain.DefaultDeductionOptions(), false)
	require.NoError(t, err)
	assert.Empty(t, logger.messages, "Should stay quiet without debug")

	engine.Debug = true
	result, err := engine.Salary(dec("60000"), domain.DefaultDeductionOptions(), false)
	require.NoError(t, err)
	assertDecimal(t, "11432", result.IncomeTax)
	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "DEBUG: ")
}

func TestCalculationEngine_WarnsOnFailure(t *testing.T) {
	engine := NewCalculationEngine(loadTaxYear(t, "2025-26"))
	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.Salary(dec("-5"), domain.DefaultDeductionOptions(), false)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "WARN: ")
}

func TestCalculationEngine_Calculators(t *testing.T) {
	engine := NewCalculationEngine(loadTaxYear(t, "2024-25"))

	ct, err := engine.CorporationTax(dec("100000"), 0)
	require.NoError(t, err)
	assertDecimal(t, "22750", ct.Tax)

	sd, err := engine.StampDuty(dec("500000"), StampDutyOptions{})
	require.NoError(t, err)
	assertDecimal(t, "12500", sd.Tax)

	smp, err := engine.MaternityPay(dec("600"))
	require.NoError(t, err)
	assertDecimal(t, "9312.99", smp.Total)

	div, err := engine.DividendTax(dec("12570"), dec("50000"))
	require.NoError(t, err)
	assertDecimal(t, "7406.25", div.Tax)

	mortgage, err := engine.Mortgage(MortgageInput{Principal: dec("200000"), AnnualRatePercent: dec("4"), TermYears: 25})
	require.NoError(t, err)
	assertPence(t, "1055.67", mortgage.MonthlyPayment)
}

func TestCalculationEngine_NoTaxYear(t *testing.T) {
	engine := &CalculationEngine{Logger: NopLogger{}}

	_, err := engine.Salary(dec("1000"), domain.DefaultDeductionOptions(), false)
	assert.Error(t, err)

	_, err = engine.Mortgage(MortgageInput{Principal: dec("1000"), AnnualRatePercent: dec("1"), TermYears: 1})
	assert.NoError(t, err, "Mortgage does not need a tax year")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
