package server

import (
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/config"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/solver"
	"github.com/shopspring/decimal"
)

// PensionRequest is a pension contribution on the wire
type PensionRequest struct {
	Mode  string          `json:"mode"`
	Value decimal.Decimal `json:"value"`
}

// SalaryOptions are the deduction options shared by the salary endpoints
type SalaryOptions struct {
	Region          string          `json:"region"`
	Pension         PensionRequest  `json:"pension"`
	StudentLoan     string          `json:"student_loan"`
	SEISInvestment  decimal.Decimal `json:"seis_investment"`
	EISInvestment   decimal.Decimal `json:"eis_investment"`
	OtherAllowances decimal.Decimal `json:"other_allowances"`
	TaxCode         string          `json:"tax_code"`
	Advanced        bool            `json:"advanced"`
}

func (o SalaryOptions) deductionOptions() (domain.DeductionOptions, error) {
	profile := config.Profile{
		Region:          o.Region,
		Pension:         config.PensionProfile{Mode: o.Pension.Mode, Value: o.Pension.Value},
		StudentLoan:     o.StudentLoan,
		SEISInvestment:  o.SEISInvestment,
		EISInvestment:   o.EISInvestment,
		OtherAllowances: o.OtherAllowances,
		TaxCode:         o.TaxCode,
	}
	return profile.DeductionOptions()
}

// advanced is the explicit flag or any advanced-only option being set
func (o SalaryOptions) advanced(options domain.DeductionOptions) bool {
	return o.Advanced || options.UsesAdvanced()
}

// SalaryRequest is the body of POST /v1/salary
type SalaryRequest struct {
	GrossAnnual decimal.Decimal `json:"gross_annual"`
	SalaryOptions
}

// SalaryResponse is a deduction result with its period views
type SalaryResponse struct {
	Result        domain.DeductionResult `json:"result"`
	Monthly       domain.PeriodAmounts   `json:"monthly"`
	Weekly        domain.PeriodAmounts   `json:"weekly"`
	EffectiveRate decimal.Decimal        `json:"effective_rate"`
}

func newSalaryResponse(r domain.DeductionResult) SalaryResponse {
	return SalaryResponse{
		Result:        r,
		Monthly:       r.Monthly(),
		Weekly:        r.Weekly(),
		EffectiveRate: r.EffectiveTaxRate(),
	}
}

// GrossFromNetRequest is the body of POST /v1/salary/gross-from-net
type GrossFromNetRequest struct {
	TargetNet decimal.Decimal `json:"target_net"`
	SalaryOptions
}

// GrossFromNetResponse reports the solve and the salary it settled on
type GrossFromNetResponse struct {
	Solve  solver.Result  `json:"solve"`
	Salary SalaryResponse `json:"salary"`
}

// DividendTaxRequest is the body of POST /v1/dividend-tax
type DividendTaxRequest struct {
	Salary    decimal.Decimal `json:"salary"`
	Dividends decimal.Decimal `json:"dividends"`
}

// CorporationTaxRequest is the body of POST /v1/corporation-tax
type CorporationTaxRequest struct {
	Profit              decimal.Decimal `json:"profit"`
	AssociatedCompanies int             `json:"associated_companies"`
}

// StampDutyRequest is the body of POST /v1/stamp-duty
type StampDutyRequest struct {
	PropertyValue decimal.Decimal `json:"property_value"`
	calculation.StampDutyOptions
}

// MaternityPayRequest is the body of POST /v1/maternity-pay
type MaternityPayRequest struct {
	AverageWeeklyEarnings decimal.Decimal `json:"average_weekly_earnings"`
}

// TaxYearsResponse lists the configured tax years
type TaxYearsResponse struct {
	Years   []string `json:"years"`
	Default string   `json:"default"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}
