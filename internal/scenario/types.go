package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// AllCapitalReturnedText is how an ROI with no capital left in the deal renders
const AllCapitalReturnedText = "All Capital Returned"

// Option names one side of a comparison
type Option string

const (
	OptionInside  Option = "inside"
	OptionOutside Option = "outside"
	OptionHold    Option = "hold"
	OptionFlip    Option = "flip"
	OptionNeither Option = "neither"
	OptionEqual   Option = "equal"
)

// IR35Input describes a contract to compare inside and outside IR35
type IR35Input struct {
	// ContractIncome is the annual contract value; when zero it is DayRate x DaysPerYear
	ContractIncome decimal.Decimal `json:"contract_income"`
	DayRate        decimal.Decimal `json:"day_rate"`
	DaysPerYear    int             `json:"days_per_year"`
	// UmbrellaMargin is the annual umbrella company fee (inside only)
	UmbrellaMargin decimal.Decimal `json:"umbrella_margin"`
	// Expenses are allowable limited company costs (outside only)
	Expenses decimal.Decimal `json:"expenses"`
	// DirectorSalary defaults to the personal allowance when zero
	DirectorSalary decimal.Decimal `json:"director_salary"`
	Region         domain.Region   `json:"region"`
}

// IR35Outcome is the take-home position for one side of IR35
type IR35Outcome struct {
	Option            Option          `json:"option"`
	ContractIncome    decimal.Decimal `json:"contract_income"`
	UmbrellaMargin    decimal.Decimal `json:"umbrella_margin"`
	Expenses          decimal.Decimal `json:"expenses"`
	Salary            decimal.Decimal `json:"salary"`
	EmployerNI        decimal.Decimal `json:"employer_ni"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance"`
	CompanyProfit     decimal.Decimal `json:"company_profit"`
	CorporationTax    decimal.Decimal `json:"corporation_tax"`
	Dividends         decimal.Decimal `json:"dividends"`
	DividendTax       decimal.Decimal `json:"dividend_tax"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	TakeHome          decimal.Decimal `json:"take_home"`
	EffectiveRate     decimal.Decimal `json:"effective_rate"`
}

// IR35Comparison holds both outcomes and which one keeps more money
type IR35Comparison struct {
	TaxYear    string          `json:"tax_year"`
	Inside     IR35Outcome     `json:"inside"`
	Outside    IR35Outcome     `json:"outside"`
	Difference decimal.Decimal `json:"difference"`
	Better     Option          `json:"better"`
}

// BRRRRInput describes a buy, refurbish, refinance deal
type BRRRRInput struct {
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseCosts decimal.Decimal `json:"purchase_costs"`
	// IncludeStampDuty adds SDLT at the additional-property rates to the project cost
	IncludeStampDuty      bool            `json:"include_stamp_duty"`
	RehabCost             decimal.Decimal `json:"rehab_cost"`
	HoldingCosts          decimal.Decimal `json:"holding_costs"`
	ARV                   decimal.Decimal `json:"arv"`
	RefinanceLTV          decimal.Decimal `json:"refinance_ltv"`
	RefinanceRatePercent  decimal.Decimal `json:"refinance_rate_percent"`
	RefinanceTermYears    int             `json:"refinance_term_years"`
	RefinanceClosingCosts decimal.Decimal `json:"refinance_closing_costs"`
	InterestOnly          bool            `json:"interest_only"`
	MonthlyRent           decimal.Decimal `json:"monthly_rent"`
	MonthlyExpenses       decimal.Decimal `json:"monthly_expenses"`
	SellingCostsPercent   decimal.Decimal `json:"selling_costs_percent"`
}

// BRRRRAnalysis compares refinancing and holding against flipping the property
type BRRRRAnalysis struct {
	TaxYear          string          `json:"tax_year"`
	StampDuty        decimal.Decimal `json:"stamp_duty"`
	TotalProjectCost decimal.Decimal `json:"total_project_cost"`
	NewLoanAmount    decimal.Decimal `json:"new_loan_amount"`
	CashOut          decimal.Decimal `json:"cash_out"`
	MoneyLeftInDeal  decimal.Decimal `json:"money_left_in_deal"`
	MonthlyMortgage  decimal.Decimal `json:"monthly_mortgage"`
	MonthlyCashFlow  decimal.Decimal `json:"monthly_cash_flow"`
	AnnualCashFlow   decimal.Decimal `json:"annual_cash_flow"`
	CashOnCashROI    ROI             `json:"cash_on_cash_roi"`
	SellingCosts     decimal.Decimal `json:"selling_costs"`
	FlipProfit       decimal.Decimal `json:"flip_profit"`
	FlipROI          decimal.Decimal `json:"flip_roi"`
	Recommended      Option          `json:"recommended"`
	Recommendation   string          `json:"recommendation"`
}

// ROI is a percentage return, or the marker that every pound invested has
// come back out of the deal.
type ROI struct {
	percent     decimal.Decimal
	allReturned bool
}

// NewROI wraps a percentage (12.5 = 12.5%)
func NewROI(percent decimal.Decimal) ROI {
	return ROI{percent: percent}
}

// AllCapitalReturnedROI is the ROI of a deal with no money left in it
func AllCapitalReturnedROI() ROI {
	return ROI{allReturned: true}
}

// AllCapitalReturned reports whether the ROI is the no-capital-left marker
func (r ROI) AllCapitalReturned() bool {
	return r.allReturned
}

// Percent returns the numeric ROI; it is zero when all capital was returned
func (r ROI) Percent() decimal.Decimal {
	return r.percent
}

func (r ROI) String() string {
	if r.allReturned {
		return AllCapitalReturnedText
	}
	return r.percent.StringFixed(2) + "%"
}

// MarshalJSON writes the marker as a JSON string and a percentage as a number
func (r ROI) MarshalJSON() ([]byte, error) {
	if r.allReturned {
		return json.Marshal(AllCapitalReturnedText)
	}
	return []byte(r.percent.String()), nil
}

func (r *ROI) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == AllCapitalReturnedText {
			*r = AllCapitalReturnedROI()
			return nil
		}
		data = []byte(s)
	}
	percent, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid ROI %s: %w", string(data), err)
	}
	*r = NewROI(percent)
	return nil
}
