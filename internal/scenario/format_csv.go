package scenario

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparisons as CSV
type CSVFormatter struct{}

// FormatIR35 writes one row per line item with inside and outside columns
func (cf *CSVFormatter) FormatIR35(c *IR35Comparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	records := [][]string{
		{"Item", "Inside IR35", "Outside IR35"},
		{"Contract Income", c.Inside.ContractIncome.StringFixed(2), c.Outside.ContractIncome.StringFixed(2)},
		{"Umbrella Margin", c.Inside.UmbrellaMargin.StringFixed(2), c.Outside.UmbrellaMargin.StringFixed(2)},
		{"Expenses", c.Inside.Expenses.StringFixed(2), c.Outside.Expenses.StringFixed(2)},
		{"Salary", c.Inside.Salary.StringFixed(2), c.Outside.Salary.StringFixed(2)},
		{"Employer NI", c.Inside.EmployerNI.StringFixed(2), c.Outside.EmployerNI.StringFixed(2)},
		{"Income Tax", c.Inside.IncomeTax.StringFixed(2), c.Outside.IncomeTax.StringFixed(2)},
		{"Employee NI", c.Inside.NationalInsurance.StringFixed(2), c.Outside.NationalInsurance.StringFixed(2)},
		{"Company Profit", c.Inside.CompanyProfit.StringFixed(2), c.Outside.CompanyProfit.StringFixed(2)},
		{"Corporation Tax", c.Inside.CorporationTax.StringFixed(2), c.Outside.CorporationTax.StringFixed(2)},
		{"Dividends", c.Inside.Dividends.StringFixed(2), c.Outside.Dividends.StringFixed(2)},
		{"Dividend Tax", c.Inside.DividendTax.StringFixed(2), c.Outside.DividendTax.StringFixed(2)},
		{"Total Tax", c.Inside.TotalTax.StringFixed(2), c.Outside.TotalTax.StringFixed(2)},
		{"Take Home", c.Inside.TakeHome.StringFixed(2), c.Outside.TakeHome.StringFixed(2)},
	}
	if err := writer.WriteAll(records); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatBRRRR writes label,value rows
func (cf *CSVFormatter) FormatBRRRR(a *BRRRRAnalysis) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	records := [][]string{
		{"Metric", "Value"},
		{"Stamp Duty", a.StampDuty.StringFixed(2)},
		{"Total Project Cost", a.TotalProjectCost.StringFixed(2)},
		{"New Loan Amount", a.NewLoanAmount.StringFixed(2)},
		{"Cash Out", a.CashOut.StringFixed(2)},
		{"Money Left In Deal", a.MoneyLeftInDeal.StringFixed(2)},
		{"Monthly Mortgage", a.MonthlyMortgage.StringFixed(2)},
		{"Monthly Cash Flow", a.MonthlyCashFlow.StringFixed(2)},
		{"Annual Cash Flow", a.AnnualCashFlow.StringFixed(2)},
		{"Cash On Cash ROI", a.CashOnCashROI.String()},
		{"Selling Costs", a.SellingCosts.StringFixed(2)},
		{"Flip Profit", a.FlipProfit.StringFixed(2)},
		{"Flip ROI", a.FlipROI.StringFixed(2) + "%"},
		{"Recommendation", a.Recommendation},
	}
	if err := writer.WriteAll(records); err != nil {
		return "", err
	}
	return sb.String(), nil
}
