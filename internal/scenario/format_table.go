package scenario

import (
	"fmt"
	"strings"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparisons as console tables
type TableFormatter struct{}

// FormatIR35 generates a side-by-side inside/outside table
func (tf *TableFormatter) FormatIR35(c *IR35Comparison) string {
	var sb strings.Builder

	sb.WriteString("IR35 COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Tax Year: %s\n", c.TaxYear))
	sb.WriteString(fmt.Sprintf("Contract Income: %s\n\n", output.FormatCurrency(c.Inside.ContractIncome)))

	labelWidth := 28
	numWidth := 18

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", numWidth, "Inside IR35", numWidth, "Outside IR35"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	rows := []struct {
		label   string
		inside  decimal.Decimal
		outside decimal.Decimal
	}{
		{"Umbrella margin", c.Inside.UmbrellaMargin, c.Outside.UmbrellaMargin},
		{"Company expenses", c.Inside.Expenses, c.Outside.Expenses},
		{"Salary", c.Inside.Salary, c.Outside.Salary},
		{"Employer NI", c.Inside.EmployerNI, c.Outside.EmployerNI},
		{"Income tax", c.Inside.IncomeTax, c.Outside.IncomeTax},
		{"Employee NI", c.Inside.NationalInsurance, c.Outside.NationalInsurance},
		{"Company profit", c.Inside.CompanyProfit, c.Outside.CompanyProfit},
		{"Corporation tax", c.Inside.CorporationTax, c.Outside.CorporationTax},
		{"Dividends", c.Inside.Dividends, c.Outside.Dividends},
		{"Dividend tax", c.Inside.DividendTax, c.Outside.DividendTax},
		{"Total tax", c.Inside.TotalTax, c.Outside.TotalTax},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
			labelWidth, r.label,
			numWidth, output.FormatCurrency(r.inside),
			numWidth, output.FormatCurrency(r.outside)))
	}
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Take-home pay",
		numWidth, output.FormatCurrency(c.Inside.TakeHome),
		numWidth, output.FormatCurrency(c.Outside.TakeHome)))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Effective rate",
		numWidth, output.FormatPercentage(c.Inside.EffectiveRate),
		numWidth, output.FormatPercentage(c.Outside.EffectiveRate)))
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	switch c.Better {
	case OptionOutside:
		sb.WriteString(fmt.Sprintf("Outside IR35 keeps %s more a year\n", output.FormatCurrency(c.Difference)))
	case OptionInside:
		sb.WriteString(fmt.Sprintf("Inside IR35 keeps %s more a year\n", output.FormatCurrency(c.Difference.Abs())))
	default:
		sb.WriteString("Both options leave the same take-home pay\n")
	}
	return sb.String()
}

// FormatBRRRR generates the refinance and flip summary
func (tf *TableFormatter) FormatBRRRR(a *BRRRRAnalysis) string {
	var sb strings.Builder

	sb.WriteString("BRRRR ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	line := func(label, value string) {
		sb.WriteString(fmt.Sprintf("  %-30s %18s\n", label+":", value))
	}

	sb.WriteString("\nPROJECT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	line("Stamp duty", output.FormatCurrency(a.StampDuty))
	line("Total project cost", output.FormatCurrency(a.TotalProjectCost))

	sb.WriteString("\nREFINANCE AND HOLD\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	line("New loan", output.FormatCurrency(a.NewLoanAmount))
	line("Cash out", output.FormatCurrency(a.CashOut))
	line("Money left in deal", output.FormatCurrency(a.MoneyLeftInDeal))
	line("Monthly mortgage", output.FormatCurrency(a.MonthlyMortgage))
	line("Monthly cash flow", output.FormatCurrency(a.MonthlyCashFlow))
	line("Annual cash flow", output.FormatCurrency(a.AnnualCashFlow))
	line("Cash-on-cash ROI", a.CashOnCashROI.String())

	sb.WriteString("\nFLIP\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	line("Selling costs", output.FormatCurrency(a.SellingCosts))
	line("Profit", output.FormatCurrency(a.FlipProfit))
	line("ROI", a.FlipROI.StringFixed(2)+"%")

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("RECOMMENDATION: %s\n", a.Recommendation))
	return sb.String()
}
