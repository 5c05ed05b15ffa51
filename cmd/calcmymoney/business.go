package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/input"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/output"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/scenario"
)

func (a *app) dividendTaxCmd() *cobra.Command {
	var salary, dividends string

	cmd := &cobra.Command{
		Use:   "dividend-tax",
		Short: "Calculate tax on dividends stacked on top of a salary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine("")
			if err != nil {
				return err
			}
			result, err := engine.DividendTax(input.Amount(salary), input.Amount(dividends))
			if err != nil {
				return err
			}
			return a.render(cmd, output.DividendReport(engine.TaxYear.Key, result))
		},
	}
	cmd.Flags().StringVar(&salary, "salary", "", "Salary and other non-savings income")
	cmd.Flags().StringVar(&dividends, "dividends", "", "Dividends received")
	_ = cmd.MarkFlagRequired("dividends")
	return cmd
}

func (a *app) corporationTaxCmd() *cobra.Command {
	var associated int

	cmd := &cobra.Command{
		Use:   "corporation-tax [profit]",
		Short: "Calculate corporation tax with marginal relief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine("")
			if err != nil {
				return err
			}
			result, err := engine.CorporationTax(input.Amount(args[0]), associated)
			if err != nil {
				return err
			}
			return a.render(cmd, output.CorporationTaxReport(engine.TaxYear.Key, result))
		},
	}
	cmd.Flags().IntVar(&associated, "associated-companies", 0, "Number of associated companies sharing the thresholds")
	return cmd
}

func (a *app) ir35Cmd() *cobra.Command {
	var income, dayRate, margin, expenses, directorSalary, region string
	var days int

	cmd := &cobra.Command{
		Use:   "ir35",
		Short: "Compare take-home pay inside and outside IR35",
		Long: `Compare a contract paid through an umbrella company (inside IR35) with the
same contract run through a limited company paying salary and dividends
(outside IR35).

Examples:
  calcmymoney ir35 --income 100000 --umbrella-margin 1000
  calcmymoney ir35 --day-rate 500 --days 220 --expenses 2000 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := domain.ParseRegion(region)
			if !ok {
				return fmt.Errorf("unknown region %q", region)
			}
			engine, err := a.engine("")
			if err != nil {
				return err
			}
			result, err := scenario.NewCompareEngine(engine).IR35(scenario.IR35Input{
				ContractIncome: input.Amount(income),
				DayRate:        input.Amount(dayRate),
				DaysPerYear:    days,
				UmbrellaMargin: input.Amount(margin),
				Expenses:       input.Amount(expenses),
				DirectorSalary: input.Amount(directorSalary),
				Region:         r,
			})
			if err != nil {
				return err
			}

			tf := &scenario.TableFormatter{}
			cf := &scenario.CSVFormatter{}
			return a.renderScenario(cmd, result,
				func() string { return tf.FormatIR35(result) },
				func() (string, error) { return cf.FormatIR35(result) })
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "Annual contract income (overrides --day-rate)")
	cmd.Flags().StringVar(&dayRate, "day-rate", "", "Day rate")
	cmd.Flags().IntVar(&days, "days", scenario.DefaultDaysPerYear, "Billable days per year")
	cmd.Flags().StringVar(&margin, "umbrella-margin", "", "Annual umbrella company margin")
	cmd.Flags().StringVar(&expenses, "expenses", "", "Annual business expenses (outside IR35)")
	cmd.Flags().StringVar(&directorSalary, "director-salary", "", "Director salary (default: personal allowance)")
	cmd.Flags().StringVar(&region, "region", "england", "Tax region: england or scotland")
	return cmd
}

// renderScenario picks the comparison formatter matching --format
func (a *app) renderScenario(cmd *cobra.Command, v interface{}, table func() string, csv func() (string, error)) error {
	var out string
	var err error

	switch strings.ToLower(strings.TrimSpace(a.format)) {
	case "", "console", "table", "text":
		out = table()
	case "csv":
		out, err = csv()
	case "json", "json-pretty":
		out, err = (&scenario.JSONFormatter{Pretty: true}).Format(v)
		out += "\n"
	default:
		return fmt.Errorf("format %q is not supported for comparisons (use console, csv or json)", a.format)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
