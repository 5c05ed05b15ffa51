package main

import (
	"github.com/spf13/cobra"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/input"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/output"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/scenario"
)

func (a *app) stampDutyCmd() *cobra.Command {
	var opts calculation.StampDutyOptions

	cmd := &cobra.Command{
		Use:   "stamp-duty [price]",
		Short: "Calculate Stamp Duty Land Tax on a residential purchase",
		Long: `Calculate Stamp Duty Land Tax on a residential purchase using the slabs
of the selected tax year. The 2025-26 slabs (nil rate to £125,000, then 2%)
differ from 2024-25 (nil rate to £250,000), so the same price can owe more
tax in the default year:

  calcmymoney stamp-duty 500000                      # 2025-26: £15,000
  calcmymoney stamp-duty 500000 --tax-year 2024-25   # 2024-25: £12,500`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine("")
			if err != nil {
				return err
			}
			result, err := engine.StampDuty(input.Amount(args[0]), opts)
			if err != nil {
				return err
			}
			return a.render(cmd, output.StampDutyReport(engine.TaxYear.Key, result))
		},
	}
	cmd.Flags().BoolVar(&opts.FirstTimeBuyer, "first-time-buyer", false, "Apply first-time buyer relief")
	cmd.Flags().BoolVar(&opts.AdditionalProperty, "additional-property", false, "Apply the additional property surcharge")
	return cmd
}

func (a *app) mortgageCmd() *cobra.Command {
	var principal, rate string
	var term, fixed int
	var interestOnly bool

	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Calculate monthly mortgage payments and the amortisation schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := calculation.NewCalculationEngine(nil)
			engine.SetLogger(a.logger)
			engine.Debug = a.debug

			result, err := engine.Mortgage(calculation.MortgageInput{
				Principal:         input.Amount(principal),
				AnnualRatePercent: input.Percent(rate),
				TermYears:         term,
				InterestOnly:      interestOnly,
				FixedRateYears:    fixed,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, output.MortgageReport(result))
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "", "Loan amount")
	cmd.Flags().StringVar(&rate, "rate", "", "Annual interest rate in percent, e.g. 4.5")
	cmd.Flags().IntVar(&term, "term", 25, "Term in years")
	cmd.Flags().BoolVar(&interestOnly, "interest-only", false, "Interest-only loan")
	cmd.Flags().IntVar(&fixed, "fixed-years", 0, "Initial fixed-rate period; reports the balance left when it ends")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func (a *app) brrrrCmd() *cobra.Command {
	var price, costs, rehab, holding, arv, ltv, rate, closing, rent, expenses, selling string
	var term int
	var stampDuty, interestOnly bool

	cmd := &cobra.Command{
		Use:   "brrrr",
		Short: "Analyse a buy, refurbish, refinance, rent deal against a flip",
		Long: `Analyse a buy-refurbish-refinance-rent-repeat property deal: money left
in the deal after refinancing, rental cash flow and cash-on-cash return,
compared with selling at the after-repair value.

Example:
  calcmymoney brrrr --price 150000 --costs 3000 --rehab 30000 --holding 2000 \
    --arv 260000 --ltv 75 --rate 5 --closing 2000 --interest-only \
    --rent 1500 --expenses 300 --selling 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine("")
			if err != nil {
				return err
			}
			result, err := scenario.NewCompareEngine(engine).BRRRR(scenario.BRRRRInput{
				PurchasePrice:         input.Amount(price),
				PurchaseCosts:         input.Amount(costs),
				IncludeStampDuty:      stampDuty,
				RehabCost:             input.Amount(rehab),
				HoldingCosts:          input.Amount(holding),
				ARV:                   input.Amount(arv),
				RefinanceLTV:          input.Percent(ltv),
				RefinanceRatePercent:  input.Percent(rate),
				RefinanceTermYears:    term,
				RefinanceClosingCosts: input.Amount(closing),
				InterestOnly:          interestOnly,
				MonthlyRent:           input.Amount(rent),
				MonthlyExpenses:       input.Amount(expenses),
				SellingCostsPercent:   input.Percent(selling),
			})
			if err != nil {
				return err
			}

			tf := &scenario.TableFormatter{}
			cf := &scenario.CSVFormatter{}
			return a.renderScenario(cmd, result,
				func() string { return tf.FormatBRRRR(result) },
				func() (string, error) { return cf.FormatBRRRR(result) })
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "Purchase price")
	cmd.Flags().StringVar(&costs, "costs", "", "Purchase costs (legal, survey)")
	cmd.Flags().BoolVar(&stampDuty, "stamp-duty", true, "Add stamp duty with the additional property surcharge")
	cmd.Flags().StringVar(&rehab, "rehab", "", "Refurbishment cost")
	cmd.Flags().StringVar(&holding, "holding", "", "Holding costs during the works")
	cmd.Flags().StringVar(&arv, "arv", "", "After-repair value")
	cmd.Flags().StringVar(&ltv, "ltv", "75", "Refinance loan-to-value percent")
	cmd.Flags().StringVar(&rate, "rate", "", "Refinance annual rate percent")
	cmd.Flags().IntVar(&term, "term", 25, "Refinance term in years")
	cmd.Flags().StringVar(&closing, "closing", "", "Refinance closing costs")
	cmd.Flags().BoolVar(&interestOnly, "interest-only", false, "Interest-only refinance")
	cmd.Flags().StringVar(&rent, "rent", "", "Monthly rent")
	cmd.Flags().StringVar(&expenses, "expenses", "", "Monthly running costs")
	cmd.Flags().StringVar(&selling, "selling", "3", "Selling costs as a percent of the ARV")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("arv")
	return cmd
}
