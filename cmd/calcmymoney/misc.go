package main

import (
	"github.com/spf13/cobra"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/input"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/output"
)

func (a *app) maternityPayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maternity-pay [average-weekly-earnings]",
		Short: "Calculate Statutory Maternity Pay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine("")
			if err != nil {
				return err
			}
			result, err := engine.MaternityPay(input.Amount(args[0]))
			if err != nil {
				return err
			}
			return a.render(cmd, output.MaternityReport(engine.TaxYear.Key, result))
		},
	}
}

func (a *app) taxYearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tax-years",
		Short: "List the configured tax years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, output.TaxYearsReport(a.years.Years(), a.years.DefaultKey()))
		},
	}
}
