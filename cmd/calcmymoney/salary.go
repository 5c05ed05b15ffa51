package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/config"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/input"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/output"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/solver"
)

// salaryFlags are the deduction options shared by salary and net-to-gross
type salaryFlags struct {
	profile         string
	region          string
	pension         string
	pensionMode     string
	studentLoan     string
	seis            string
	eis             string
	otherAllowances string
	taxCode         string
	advanced        bool
}

func (f *salaryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "YAML profile with the salary options (flags are ignored)")
	cmd.Flags().StringVarP(&f.region, "region", "r", "england", "Tax region: england or scotland")
	cmd.Flags().StringVar(&f.pension, "pension", "", "Pension contribution (percent of gross, or monthly amount with --pension-mode fixed_monthly)")
	cmd.Flags().StringVar(&f.pensionMode, "pension-mode", "percentage", "Pension mode: percentage or fixed_monthly")
	cmd.Flags().StringVar(&f.studentLoan, "student-loan", "none", "Student loan plan: none, plan1, plan2, plan4, plan5, postgraduate")
	cmd.Flags().StringVar(&f.seis, "seis", "", "SEIS investment this year")
	cmd.Flags().StringVar(&f.eis, "eis", "", "EIS investment this year")
	cmd.Flags().StringVar(&f.otherAllowances, "other-allowances", "", "Other allowances added to the personal allowance (advanced)")
	cmd.Flags().StringVar(&f.taxCode, "tax-code", "", "PAYE tax code, e.g. 1257L (advanced)")
	cmd.Flags().BoolVar(&f.advanced, "advanced", false, "Force advanced mode (implied by any pension, student loan, SEIS/EIS, tax code or other allowance)")
}

// toProfile loads --profile or builds a profile from the flags
func (f *salaryFlags) toProfile() (*config.Profile, error) {
	parser := config.NewInputParser()
	if f.profile != "" {
		return parser.LoadFromFile(f.profile)
	}

	profile := &config.Profile{
		Region:          f.region,
		Pension:         config.PensionProfile{Mode: f.pensionMode, Value: input.Percent(f.pension)},
		StudentLoan:     f.studentLoan,
		SEISInvestment:  input.Amount(f.seis),
		EISInvestment:   input.Amount(f.eis),
		OtherAllowances: input.Amount(f.otherAllowances),
		TaxCode:         f.taxCode,
		Advanced:        f.advanced,
	}
	if err := parser.ValidateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (a *app) salaryCmd() *cobra.Command {
	var sf salaryFlags

	cmd := &cobra.Command{
		Use:   "salary [gross]",
		Short: "Calculate take-home pay from a gross annual salary",
		Long: `Calculate income tax, National Insurance, student loan and pension
deductions for an annual salary.

Examples:
  calcmymoney salary 45000
  calcmymoney salary "£60,000" --region scotland --pension 5 --student-loan plan2
  calcmymoney salary --profile me.yaml --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := sf.toProfile()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				profile.GrossSalary = input.Amount(args[0])
				profile.TargetNet = decimal.Zero
			}
			if profile.GrossSalary.IsZero() && profile.TargetNet.IsPositive() {
				return a.solveAndRender(cmd, profile)
			}
			if profile.GrossSalary.IsZero() && len(args) == 0 {
				return fmt.Errorf("a gross salary is required (argument or gross_salary in the profile)")
			}

			options, err := profile.DeductionOptions()
			if err != nil {
				return err
			}
			engine, err := a.engine(profile.TaxYear)
			if err != nil {
				return err
			}
			result, err := engine.Salary(profile.GrossSalary, options, profile.Advanced || options.UsesAdvanced())
			if err != nil {
				return err
			}
			return a.render(cmd, output.SalaryReport(result))
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) netToGrossCmd() *cobra.Command {
	var sf salaryFlags

	cmd := &cobra.Command{
		Use:     "net-to-gross [target-net]",
		Aliases: []string{"gross-from-net"},
		Short:   "Find the gross salary that produces a target take-home pay",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := sf.toProfile()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				profile.TargetNet = input.Amount(args[0])
			}
			return a.solveAndRender(cmd, profile)
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) solveAndRender(cmd *cobra.Command, profile *config.Profile) error {
	options, err := profile.DeductionOptions()
	if err != nil {
		return err
	}
	engine, err := a.engine(profile.TaxYear)
	if err != nil {
		return err
	}

	advanced := profile.Advanced || options.UsesAdvanced()

	sv := solver.NewDefaultSolver()
	sv.Logger = a.logger
	result, err := sv.GrossFromNet(profile.TargetNet, options, engine.TaxYear, advanced)
	if err != nil {
		return err
	}
	if !result.Converged() {
		a.logger.Warnf("net-to-gross stopped after %d iterations; result is within %s of the target",
			result.Iterations, result.Deviation().StringFixed(2))
	}

	salary, err := engine.Salary(result.Gross, options, advanced)
	if err != nil {
		return err
	}
	return a.render(cmd, output.GrossFromNetReport(result, salary))
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile-file]",
		Short: "Validate a salary profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if profile.TaxYear != "" {
				if _, err := a.years.Lookup(profile.TaxYear); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid\n", args[0])
			return nil
		},
	}
}
