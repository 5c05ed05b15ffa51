package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/output"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/taxyear"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the persistent flags and what PersistentPreRunE builds from them
type app struct {
	format    string
	taxYear   string
	taxConfig string
	logLevel  string
	debug     bool
	save      bool

	logger *logrus.Logger
	years  *taxyear.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "calcmymoney",
		Short: "UK personal finance calculator CLI",
		Long: `Take-home pay, net-to-gross, dividend, corporation tax, stamp duty,
maternity pay, mortgage, IR35 and BRRRR calculators driven by versioned
UK tax year tables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.format, "format", "f", "console",
		fmt.Sprintf("Output format (%s; aliases %s)",
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", ")))
	flags.StringVarP(&a.taxYear, "tax-year", "y", "", "Tax year key, e.g. 2025-26 (default: latest)")
	flags.StringVar(&a.taxConfig, "tax-config", "", "Additional tax year YAML file")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.debug, "debug", false, "Log intermediate calculation figures")
	flags.BoolVar(&a.save, "save", false, "Also write the report to a timestamped file")

	rootCmd.AddCommand(
		versionCmd(),
		a.salaryCmd(),
		a.netToGrossCmd(),
		a.validateCmd(),
		a.dividendTaxCmd(),
		a.corporationTaxCmd(),
		a.stampDutyCmd(),
		a.maternityPayCmd(),
		a.mortgageCmd(),
		a.ir35Cmd(),
		a.brrrrCmd(),
		a.taxYearsCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calcmymoney %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// setup builds the logger and tax year registry shared by every subcommand
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = logrus.New()
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	if a.debug {
		level = logrus.DebugLevel
	}
	a.logger.SetLevel(level)

	years, err := taxyear.NewRegistry()
	if err != nil {
		return err
	}
	if a.taxConfig != "" {
		if err := years.LoadFile(a.taxConfig); err != nil {
			return err
		}
		a.logger.Infof("loaded tax year config %s", a.taxConfig)
	}
	a.years = years
	return nil
}

// engine returns a calculation engine for --tax-year, else key (from a
// profile), else the default year
func (a *app) engine(key string) (*calculation.CalculationEngine, error) {
	if a.taxYear != "" {
		key = a.taxYear
	}
	cfg, err := a.years.Lookup(key)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngine(cfg)
	engine.SetLogger(a.logger)
	engine.Debug = a.debug
	return engine, nil
}

// render writes a report to stdout in the selected format
func (a *app) render(cmd *cobra.Command, report output.Report) error {
	f := output.GetFormatterByName(a.format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s)", a.format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if a.save {
		ext := f.Name()
		if ext == "console" {
			ext = "txt"
		}
		filename, err := output.WriteFormatted(f, report, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", filename)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
