package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/taxyear"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/tui"
)

func main() {
	var taxYear, taxConfig, gross string

	rootCmd := &cobra.Command{
		Use:   "calcmymoney-tui",
		Short: "Interactive UK take-home pay calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			years, err := taxyear.NewRegistry()
			if err != nil {
				return err
			}
			if taxConfig != "" {
				if err := years.LoadFile(taxConfig); err != nil {
					return err
				}
			}
			cfg, err := years.Lookup(taxYear)
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewModel(cfg, gross), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	rootCmd.Flags().StringVar(&taxYear, "tax-year", "", "Tax year key, e.g. 2025-26 (default: latest)")
	rootCmd.Flags().StringVar(&taxConfig, "tax-config", "", "Additional tax year YAML file")
	rootCmd.Flags().StringVar(&gross, "gross", "", "Initial gross salary")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
