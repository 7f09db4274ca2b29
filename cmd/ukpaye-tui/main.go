package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/rgehrsitz/ukpaye/internal/tui"
)

func main() {
	settings := config.LoadSettings(".env")
	opts := tui.Options{TaxYearConfig: settings.TaxYearConfig}

	cmd := &cobra.Command{
		Use:          "ukpaye-tui [payrun-file]",
		Short:        "Browse a calculated pay run in the terminal",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PayRunPath = args[0]
			if _, err := os.Stat(opts.PayRunPath); os.IsNotExist(err) {
				return fmt.Errorf("pay run file not found: %s", opts.PayRunPath)
			}

			p := tea.NewProgram(
				tui.NewModel(opts),
				tea.WithAltScreen(),       // Use alternate screen buffer
				tea.WithMouseCellMotion(), // Enable mouse support
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.TaxYearConfig, "tax-year-config", opts.TaxYearConfig, "tax-year configuration YAML")
	cmd.Flags().StringVar(&opts.TaxYear, "tax-year", "", "built-in tax year, e.g. 2025-26")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
