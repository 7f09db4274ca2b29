package main

import (
	"fmt"

	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/spf13/cobra"
)

func taxYearsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tax-years",
		Short: "List the built-in tax-year configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, y := range config.BuiltInTaxYears() {
				cfg, err := config.BuiltInTaxYear(y)
				if err != nil {
					return err
				}
				marker := " "
				if y == a.settings.TaxYear {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s  personal allowance £%s, NI primary threshold £%s/month, employer NI %s%%\n",
					marker, y,
					cfg.IncomeTax.PersonalAllowance.StringFixed(0),
					cfg.NationalInsurance.PrimaryThreshold.Monthly.StringFixed(0),
					cfg.NationalInsurance.EmployerRate.Shift(2).String())
			}
			return nil
		},
	}
}
