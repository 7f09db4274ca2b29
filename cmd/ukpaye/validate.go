package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rgehrsitz/ukpaye/internal/calculation"
	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/spf13/cobra"
)

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [payrun-file]",
		Short: "Validate a pay run file",
		Long: "Checks the pay run's structure, then runs the tax code, NI category and pension\n" +
			"contribution checks over every employee. Calculation would still succeed for a file\n" +
			"that fails the per-employee checks; the defaults would be used instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := config.NewInputParser().LoadPayRun(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			problems := 0
			for _, e := range run.Employees {
				emp := e.Employee
				report := func(field, msg string) {
					problems++
					fmt.Fprintf(out, "%s: %s: %s\n", emp.ID, field, msg)
				}
				if r := calculation.ValidateTaxCode(emp.TaxCode); !r.Valid {
					report("tax_code", r.Error)
				}
				if r := calculation.ValidateNICategory(string(emp.NICategory)); !r.Valid {
					report("ni_category", r.Error)
				}
				if emp.PensionContributionPercentage != nil {
					if r := calculation.ValidatePensionContribution(*emp.PensionContributionPercentage); !r.Valid {
						report("pension_contribution_percentage", r.Error)
					}
				}
			}

			if problems > 0 {
				a.log.Warnw("pay run failed validation", "file", args[0], "problems", problems)
				return errors.Errorf("%d problem(s) found in %s", problems, args[0])
			}
			fmt.Fprintf(out, "Pay run %s is valid (%d employee(s))\n", args[0], len(run.Employees))
			return nil
		},
	}
}
