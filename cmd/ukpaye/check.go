package main

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rgehrsitz/ukpaye/internal/calculation"
	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func checkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a single tax code, NI category or pension percentage",
	}

	printResult := func(cmd *cobra.Command, r domain.ValidationResult) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(r)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "tax-code [code]",
			Short: "Check a PAYE tax code, e.g. 1257L, S1257L, K475, BR, 1257L W1",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				// "1257L W1" may arrive as two arguments
				code := strings.Join(args, " ")
				return printResult(cmd, calculation.ValidateTaxCode(code))
			},
		},
		&cobra.Command{
			Use:   "ni-category [letter]",
			Short: "Check an NI category letter",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printResult(cmd, calculation.ValidateNICategory(args[0]))
			},
		},
		eligibilityCmd(a),
		&cobra.Command{
			Use:   "pension [percentage]",
			Short: "Check an employee pension contribution percentage",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pct, err := decimal.NewFromString(args[0])
				if err != nil {
					return errors.Wrapf(err, "invalid percentage %q", args[0])
				}
				return printResult(cmd, calculation.ValidatePensionContribution(pct))
			},
		},
	)
	return cmd
}

func eligibilityCmd(a *app) *cobra.Command {
	var (
		ty     taxYearFlags
		period string
		asOf   string
	)
	cmd := &cobra.Command{
		Use:   "eligibility [date-of-birth] [gross-pay]",
		Short: "Classify a worker for auto-enrolment from one period's pay",
		Example: `  ukpaye check eligibility 1990-03-14 2500
  ukpaye check eligibility 2006-07-01 400 --period weekly --as-of 2025-09-30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dob, err := time.Parse(time.DateOnly, args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid date of birth %q", args[0])
			}
			pay, err := decimal.NewFromString(args[1])
			if err != nil {
				return errors.Wrapf(err, "invalid gross pay %q", args[1])
			}
			periodType := domain.PeriodType(period)
			if !periodType.IsValid() {
				return errors.Errorf("invalid period %q: must be weekly, fortnightly, four_weekly or monthly", period)
			}
			at := time.Now()
			if asOf != "" {
				if at, err = time.Parse(time.DateOnly, asOf); err != nil {
					return errors.Wrapf(err, "invalid --as-of date %q", asOf)
				}
			}
			cfg, err := ty.resolve(a, nil)
			if err != nil {
				return err
			}

			employee := domain.Employee{DateOfBirth: dob}
			result := calculation.CheckAutoEnrolmentEligibility(employee, pay, periodType, cfg, at)
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		},
	}
	ty.register(cmd)
	cmd.Flags().StringVar(&period, "period", string(domain.PeriodMonthly), "pay frequency of gross-pay")
	cmd.Flags().StringVar(&asOf, "as-of", "", "date the age is taken at, YYYY-MM-DD (default today)")
	return cmd
}
