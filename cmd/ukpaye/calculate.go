package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rgehrsitz/ukpaye/internal/calculation"
	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/internal/output"
	"github.com/rgehrsitz/ukpaye/internal/payrun"
	"github.com/spf13/cobra"
)

// taxYearFlags are shared by every command that needs rates and thresholds
type taxYearFlags struct {
	configFile string
	label      string
}

func (f *taxYearFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "tax-year-config", "", "tax-year configuration YAML (overrides --tax-year)")
	cmd.Flags().StringVar(&f.label, "tax-year", "", "built-in tax year, e.g. 2025-26 (default: the pay run's year)")
}

// resolve picks flags first, then the pay run's own year, then the environment
func (f *taxYearFlags) resolve(a *app, run *domain.PayRun) (*domain.TaxYearConfiguration, error) {
	file := f.configFile
	if file == "" {
		file = a.settings.TaxYearConfig
	}
	label := f.label
	if label == "" && run != nil {
		label = run.TaxYear
	}
	if label == "" {
		label = a.settings.TaxYear
	}
	return config.ResolveTaxYear(file, label)
}

func calculateCmd(a *app) *cobra.Command {
	var (
		ty         taxYearFlags
		format     string
		outputFile string
	)
	cmd := &cobra.Command{
		Use:   "calculate [payrun-file]",
		Short: "Calculate payslips for every employee in a pay run",
		Long: `Calculate payslips for every employee in a pay run file.

Examples:
  ukpaye calculate payrun.yaml
  ukpaye calculate payrun.yaml --format payslip
  ukpaye calculate payrun.yaml --format csv --output april.csv --tax-year 2025-26`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return errors.Errorf("unsupported format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			run, err := config.NewInputParser().LoadPayRun(args[0])
			if err != nil {
				return err
			}
			cfg, err := ty.resolve(a, run)
			if err != nil {
				return err
			}

			calc := calculation.NewPayrollCalculator()
			runner := payrun.NewRunner(calc)
			runner.SetLogger(a.log)

			result, err := runner.Run(cmd.Context(), cfg, *run)
			if err != nil {
				return err
			}

			if outputFile != "" {
				name, err := output.WriteFormatted(f, result, outputFile, f.Name())
				if err != nil {
					return errors.Wrapf(err, "failed to write %s", outputFile)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d payslip(s) to %s\n", len(result.Results), name)
				return nil
			}

			data, err := f.Format(result)
			if err != nil {
				return errors.Wrapf(err, "failed to format output as %s", f.Name())
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	ty.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write output to a file instead of stdout")
	return cmd
}
