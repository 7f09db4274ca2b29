// Package payrun computes a whole pay run, one payslip per employee, for a single pay period.
package payrun

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rgehrsitz/ukpaye/internal/calculation"
	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Totals sums the payslips of a run
type Totals struct {
	Employees           int             `json:"employees"`
	GrossPay            decimal.Decimal `json:"gross_pay"`
	Tax                 decimal.Decimal `json:"tax"`
	EmployeeNI          decimal.Decimal `json:"employee_ni"`
	EmployerNI          decimal.Decimal `json:"employer_ni"`
	StudentLoan         decimal.Decimal `json:"student_loan"`
	EmployeePension     decimal.Decimal `json:"employee_pension"`
	EmployerPension     decimal.Decimal `json:"employer_pension"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetPay              decimal.Decimal `json:"net_pay"`
	TotalCostToEmployer decimal.Decimal `json:"total_cost_to_employer"`
}

// Result is a computed pay run. Results are in the same order as the run's employees.
type Result struct {
	RunID        uuid.UUID                          `json:"run_id"`
	Name         string                             `json:"name,omitempty"`
	TaxYear      string                             `json:"tax_year"`
	PeriodType   domain.PeriodType                  `json:"period_type"`
	PeriodNumber int                                `json:"period_number"`
	PaymentDate  *time.Time                         `json:"payment_date,omitempty"`
	CalculatedAt time.Time                          `json:"calculated_at"`
	Results      []*domain.PayrollCalculationResult `json:"results"`
	Totals       Totals                             `json:"totals"`
}

// Warnings returns every payslip warning prefixed with the employee ID
func (r *Result) Warnings() []string {
	var out []string
	for _, res := range r.Results {
		for _, w := range res.Warnings {
			out = append(out, res.EmployeeID+": "+w)
		}
	}
	return out
}

// Runner computes pay runs, fanning out one goroutine per employee
type Runner struct {
	Calc   *calculation.PayrollCalculator
	Logger calculation.Logger
	// Concurrency caps the goroutines in flight; zero or less means no limit
	Concurrency int
	Now         func() time.Time
}

// NewRunner creates a runner around a payroll calculator. A nil calculator gets the default one.
func NewRunner(calc *calculation.PayrollCalculator) *Runner {
	if calc == nil {
		calc = calculation.NewPayrollCalculator()
	}
	return &Runner{Calc: calc, Logger: calculation.NopLogger{}, Now: time.Now}
}

// SetLogger sets the logger on the runner and its calculator.
// If nil is provided, a no-op logger is used.
func (r *Runner) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	r.Logger = l
	r.Calc.SetLogger(l)
}

// Run computes every employee in the run against cfg. The first failure cancels the
// remaining employees and is returned; a cancelled ctx stops the run the same way.
func (r *Runner) Run(ctx context.Context, cfg *domain.TaxYearConfiguration, run domain.PayRun) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("tax year configuration is required")
	}
	if run.TaxYear != "" && normalizeLabel(run.TaxYear) != normalizeLabel(cfg.TaxYear) {
		return nil, errors.Errorf("pay run is for tax year %s but the configuration is for %s", run.TaxYear, cfg.TaxYear)
	}

	runID := uuid.New()
	inputs := run.Inputs(cfg)
	results := make([]*domain.PayrollCalculationResult, len(inputs))

	r.Logger.Infof("pay run %s (%s): %d employee(s), %s period %d", runID, run.Name, len(inputs), run.PeriodType, run.PeriodNumber)

	g, gCtx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := r.Calc.CalculatePayroll(input)
			if err != nil {
				return errors.Wrapf(err, "failed to calculate payroll for employee %s", input.Employee.ID)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.Logger.Errorf("pay run %s failed: %v", runID, err)
		return nil, errors.Wrapf(err, "pay run %s", runID)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	out := &Result{
		RunID:        runID,
		Name:         run.Name,
		TaxYear:      cfg.TaxYear,
		PeriodType:   run.PeriodType,
		PeriodNumber: run.PeriodNumber,
		PaymentDate:  run.PaymentDate,
		CalculatedAt: now(),
		Results:      results,
		Totals:       Sum(results),
	}
	r.Logger.Infof("pay run %s complete: gross %s net %s", runID, out.Totals.GrossPay.StringFixed(2), out.Totals.NetPay.StringFixed(2))
	return out, nil
}

// Sum totals a set of payslips
func Sum(results []*domain.PayrollCalculationResult) Totals {
	var t Totals
	for _, res := range results {
		if res == nil {
			continue
		}
		t.Employees++
		t.GrossPay = t.GrossPay.Add(res.GrossPay)
		t.Tax = t.Tax.Add(res.Tax.TaxThisPeriod)
		t.EmployeeNI = t.EmployeeNI.Add(res.NI.EmployeeNI)
		t.EmployerNI = t.EmployerNI.Add(res.NI.EmployerNI)
		t.StudentLoan = t.StudentLoan.Add(res.StudentLoan.TotalDeduction)
		t.EmployeePension = t.EmployeePension.Add(res.Pension.EmployeeContribution)
		t.EmployerPension = t.EmployerPension.Add(res.Pension.EmployerContribution)
		t.TotalDeductions = t.TotalDeductions.Add(res.TotalDeductions)
		t.NetPay = t.NetPay.Add(res.NetPay)
		t.TotalCostToEmployer = t.TotalCostToEmployer.Add(res.TotalCostToEmployer)
	}
	return t
}

func normalizeLabel(label string) string {
	return strings.ReplaceAll(strings.TrimSpace(label), "/", "-")
}
