package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
)

// PayrollCalculator runs the four calculators for one employee and one period and assembles the payslip
type PayrollCalculator struct {
	TaxCalc         *TaxCalculator
	NICalc          *NICalculator
	StudentLoanCalc *StudentLoanCalculator
	PensionCalc     *PensionCalculator
	Logger          Logger
	// Now is the as-of clock used when an input carries no payment date
	Now func() time.Time
}

// NewPayrollCalculator creates a payroll calculator with default sub-calculators
func NewPayrollCalculator() *PayrollCalculator {
	return &PayrollCalculator{
		TaxCalc:         NewTaxCalculator(),
		NICalc:          NewNICalculator(),
		StudentLoanCalc: NewStudentLoanCalculator(),
		PensionCalc:     NewPensionCalculator(),
		Logger:          NopLogger{},
		Now:             time.Now,
	}
}

// SetLogger sets the logger on the payroll calculator and every sub-calculator.
// If nil is provided, a no-op logger is used.
func (pc *PayrollCalculator) SetLogger(l Logger) {
	l = loggerOrNop(l)
	pc.Logger = l
	pc.TaxCalc.SetLogger(l)
	pc.NICalc.SetLogger(l)
	pc.StudentLoanCalc.SetLogger(l)
	pc.PensionCalc.SetLogger(l)
}

func (pc *PayrollCalculator) asOf(input domain.PayrollCalculationInput) time.Time {
	if input.PaymentDate != nil {
		return *input.PaymentDate
	}
	if pc.Now != nil {
		return pc.Now()
	}
	return time.Now()
}

// CalculatePayroll computes tax, NI, student loan and pension for the input and returns the payslip.
// Out-of-range amounts and malformed codes never fail the calculation; the only error is a missing
// tax-year configuration.
func (pc *PayrollCalculator) CalculatePayroll(input domain.PayrollCalculationInput) (*domain.PayrollCalculationResult, error) {
	cfg := input.TaxYearConfig
	if cfg == nil {
		return nil, fmt.Errorf("employee %s: tax year configuration is required", input.Employee.ID)
	}

	employee := input.Employee
	grossPay := input.Pay.Gross()
	taxablePay := input.InclusionRules.Taxable.Apply(input.Pay)
	niablePay := input.InclusionRules.NIable.Apply(input.Pay)
	pensionablePay := input.InclusionRules.Pensionable.Apply(input.Pay)

	tax := pc.TaxCalc.CalculateTax(employee, taxablePay, input.PeriodNumber, input.PeriodType, cfg, input.YTD)
	ni := pc.NICalc.CalculateNIAsOf(employee, niablePay, input.PeriodNumber, input.PeriodType, cfg, input.YTD, pc.asOf(input))
	studentLoan := pc.StudentLoanCalc.CalculateStudentLoan(employee, niablePay, input.PeriodType, cfg, input.YTD)
	pension := pc.PensionCalc.CalculatePension(employee, pensionablePay, input.PeriodType, cfg, input.YTD)

	totalDeductions := tax.TaxThisPeriod.
		Add(ni.EmployeeNI).
		Add(studentLoan.TotalDeduction).
		Add(pension.EmployeeContribution)
	netPay := grossPay.Sub(totalDeductions)
	employerCosts := ni.EmployerNI.Add(pension.EmployerContribution)

	taxYear := cfg.TaxYear
	if taxYear == "" {
		taxYear = input.YTD.TaxYear
	}

	updated := domain.EmployeeYTDData{
		TaxYear:             taxYear,
		GrossPay:            input.YTD.GrossPay.Add(nonNegative(grossPay)),
		TaxablePay:          tax.TaxablePayYTD,
		NIablePay:           ni.NIablePayYTD,
		PensionablePay:      pension.PensionablePayYTD,
		TaxPaid:             tax.TaxPaidYTD,
		EmployeeNIPaid:      ni.EmployeeNIYTD,
		EmployerNIPaid:      ni.EmployerNIYTD,
		EmployeePensionPaid: pension.EmployeeContributedYTD,
		EmployerPensionPaid: pension.EmployerContributedYTD,
		StudentLoanPaid:     studentLoan.UpdatedYTD,
	}

	var warnings []string
	warnings = append(warnings, tax.Warnings...)
	warnings = append(warnings, ni.Warnings...)

	log := []string{
		fmt.Sprintf("Gross pay: %s (taxable %s, NI-able %s, pensionable %s)",
			money(grossPay), money(taxablePay), money(niablePay), money(pensionablePay)),
		tax.Calculation,
		ni.Calculation,
		studentLoan.Calculation,
		pension.Calculation,
		fmt.Sprintf("Total deductions: %s; net pay: %s", money(totalDeductions), money(netPay)),
	}

	pc.Logger.Infof("employee %s period %d: gross %s net %s", employee.ID, input.PeriodNumber, grossPay.StringFixed(2), netPay.StringFixed(2))

	return &domain.PayrollCalculationResult{
		EmployeeID:          employee.ID,
		EmployeeName:        employee.Name,
		TaxYear:             taxYear,
		PeriodNumber:        input.PeriodNumber,
		PeriodType:          input.PeriodType,
		Pay:                 input.Pay,
		GrossPay:            grossPay,
		TaxablePay:          taxablePay,
		NIablePay:           niablePay,
		PensionablePay:      pensionablePay,
		Tax:                 tax,
		NI:                  ni,
		StudentLoan:         studentLoan,
		Pension:             pension,
		TotalDeductions:     totalDeductions,
		NetPay:              netPay,
		EmployerCosts:       employerCosts,
		TotalCostToEmployer: grossPay.Add(employerCosts),
		UpdatedYTD:          updated,
		CalculationLog:      log,
		Warnings:            warnings,
	}, nil
}

// TaxOnAnnualPay computes the tax on a whole year's pay in one calculation, for reconciliation
func (pc *PayrollCalculator) TaxOnAnnualPay(employee domain.Employee, annualPay decimal.Decimal, cfg *domain.TaxYearConfiguration) decimal.Decimal {
	employee.TaxCodeBasis = domain.BasisCumulative
	return pc.TaxCalc.CalculateTax(employee, annualPay, 12, domain.PeriodMonthly, cfg, domain.EmployeeYTDData{}).TaxThisPeriod
}
