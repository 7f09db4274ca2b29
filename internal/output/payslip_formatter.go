package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/internal/payrun"
	"github.com/shopspring/decimal"
)

// PayslipFormatter renders one text payslip per employee, including the calculation narrative.
type PayslipFormatter struct{}

func (p PayslipFormatter) Name() string { return "payslip" }

func (p PayslipFormatter) Format(result *payrun.Result) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range result.Results {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		WritePayslip(&buf, r)
	}
	return buf.Bytes(), nil
}

const payslipWidth = 64

// WritePayslip writes a single payslip
func WritePayslip(buf *bytes.Buffer, r *domain.PayrollCalculationResult) {
	line := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(buf, "  %-40s %20s\n", label, FormatCurrency(amount))
	}
	optional := func(label string, amount decimal.Decimal) {
		if !amount.IsZero() {
			line(label, amount)
		}
	}

	fmt.Fprintln(buf, strings.Repeat("=", payslipWidth))
	fmt.Fprintf(buf, "PAYSLIP  %s (%s)\n", r.EmployeeName, r.EmployeeID)
	fmt.Fprintf(buf, "Tax year %s, %s period %d\n", r.TaxYear, r.PeriodType, r.PeriodNumber)
	fmt.Fprintln(buf, strings.Repeat("-", payslipWidth))

	fmt.Fprintln(buf, "PAYMENTS")
	line("Basic pay", r.Pay.BasePay)
	optional("Bonus", r.Pay.Bonus)
	optional("Commission", r.Pay.Commission)
	optional("Tronc", r.Pay.Tronc)
	optional("Holiday pay", r.Pay.HolidayPay)
	optional("Other payments", r.Pay.OtherPayments)
	line("Gross pay", r.GrossPay)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "DEDUCTIONS")
	line(fmt.Sprintf("Income tax (%s, %s)", r.Tax.TaxCode, r.Tax.Basis), r.Tax.TaxThisPeriod)
	for _, b := range r.Tax.Breakdown {
		label := b.Band
		if !b.Rate.IsZero() {
			label = fmt.Sprintf("%s %s%% on %s", b.Band, b.Rate.String(), FormatCurrency(b.TaxableAmount))
		}
		fmt.Fprintf(buf, "    %-38s %20s\n", label, FormatCurrency(b.Tax))
	}
	line(fmt.Sprintf("National Insurance (category %s)", r.NI.Category), r.NI.EmployeeNI)
	for _, d := range r.StudentLoan.Deductions {
		line(fmt.Sprintf("Student loan (%s)", d.Plan), d.Deduction)
	}
	if r.Pension.IsEnrolled {
		line(fmt.Sprintf("Pension (%s)", FormatRate(r.Pension.EmployeeRate)), r.Pension.EmployeeContribution)
	}
	line("Total deductions", r.TotalDeductions)
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "  %-40s %20s\n", "NET PAY", FormatCurrency(r.NetPay))
	fmt.Fprintln(buf, strings.Repeat("-", payslipWidth))

	fmt.Fprintln(buf, "EMPLOYER")
	line("Employer NI", r.NI.EmployerNI)
	if r.Pension.IsEnrolled {
		line(fmt.Sprintf("Employer pension (%s)", FormatRate(r.Pension.EmployerRate)), r.Pension.EmployerContribution)
	}
	line("Total cost to employer", r.TotalCostToEmployer)
	fmt.Fprintln(buf)

	ytd := r.UpdatedYTD
	fmt.Fprintln(buf, "YEAR TO DATE")
	line("Gross pay", ytd.GrossPay)
	line("Taxable pay", ytd.TaxablePay)
	line("Tax paid", ytd.TaxPaid)
	line("Employee NI", ytd.EmployeeNIPaid)
	optional("Student loan", ytd.StudentLoanPaid.Total())
	optional("Employee pension", ytd.EmployeePensionPaid)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "CALCULATION")
	for _, l := range r.CalculationLog {
		fmt.Fprintf(buf, "  %s\n", l)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "WARNINGS")
		for _, w := range r.Warnings {
			fmt.Fprintf(buf, "  ! %s\n", w)
		}
	}
	fmt.Fprintln(buf, strings.Repeat("=", payslipWidth))
}
