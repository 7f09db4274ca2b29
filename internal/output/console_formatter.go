package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ukpaye/internal/payrun"
)

// ConsoleFormatter prints a one-line-per-employee summary of a pay run with totals.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *payrun.Result) ([]byte, error) {
	var buf bytes.Buffer
	title := "PAY RUN SUMMARY"
	if result.Name != "" {
		title += ": " + result.Name
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintf(&buf, "Tax year %s, %s period %d", result.TaxYear, result.PeriodType, result.PeriodNumber)
	if result.PaymentDate != nil {
		fmt.Fprintf(&buf, ", paid %s", result.PaymentDate.Format("2 Jan 2006"))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Run ID %s\n\n", result.RunID)

	row := "%-10s %-20s %12s %11s %10s %10s %10s %12s\n"
	fmt.Fprintf(&buf, row, "ID", "Name", "Gross", "Tax", "NI", "Loan", "Pension", "Net")
	fmt.Fprintln(&buf, strings.Repeat("-", 96))
	for _, r := range result.Results {
		fmt.Fprintf(&buf, row,
			truncate(r.EmployeeID, 10),
			truncate(r.EmployeeName, 20),
			FormatCurrency(r.GrossPay),
			FormatCurrency(r.Tax.TaxThisPeriod),
			FormatCurrency(r.NI.EmployeeNI),
			FormatCurrency(r.StudentLoan.TotalDeduction),
			FormatCurrency(r.Pension.EmployeeContribution),
			FormatCurrency(r.NetPay),
		)
	}
	t := result.Totals
	fmt.Fprintln(&buf, strings.Repeat("-", 96))
	fmt.Fprintf(&buf, row, "TOTAL", fmt.Sprintf("%d employee(s)", t.Employees),
		FormatCurrency(t.GrossPay),
		FormatCurrency(t.Tax),
		FormatCurrency(t.EmployeeNI),
		FormatCurrency(t.StudentLoan),
		FormatCurrency(t.EmployeePension),
		FormatCurrency(t.NetPay),
	)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Employer NI: %s  Employer pension: %s  Total cost to employer: %s\n",
		FormatCurrency(t.EmployerNI), FormatCurrency(t.EmployerPension), FormatCurrency(t.TotalCostToEmployer))

	if warnings := result.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Warnings:")
		for _, w := range warnings {
			fmt.Fprintf(&buf, "  - %s\n", w)
		}
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
