package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/ukpaye/internal/payrun"
)

// CSVFormatter writes one row per employee, in run order.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"EmployeeID", "Name", "TaxYear", "PeriodType", "PeriodNumber", "TaxCode", "NICategory",
	"GrossPay", "TaxablePay", "NIablePay", "PensionablePay",
	"Tax", "EmployeeNI", "EmployerNI", "StudentLoan", "EmployeePension", "EmployerPension",
	"TotalDeductions", "NetPay", "TotalCostToEmployer", "Warnings",
}

func (c CSVFormatter) Format(result *payrun.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range result.Results {
		row := []string{
			r.EmployeeID,
			r.EmployeeName,
			r.TaxYear,
			string(r.PeriodType),
			strconv.Itoa(r.PeriodNumber),
			r.Tax.TaxCode,
			string(r.NI.Category),
			r.GrossPay.StringFixed(2),
			r.TaxablePay.StringFixed(2),
			r.NIablePay.StringFixed(2),
			r.PensionablePay.StringFixed(2),
			r.Tax.TaxThisPeriod.StringFixed(2),
			r.NI.EmployeeNI.StringFixed(2),
			r.NI.EmployerNI.StringFixed(2),
			r.StudentLoan.TotalDeduction.StringFixed(2),
			r.Pension.EmployeeContribution.StringFixed(2),
			r.Pension.EmployerContribution.StringFixed(2),
			r.TotalDeductions.StringFixed(2),
			r.NetPay.StringFixed(2),
			r.TotalCostToEmployer.StringFixed(2),
			strings.Join(r.Warnings, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
