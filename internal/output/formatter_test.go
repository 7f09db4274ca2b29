package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/internal/payrun"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestRun(t *testing.T) *payrun.Result {
	t.Helper()
	cfg, err := config.BuiltInTaxYear("2025-26")
	require.NoError(t, err)

	pct := decimal.NewFromInt(5)
	paid := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	run := domain.PayRun{
		Name:         "April 2025",
		TaxYear:      "2025-26",
		PeriodType:   domain.PeriodMonthly,
		PeriodNumber: 1,
		PaymentDate:  &paid,
		Employees: []domain.PayRunEntry{
			{
				Employee: domain.Employee{
					ID: "EMP001", Name: "Alex Morgan", TaxCode: "1257L", NICategory: domain.NICategoryA,
					DateOfBirth:                   time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC),
					AutoEnrolmentStatus:           domain.AutoEnrolmentEnrolled,
					PensionContributionPercentage: &pct,
					StudentLoans:                  domain.StudentLoanPlans{Plan2: true},
				},
				Pay: domain.PayComponents{BasePay: decimal.NewFromInt(2800), Bonus: decimal.NewFromInt(200)},
			},
			{
				Employee: domain.Employee{
					ID: "EMP002", Name: "Morgan, Sam", TaxCode: "bogus", NICategory: domain.NICategoryA,
					DateOfBirth: time.Date(1985, 1, 9, 0, 0, 0, 0, time.UTC),
				},
				Pay: domain.PayComponents{BasePay: decimal.NewFromInt(3000)},
			},
		},
	}
	result, err := payrun.NewRunner(nil).Run(context.Background(), cfg, run)
	require.NoError(t, err)
	return result
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"  CONSOLE ", "console"},
		{"summary", "console"},
		{"payslips", "payslip"},
		{"json-pretty", "json"},
		{"csv", "csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("html"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json", "payslip"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "summary")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestRun(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "PAY RUN SUMMARY: April 2025")
	assert.Contains(t, content, "Tax year 2025-26, monthly period 1, paid 30 Apr 2025")
	assert.Contains(t, content, "EMP001")
	assert.Contains(t, content, "£2,272.86")
	assert.Contains(t, content, "2 employee(s)")
	assert.Contains(t, content, "£6,000.00")
	assert.Contains(t, content, "Warnings:")
	assert.Contains(t, content, "EMP002: ")
	assert.Less(t, strings.Index(content, "EMP001"), strings.Index(content, "EMP002"))
}

func TestPayslipFormatter(t *testing.T) {
	out, err := PayslipFormatter{}.Format(buildTestRun(t))
	require.NoError(t, err)
	content := string(out)

	assert.Equal(t, 2, strings.Count(content, "PAYSLIP "))
	assert.Contains(t, content, "PAYSLIP  Alex Morgan (EMP001)")
	assert.Contains(t, content, "Bonus")
	assert.NotContains(t, content, "Commission")
	assert.Contains(t, content, "Basic rate 20% on £1,952.50")
	assert.Contains(t, content, "Student loan (plan2)")
	assert.Contains(t, content, "Pension (5%)")
	assert.Contains(t, content, "Employer pension (3%)")
	assert.Contains(t, content, "CALCULATION")
	assert.Contains(t, content, "Tax code 1257L")
	assert.Contains(t, content, "WARNINGS")
}

func TestJSONFormatter(t *testing.T) {
	result := buildTestRun(t)
	out, err := JSONFormatter{Pretty: true}.Format(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, result.RunID.String(), decoded["run_id"])
	assert.Equal(t, "2025-26", decoded["tax_year"])
	results, ok := decoded["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 2)

	compact, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n  ")
}

func TestJSONFormatter_KeysAreSnakeCase(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestRun(t))
	require.NoError(t, err)

	var decoded any
	require.NoError(t, json.Unmarshal(out, &decoded))

	var walk func(path string, v any)
	walk = func(path string, v any) {
		switch node := v.(type) {
		case map[string]any:
			for key, child := range node {
				assert.Equal(t, strings.ToLower(key), key, "key %s.%s", path, key)
				walk(path+"."+key, child)
			}
		case []any:
			for _, child := range node {
				walk(path+"[]", child)
			}
		}
	}
	walk("", decoded)
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestRun(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header + 2 rows")
	assert.Equal(t, csvHeader, records[0])

	assert.Equal(t, "EMP001", records[1][0])
	assert.Equal(t, "3000.00", records[1][7])
	assert.Equal(t, "2272.86", records[1][18])
	assert.Equal(t, "Morgan, Sam", records[2][1], "commas are quoted")
	assert.NotEmpty(t, records[2][20], "warnings column")
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	name, err := WriteFormatted(CSVFormatter{}, buildTestRun(t), path, "csv")
	require.NoError(t, err)
	assert.Equal(t, path, name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "EmployeeID,"))
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", F: func(r *payrun.Result) ([]byte, error) {
		return []byte(r.Name), nil
	}}
	out, err := f.Format(&payrun.Result{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", string(out))
	assert.Equal(t, "count", f.Name())
}
