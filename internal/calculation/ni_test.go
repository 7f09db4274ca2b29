package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var niAsOf = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

func TestNICalculator_PrimaryThresholdBoundary(t *testing.T) {
	cfg := testTaxYear()
	cfg.NationalInsurance.EmployeePrimaryRate = dec("0.12")

	tests := []struct {
		name     string
		gross    string
		expected string
	}{
		{"Below threshold", "200", "0"},
		{"Exactly at threshold", "242", "0"},
		{"Ten pence above", "242.10", "0.01"},
		{"One pound above", "243", "0.12"},
		{"At UEL", "967", "87.00"},
		{"Above UEL", "1067", "89.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewNICalculator().CalculateNIAsOf(testEmployee(), dec(tt.gross), 1, domain.PeriodWeekly, cfg, domain.EmployeeYTDData{}, niAsOf)
			assert.True(t, result.EmployeeNI.Equal(dec(tt.expected)), "expected %s, got %s", tt.expected, result.EmployeeNI)
			assert.Equal(t, domain.NIMethodStandard, result.Method)
		})
	}
}

// Employee NI is charged on the exact excess over the PT and rounded to pence, so the first few
// pence above the threshold produce no contribution.
func TestNICalculator_PennyAbovePrimaryThreshold(t *testing.T) {
	cfg := testTaxYear()
	cfg.NationalInsurance.EmployeePrimaryRate = dec("0.12")

	tests := []struct {
		gross    string
		expected string
	}{
		{"242.01", "0"},    // 0.0012
		{"242.04", "0"},    // 0.0048
		{"242.05", "0.01"}, // 0.006 rounds up
	}

	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			result := NewNICalculator().CalculateNIAsOf(testEmployee(), dec(tt.gross), 1, domain.PeriodWeekly, cfg, domain.EmployeeYTDData{}, niAsOf)
			assert.True(t, result.EmployeeNI.Equal(dec(tt.expected)), "expected %s, got %s", tt.expected, result.EmployeeNI)
			assert.Contains(t, result.Calculation, "PT £242.00")
		})
	}
}

func TestNICalculator_StandardMonthly(t *testing.T) {
	tests := []struct {
		name             string
		category         domain.NICategory
		gross            string
		expectedEmployee string
		expectedEmployer string
	}{
		{"Category A main band", domain.NICategoryA, "3000", "156.16", "387.45"},
		{"Category A above UEL", domain.NICategoryA, "5000", "267.50", "687.45"},
		{"Category A below ST", domain.NICategoryA, "400", "0", "0"},
		{"Category B reduced rate", domain.NICategoryB, "3000", "26.35", "387.45"},
		{"Category B above UEL", domain.NICategoryB, "5000", "53.35", "687.45"},
		{"Category J shares standard rates", domain.NICategoryJ, "3000", "156.16", "387.45"},
		{"Lower-case category", domain.NICategory(" a "), "3000", "156.16", "387.45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := testEmployee()
			emp.NICategory = tt.category
			result := NewNICalculator().CalculateNIAsOf(emp, dec(tt.gross), 6, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{}, niAsOf)

			assert.True(t, result.EmployeeNI.Equal(dec(tt.expectedEmployee)), "employee: expected %s, got %s", tt.expectedEmployee, result.EmployeeNI)
			assert.True(t, result.EmployerNI.Equal(dec(tt.expectedEmployer)), "employer: expected %s, got %s", tt.expectedEmployer, result.EmployerNI)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestNICalculator_PeriodThresholds(t *testing.T) {
	tests := []struct {
		periodType domain.PeriodType
		pt         string
		uel        string
		st         string
	}{
		{domain.PeriodWeekly, "242", "967", "96"},
		{domain.PeriodFortnightly, "484", "1934", "192"},
		{domain.PeriodFourWeekly, "968", "3868", "384"},
		{domain.PeriodMonthly, "1048", "4189", "417"},
	}

	for _, tt := range tests {
		t.Run(string(tt.periodType), func(t *testing.T) {
			result := NewNICalculator().CalculateNIAsOf(testEmployee(), dec("1000"), 1, tt.periodType, testTaxYear(), domain.EmployeeYTDData{}, niAsOf)
			assert.True(t, result.Thresholds.PrimaryThreshold.Equal(dec(tt.pt)))
			assert.True(t, result.Thresholds.UpperEarningsLimit.Equal(dec(tt.uel)))
			assert.True(t, result.Thresholds.SecondaryThreshold.Equal(dec(tt.st)))
		})
	}
}

func TestNICalculator_CategoryC(t *testing.T) {
	emp := testEmployee()
	emp.NICategory = domain.NICategoryC
	ytd := domain.EmployeeYTDData{NIablePay: dec("9000"), EmployeeNIPaid: dec("300"), EmployerNIPaid: dec("900")}

	for _, gross := range []string{"0", "500", "3000", "25000"} {
		for _, director := range []bool{false, true} {
			emp.IsDirector = director
			result := NewNICalculator().CalculateNIAsOf(emp, dec(gross), 6, domain.PeriodMonthly, testTaxYear(), ytd, niAsOf)

			assert.True(t, result.EmployeeNI.IsZero(), gross)
			assert.True(t, result.EmployerNI.IsZero(), gross)
			assert.True(t, result.EmployeeNIYTD.Equal(dec("300")), gross)
			assert.True(t, result.EmployerNIYTD.Equal(dec("900")), gross)
			assert.Equal(t, domain.NIMethodExempt, result.Method)
		}
	}
}

func TestNICalculator_UnknownCategoryFallsBackToA(t *testing.T) {
	logger := &recordingLogger{}
	calc := NewNICalculator()
	calc.SetLogger(logger)

	emp := testEmployee()
	emp.NICategory = "Q"
	result := calc.CalculateNIAsOf(emp, dec("3000"), 1, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{}, niAsOf)

	assert.Equal(t, domain.NICategoryA, result.Category)
	assert.True(t, result.EmployeeNI.Equal(dec("156.16")), "got %s", result.EmployeeNI)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Calculation, "WARNING:")
	assert.Len(t, logger.warnings(), 1)
}

func TestNICalculator_EmployerRelief(t *testing.T) {
	tests := []struct {
		name             string
		category         domain.NICategory
		dateOfBirth      time.Time
		gross            string
		expectedEmployer string
		relief           bool
	}{
		{"Apprentice under 25 below AUST", domain.NICategoryH, time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC), "3000", "0", true},
		{"Apprentice under 25 above AUST", domain.NICategoryH, time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC), "5000", "121.65", true},
		{"Apprentice aged 25", domain.NICategoryH, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "5000", "687.45", false},
		{"Category M under 21", domain.NICategoryM, time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC), "3000", "0", true},
		{"Category Z under 21 above UEL", domain.NICategoryZ, time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC), "5000", "121.65", true},
		{"Category M aged 21", domain.NICategoryM, time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC), "3000", "387.45", false},
		{"Category A under 21 has no relief", domain.NICategoryA, time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC), "3000", "387.45", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := testEmployee()
			emp.NICategory = tt.category
			emp.DateOfBirth = tt.dateOfBirth
			result := NewNICalculator().CalculateNIAsOf(emp, dec(tt.gross), 6, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{}, niAsOf)

			assert.True(t, result.EmployerNI.Equal(dec(tt.expectedEmployer)), "expected %s, got %s", tt.expectedEmployer, result.EmployerNI)
			assert.Equal(t, tt.relief, result.Thresholds.ReliefThreshold != nil)
			// Relief never changes the employee's contribution
			assert.False(t, result.EmployeeNI.IsZero())
		})
	}
}

func TestNICalculator_AgeUsesCalculatorClock(t *testing.T) {
	emp := testEmployee()
	emp.NICategory = domain.NICategoryZ
	emp.DateOfBirth = time.Date(2004, 5, 15, 0, 0, 0, 0, time.UTC)

	calc := NewNICalculator()
	calc.Now = func() time.Time { return time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC) }
	before := calc.CalculateNI(emp, dec("3000"), 2, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{})
	assert.True(t, before.EmployerNI.IsZero(), "aged 20: relief applies")

	calc.Now = func() time.Time { return time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC) }
	after := calc.CalculateNI(emp, dec("3000"), 2, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{})
	assert.True(t, after.EmployerNI.Equal(dec("387.45")), "aged 21: got %s", after.EmployerNI)
}

func TestNICalculator_DirectorAnnual(t *testing.T) {
	emp := testEmployee()
	emp.IsDirector = true
	emp.DirectorNICalculationMethod = domain.DirectorNIAnnual
	calc := NewNICalculator()

	t.Run("below annual PT early in year", func(t *testing.T) {
		result := calc.CalculateNIAsOf(emp, dec("3000"), 1, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{}, niAsOf)
		assert.True(t, result.EmployeeNI.IsZero(), "got %s", result.EmployeeNI)
		assert.True(t, result.EmployerNI.IsZero(), "got %s", result.EmployerNI)
		assert.Equal(t, domain.NIMethodDirectorAnnual, result.Method)
		assert.True(t, result.Thresholds.PrimaryThreshold.Equal(dec("12570")))
	})

	t.Run("late bonus charged against annual thresholds", func(t *testing.T) {
		ytd := domain.EmployeeYTDData{NIablePay: dec("10000")}
		result := calc.CalculateNIAsOf(emp, dec("20000"), 11, domain.PeriodMonthly, testTaxYear(), ytd, niAsOf)

		// (30000 - 12570) x 8% and (30000 - 5000) x 15%
		assert.True(t, result.EmployeeNI.Equal(dec("1394.40")), "got %s", result.EmployeeNI)
		assert.True(t, result.EmployerNI.Equal(dec("3750")), "got %s", result.EmployerNI)
		assert.True(t, result.NIablePayYTD.Equal(dec("30000")))
	})

	t.Run("empty method means annual", func(t *testing.T) {
		e := emp
		e.DirectorNICalculationMethod = ""
		result := calc.CalculateNIAsOf(e, dec("3000"), 1, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{}, niAsOf)
		assert.Equal(t, domain.NIMethodDirectorAnnual, result.Method)
	})
}

func TestNICalculator_DirectorReconciliation(t *testing.T) {
	pays := []string{"1000", "1000", "1500", "8000", "2000", "2000", "0", "3000", "12000", "2500", "2500", "30000"}
	total := decimal.Zero
	for _, p := range pays {
		total = total.Add(dec(p))
	}

	for _, method := range []domain.DirectorNIMethod{domain.DirectorNIAnnual, domain.DirectorNIAlternative} {
		t.Run(string(method), func(t *testing.T) {
			emp := testEmployee()
			emp.IsDirector = true
			emp.DirectorNICalculationMethod = method
			calc := NewNICalculator()

			ytd := domain.EmployeeYTDData{}
			for i, p := range pays {
				result := calc.CalculateNIAsOf(emp, dec(p), i+1, domain.PeriodMonthly, testTaxYear(), ytd, niAsOf)
				ytd.NIablePay = result.NIablePayYTD
				ytd.EmployeeNIPaid = result.EmployeeNIYTD
				ytd.EmployerNIPaid = result.EmployerNIYTD
			}

			annualEmp := emp
			annualEmp.DirectorNICalculationMethod = domain.DirectorNIAnnual
			oneShot := calc.CalculateNIAsOf(annualEmp, total, 12, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{}, niAsOf)

			tolerance := dec("0.12")
			assert.True(t, ytd.EmployeeNIPaid.Sub(oneShot.EmployeeNI).Abs().LessThanOrEqual(tolerance),
				"cumulative %s vs annual %s", ytd.EmployeeNIPaid, oneShot.EmployeeNI)
			assert.True(t, ytd.EmployerNIPaid.Sub(oneShot.EmployerNI).Abs().LessThanOrEqual(tolerance),
				"cumulative %s vs annual %s", ytd.EmployerNIPaid, oneShot.EmployerNI)
		})
	}
}

func TestNICalculator_DirectorAlternative(t *testing.T) {
	emp := testEmployee()
	emp.IsDirector = true
	emp.DirectorNICalculationMethod = domain.DirectorNIAlternative
	calc := NewNICalculator()

	mid := calc.CalculateNIAsOf(emp, dec("3000"), 6, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{NIablePay: dec("15000")}, niAsOf)
	assert.Equal(t, domain.NIMethodDirectorAlternative, mid.Method)
	assert.True(t, mid.Thresholds.PrimaryThreshold.Equal(dec("1048")), "per-period thresholds before final period")
	assert.True(t, mid.EmployeeNI.Equal(dec("156.16")), "got %s", mid.EmployeeNI)

	final := calc.CalculateNIAsOf(emp, dec("3000"), 12, domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{NIablePay: dec("33000"), EmployeeNIPaid: dec("1717.76")}, niAsOf)
	assert.True(t, final.Thresholds.PrimaryThreshold.Equal(dec("12570")), "annual thresholds on final period")
	// (36000 - 12570) x 8% = 1874.40, less 1717.76 paid
	assert.True(t, final.EmployeeNI.Equal(dec("156.64")), "got %s", final.EmployeeNI)
}
