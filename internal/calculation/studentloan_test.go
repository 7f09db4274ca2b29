package calculation

import (
	"testing"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentLoanCalculator_NoPlans(t *testing.T) {
	result := NewStudentLoanCalculator().CalculateStudentLoan(testEmployee(), dec("5000"), domain.PeriodMonthly, testTaxYear(), domain.EmployeeYTDData{})

	assert.False(t, result.HasStudentLoan)
	assert.True(t, result.TotalDeduction.IsZero())
	assert.Empty(t, result.Deductions)
	assert.Equal(t, "No student loan plans active", result.Calculation)
}

func TestStudentLoanCalculator_Plans(t *testing.T) {
	tests := []struct {
		name          string
		plans         domain.StudentLoanPlans
		gross         string
		periodType    domain.PeriodType
		expectedTotal string
		expectedPlans int
	}{
		{"Plan 2 monthly", domain.StudentLoanPlans{Plan2: true}, "3000", domain.PeriodMonthly, "56.48", 1},
		{"Plan 1 with postgraduate", domain.StudentLoanPlans{Plan1: true, Postgraduate: true}, "3000", domain.PeriodMonthly, "149.51", 2},
		{"Plan 4 below threshold", domain.StudentLoanPlans{Plan4: true}, "2000", domain.PeriodMonthly, "0", 1},
		{"Plan 5 weekly", domain.StudentLoanPlans{Plan5: true}, "600", domain.PeriodWeekly, "10.73", 1},
		{"All plans", domain.StudentLoanPlans{Plan1: true, Plan2: true, Plan4: true, Plan5: true, Postgraduate: true}, "0", domain.PeriodMonthly, "0", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := testEmployee()
			emp.StudentLoans = tt.plans
			result := NewStudentLoanCalculator().CalculateStudentLoan(emp, dec(tt.gross), tt.periodType, testTaxYear(), domain.EmployeeYTDData{})

			assert.True(t, result.HasStudentLoan)
			assert.Len(t, result.Deductions, tt.expectedPlans)
			assert.True(t, result.TotalDeduction.Equal(dec(tt.expectedTotal)), "expected %s, got %s", tt.expectedTotal, result.TotalDeduction)
		})
	}
}

func TestStudentLoanCalculator_PlansAreIndependent(t *testing.T) {
	emp := testEmployee()
	emp.StudentLoans = domain.StudentLoanPlans{Plan1: true, Postgraduate: true}
	ytd := domain.EmployeeYTDData{StudentLoanPaid: domain.StudentLoanYTD{Plan1: dec("100"), Postgraduate: dec("50"), Plan2: dec("7")}}

	result := NewStudentLoanCalculator().CalculateStudentLoan(emp, dec("3000"), domain.PeriodMonthly, testTaxYear(), ytd)

	require.Len(t, result.Deductions, 2)
	plan1, pg := result.Deductions[0], result.Deductions[1]

	assert.Equal(t, domain.StudentLoanPlan1, plan1.Plan)
	assert.True(t, plan1.PeriodThreshold.Equal(dec("2172.08")), "got %s", plan1.PeriodThreshold)
	assert.True(t, plan1.Deduction.Equal(dec("74.51")), "got %s", plan1.Deduction)
	assert.True(t, plan1.YTD.Equal(dec("174.51")), "got %s", plan1.YTD)

	assert.Equal(t, domain.StudentLoanPostgraduate, pg.Plan)
	assert.True(t, pg.PeriodThreshold.Equal(dec("1750")))
	assert.True(t, pg.Deduction.Equal(dec("75")), "got %s", pg.Deduction)
	assert.True(t, pg.YTD.Equal(dec("125")))

	assert.True(t, result.UpdatedYTD.Plan1.Equal(dec("174.51")))
	assert.True(t, result.UpdatedYTD.Postgraduate.Equal(dec("125")))
	assert.True(t, result.UpdatedYTD.Plan2.Equal(dec("7")), "inactive plans carry through unchanged")
}
