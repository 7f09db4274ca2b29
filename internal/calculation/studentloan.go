package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
)

// StudentLoanCalculator computes student and postgraduate loan repayments
type StudentLoanCalculator struct {
	Logger Logger
}

// NewStudentLoanCalculator creates a new student loan calculator
func NewStudentLoanCalculator() *StudentLoanCalculator {
	return &StudentLoanCalculator{Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (sc *StudentLoanCalculator) SetLogger(l Logger) {
	sc.Logger = loggerOrNop(l)
}

// activePlans lists the plans an employee repays in evaluation order
func activePlans(p domain.StudentLoanPlans) []domain.StudentLoanPlan {
	var plans []domain.StudentLoanPlan
	flags := map[domain.StudentLoanPlan]bool{
		domain.StudentLoanPlan1:        p.Plan1,
		domain.StudentLoanPlan2:        p.Plan2,
		domain.StudentLoanPlan4:        p.Plan4,
		domain.StudentLoanPlan5:        p.Plan5,
		domain.StudentLoanPostgraduate: p.Postgraduate,
	}
	for _, plan := range domain.AllStudentLoanPlans {
		if flags[plan] {
			plans = append(plans, plan)
		}
	}
	return plans
}

// CalculateStudentLoan computes each active plan independently against its own threshold
func (sc *StudentLoanCalculator) CalculateStudentLoan(
	employee domain.Employee,
	grossPay decimal.Decimal,
	periodType domain.PeriodType,
	cfg *domain.TaxYearConfiguration,
	ytd domain.EmployeeYTDData,
) domain.StudentLoanCalculationResult {
	result := domain.StudentLoanCalculationResult{
		TotalDeduction: decimal.Zero,
		UpdatedYTD:     ytd.StudentLoanPaid,
	}

	if !employee.StudentLoans.Any() {
		result.Calculation = "No student loan plans active"
		return result
	}
	result.HasStudentLoan = true
	plans := activePlans(employee.StudentLoans)

	periods := periodType.PeriodsInYear()
	pay := nonNegative(grossPay)
	parts := make([]string, 0, len(plans))

	for _, plan := range plans {
		planCfg := cfg.StudentLoans.ForPlan(plan)
		threshold := prorate(planCfg.Threshold, 1, periods)
		deduction := roundPence(nonNegative(pay.Sub(threshold)).Mul(planCfg.Rate))
		planYTD := ytd.StudentLoanPaid.ForPlan(plan).Add(deduction)

		result.Deductions = append(result.Deductions, domain.StudentLoanDeduction{
			Plan:            plan,
			PeriodThreshold: roundPence(threshold),
			Rate:            planCfg.Rate,
			Deduction:       deduction,
			YTD:             planYTD,
		})
		result.TotalDeduction = result.TotalDeduction.Add(deduction)
		result.UpdatedYTD = result.UpdatedYTD.WithPlan(plan, planYTD)
		parts = append(parts, fmt.Sprintf("%s %s above %s at %s = %s",
			plan, money(nonNegative(pay.Sub(threshold))), money(threshold), percent(planCfg.Rate), money(deduction)))
	}

	sc.Logger.Debugf("employee %s: student loan %s across %d plan(s)", employee.ID, result.TotalDeduction, len(plans))
	result.Calculation = fmt.Sprintf("Student loan: %s; total %s", strings.Join(parts, "; "), money(result.TotalDeduction))
	return result
}
