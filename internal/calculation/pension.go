package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	// AutoEnrolmentMinimumAge is the youngest age at which a worker must be enrolled
	AutoEnrolmentMinimumAge = 22
	// StatePensionAge ends the auto-enrolment duty
	StatePensionAge = 66
	// workerMinimumAge and workerMaximumAge bound the opt-in categories
	workerMinimumAge = 16
	workerMaximumAge = 75
)

// DefaultEmployeeContributionRate applies when an enrolled employee has no percentage set
var DefaultEmployeeContributionRate = decimal.RequireFromString("0.05")

// PensionCalculator computes auto-enrolment contributions on qualifying earnings
type PensionCalculator struct {
	Logger Logger
	// Now is the clock used for eligibility checks when no as-of date is supplied
	Now func() time.Time
}

// NewPensionCalculator creates a new pension calculator using the wall clock
func NewPensionCalculator() *PensionCalculator {
	return &PensionCalculator{Logger: NopLogger{}, Now: time.Now}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (pc *PensionCalculator) SetLogger(l Logger) {
	pc.Logger = loggerOrNop(l)
}

// QualifyingEarningsBand returns the per-period lower and upper limits, rounded to pence
func QualifyingEarningsBand(periodType domain.PeriodType, cfg *domain.TaxYearConfiguration) (lower, upper decimal.Decimal) {
	periods := periodType.PeriodsInYear()
	lower = roundPence(prorate(cfg.AutoEnrolment.LowerLimit, 1, periods))
	upper = roundPence(prorate(cfg.AutoEnrolment.UpperLimit, 1, periods))
	return lower, upper
}

// QualifyingEarnings clamps pay minus the lower limit into the band width
func QualifyingEarnings(pay, lower, upper decimal.Decimal) decimal.Decimal {
	width := nonNegative(upper.Sub(lower))
	return decimal.Min(nonNegative(pay.Sub(lower)), width)
}

// CalculatePension computes employee and employer contributions for one period.
// Only enrolled employees contribute.
func (pc *PensionCalculator) CalculatePension(
	employee domain.Employee,
	grossPay decimal.Decimal,
	periodType domain.PeriodType,
	cfg *domain.TaxYearConfiguration,
	ytd domain.EmployeeYTDData,
) domain.PensionCalculationResult {
	pay := nonNegative(grossPay)
	lower, upper := QualifyingEarningsBand(periodType, cfg)

	result := domain.PensionCalculationResult{
		PensionablePay:         pay,
		LowerLimit:             lower,
		UpperLimit:             upper,
		QualifyingEarnings:     decimal.Zero,
		EmployeeRate:           decimal.Zero,
		EmployerRate:           decimal.Zero,
		EmployeeContribution:   decimal.Zero,
		EmployerContribution:   decimal.Zero,
		PensionablePayYTD:      ytd.PensionablePay.Add(pay),
		EmployeeContributedYTD: ytd.EmployeePensionPaid,
		EmployerContributedYTD: ytd.EmployerPensionPaid,
	}

	if employee.AutoEnrolmentStatus != domain.AutoEnrolmentEnrolled {
		status := employee.AutoEnrolmentStatus
		if status == "" {
			status = "not set"
		}
		result.Calculation = fmt.Sprintf("Pension: not enrolled (status %s), no contributions", status)
		return result
	}
	result.IsEnrolled = true

	employeeRate := DefaultEmployeeContributionRate
	if employee.PensionContributionPercentage != nil {
		employeeRate = nonNegative(employee.PensionContributionPercentage.Div(hundred))
	}
	employerRate := cfg.AutoEnrolment.MinimumEmployerContribution
	if employee.EmployerPensionContributionPercentage != nil {
		employerRate = decimal.Max(employerRate, employee.EmployerPensionContributionPercentage.Div(hundred))
	}

	qualifying := QualifyingEarnings(pay, lower, upper)
	result.QualifyingEarnings = qualifying
	result.EmployeeRate = employeeRate
	result.EmployerRate = employerRate
	result.EmployeeContribution = roundPence(qualifying.Mul(employeeRate))
	result.EmployerContribution = roundPence(qualifying.Mul(employerRate))
	result.EmployeeContributedYTD = ytd.EmployeePensionPaid.Add(result.EmployeeContribution)
	result.EmployerContributedYTD = ytd.EmployerPensionPaid.Add(result.EmployerContribution)

	result.Calculation = fmt.Sprintf("Pension: qualifying earnings %s (band %s to %s); employee %s = %s, employer %s = %s",
		money(qualifying), money(lower), money(upper),
		percent(employeeRate), money(result.EmployeeContribution),
		percent(employerRate), money(result.EmployerContribution))
	pc.Logger.Debugf("employee %s: pension employee %s employer %s", employee.ID, result.EmployeeContribution, result.EmployerContribution)
	return result
}

// CheckEligibility classifies a worker for auto-enrolment from one period's pay, annualised,
// with age taken at the calculator's current time
func (pc *PensionCalculator) CheckEligibility(employee domain.Employee, grossPay decimal.Decimal, periodType domain.PeriodType, cfg *domain.TaxYearConfiguration) domain.AutoEnrolmentEligibility {
	now := time.Now
	if pc.Now != nil {
		now = pc.Now
	}
	return CheckAutoEnrolmentEligibility(employee, grossPay, periodType, cfg, now())
}

// CheckAutoEnrolmentEligibility classifies a worker for auto-enrolment with age taken at asOf.
// Eligible jobholders are aged 22 to State Pension age and earn at least the earnings trigger.
func CheckAutoEnrolmentEligibility(employee domain.Employee, grossPay decimal.Decimal, periodType domain.PeriodType, cfg *domain.TaxYearConfiguration, asOf time.Time) domain.AutoEnrolmentEligibility {
	age := dateutil.Age(employee.DateOfBirth, asOf)
	annualised := nonNegative(grossPay).Mul(decimal.NewFromInt(int64(periodType.PeriodsInYear())))
	ae := cfg.AutoEnrolment

	result := domain.AutoEnrolmentEligibility{Age: age, AnnualisedEarnings: annualised}

	switch {
	case age >= AutoEnrolmentMinimumAge && age < StatePensionAge && annualised.GreaterThanOrEqual(ae.EarningsTrigger):
		result.Eligible = true
		result.Category = domain.EligibleJobholder
		result.Reason = fmt.Sprintf("aged %d with annualised earnings %s at or above the trigger %s", age, money(annualised), money(ae.EarningsTrigger))
	case age < workerMinimumAge || age >= workerMaximumAge:
		result.Reason = fmt.Sprintf("aged %d, outside the auto-enrolment worker age range", age)
	case annualised.GreaterThan(ae.LowerLimit):
		result.Category = domain.NonEligibleJobholder
		result.Reason = fmt.Sprintf("aged %d with annualised earnings %s; may opt in with employer contributions", age, money(annualised))
	default:
		result.Category = domain.EntitledWorker
		result.Reason = fmt.Sprintf("aged %d with annualised earnings %s at or below the lower limit %s; may join without employer contributions", age, money(annualised), money(ae.LowerLimit))
	}
	return result
}
