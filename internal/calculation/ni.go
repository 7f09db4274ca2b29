package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DefaultReducedEmployeeRate is the category B employee rate used when the configuration omits one
var DefaultReducedEmployeeRate = decimal.RequireFromString("0.0135")

type niRates struct {
	employee      decimal.Decimal
	employeeAbove decimal.Decimal
	employer      decimal.Decimal
}

// NICalculator computes employee and employer National Insurance for one pay period
type NICalculator struct {
	Logger Logger
	// Now is the clock used for age checks when no as-of date is supplied
	Now func() time.Time
}

// NewNICalculator creates a new NI calculator using the wall clock
func NewNICalculator() *NICalculator {
	return &NICalculator{Logger: NopLogger{}, Now: time.Now}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (nc *NICalculator) SetLogger(l Logger) {
	nc.Logger = loggerOrNop(l)
}

// CalculateNI computes NI with ages taken at the calculator's current time
func (nc *NICalculator) CalculateNI(
	employee domain.Employee,
	grossPay decimal.Decimal,
	periodNumber int,
	periodType domain.PeriodType,
	cfg *domain.TaxYearConfiguration,
	ytd domain.EmployeeYTDData,
) domain.NICalculationResult {
	now := time.Now
	if nc.Now != nil {
		now = nc.Now
	}
	return nc.CalculateNIAsOf(employee, grossPay, periodNumber, periodType, cfg, ytd, now())
}

// CalculateNIAsOf computes NI with ages taken at asOf. Unknown categories use category A rates
// with a warning.
func (nc *NICalculator) CalculateNIAsOf(
	employee domain.Employee,
	grossPay decimal.Decimal,
	periodNumber int,
	periodType domain.PeriodType,
	cfg *domain.TaxYearConfiguration,
	ytd domain.EmployeeYTDData,
	asOf time.Time,
) domain.NICalculationResult {
	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		nc.Logger.Warnf("employee %s: %s", employee.ID, msg)
	}

	category := employee.NICategory.Normalize()
	if !category.IsKnown() {
		warn("unrecognised NI category %q, using category A rates", employee.NICategory)
		category = domain.NICategoryA
	}

	periods, n := normalizePeriod(periodType, periodNumber, warn)
	pay := nonNegative(grossPay)

	result := domain.NICalculationResult{
		Category:      category,
		NIablePay:     pay,
		EmployeeNI:    decimal.Zero,
		EmployerNI:    decimal.Zero,
		NIablePayYTD:  ytd.NIablePay.Add(pay),
		EmployeeNIYTD: ytd.EmployeeNIPaid,
		EmployerNIYTD: ytd.EmployerNIPaid,
	}

	if category == domain.NICategoryC {
		result.Method = domain.NIMethodExempt
		result.EmployeeRate = decimal.Zero
		result.EmployeeAboveUELRate = decimal.Zero
		result.EmployerRate = decimal.Zero
		result.Calculation = warningLines(warnings) + fmt.Sprintf("NI category C: over State Pension age, no NI due on %s", money(pay))
		result.Warnings = warnings
		return result
	}

	ni := cfg.NationalInsurance
	rates := categoryRates(category, ni)
	result.EmployeeRate = rates.employee
	result.EmployeeAboveUELRate = rates.employeeAbove
	result.EmployerRate = rates.employer

	method := domain.NIMethodStandard
	if employee.IsDirector {
		method = domain.NIMethodDirectorAnnual
		switch employee.DirectorNICalculationMethod {
		case domain.DirectorNIAnnual, "":
		case domain.DirectorNIAlternative:
			method = domain.NIMethodDirectorAlternative
		default:
			warn("unknown director NI method %q, using annual", employee.DirectorNICalculationMethod)
		}
	}
	result.Method = method

	annual := method == domain.NIMethodDirectorAnnual ||
		(method == domain.NIMethodDirectorAlternative && n == periods)

	var thresholds domain.NIThresholdSet
	var relief *domain.NIThresholds
	if !employee.DateOfBirth.IsZero() {
		relief = reliefThresholds(category, dateutil.Age(employee.DateOfBirth, asOf), ni)
	}

	if annual {
		thresholds = domain.NIThresholdSet{
			PrimaryThreshold:   ni.PrimaryThreshold.Annual,
			UpperEarningsLimit: ni.UpperEarningsLimit.Annual,
			SecondaryThreshold: ni.SecondaryThreshold.Annual,
		}
		if relief != nil {
			r := relief.Annual
			thresholds.ReliefThreshold = &r
		}
		earningsToDate := ytd.NIablePay.Add(pay)
		employeeDue := roundPence(employeeContribution(earningsToDate, thresholds, rates))
		employerDue := roundPence(employerContribution(earningsToDate, thresholds, rates))
		result.EmployeeNI = nonNegative(employeeDue.Sub(ytd.EmployeeNIPaid))
		result.EmployerNI = nonNegative(employerDue.Sub(ytd.EmployerNIPaid))
		result.Calculation = fmt.Sprintf("NI category %s (director, %s method): earnings to date %s against annual PT %s, UEL %s, ST %s; employee due to date %s less paid %s = %s; employer due to date %s less paid %s = %s",
			category, method, money(earningsToDate),
			money(thresholds.PrimaryThreshold), money(thresholds.UpperEarningsLimit), money(thresholds.SecondaryThreshold),
			money(employeeDue), money(ytd.EmployeeNIPaid), money(result.EmployeeNI),
			money(employerDue), money(ytd.EmployerNIPaid), money(result.EmployerNI))
	} else {
		thresholds = domain.NIThresholdSet{
			PrimaryThreshold:   ni.PrimaryThreshold.ForPeriod(periodType),
			UpperEarningsLimit: ni.UpperEarningsLimit.ForPeriod(periodType),
			SecondaryThreshold: ni.SecondaryThreshold.ForPeriod(periodType),
		}
		if relief != nil {
			r := relief.ForPeriod(periodType)
			thresholds.ReliefThreshold = &r
		}
		result.EmployeeNI = roundPence(employeeContribution(pay, thresholds, rates))
		result.EmployerNI = roundPence(employerContribution(pay, thresholds, rates))
		result.Calculation = fmt.Sprintf("NI category %s (%s, %s): pay %s, PT %s, UEL %s at %s (%s above UEL) = employee %s; ST %s at %s = employer %s",
			category, method, periodLabel(periodType), money(pay),
			money(thresholds.PrimaryThreshold), money(thresholds.UpperEarningsLimit),
			percent(rates.employee), percent(rates.employeeAbove), money(result.EmployeeNI),
			money(employerThreshold(thresholds)), percent(rates.employer), money(result.EmployerNI))
	}

	if thresholds.ReliefThreshold != nil {
		result.Calculation += fmt.Sprintf("; employer relief up to %s", money(*thresholds.ReliefThreshold))
	}

	result.Thresholds = thresholds
	result.EmployeeNIYTD = ytd.EmployeeNIPaid.Add(result.EmployeeNI)
	result.EmployerNIYTD = ytd.EmployerNIPaid.Add(result.EmployerNI)
	result.Calculation = warningLines(warnings) + result.Calculation
	result.Warnings = warnings
	return result
}

// categoryRates returns the rates for a known, non-exempt category
func categoryRates(category domain.NICategory, ni domain.NIConfig) niRates {
	rates := niRates{
		employee:      ni.EmployeePrimaryRate,
		employeeAbove: ni.EmployeeAboveUELRate,
		employer:      ni.EmployerRate,
	}
	if category == domain.NICategoryB {
		reduced := ni.ReducedEmployeeRate
		if reduced.IsZero() {
			reduced = DefaultReducedEmployeeRate
		}
		rates.employee = reduced
		rates.employeeAbove = reduced
	}
	return rates
}

// reliefThresholds returns the employer relief threshold for under-age categories, or nil
func reliefThresholds(category domain.NICategory, age int, ni domain.NIConfig) *domain.NIThresholds {
	switch {
	case category == domain.NICategoryH && age < 25:
		t := ni.ApprenticeUpperSecondaryThreshold
		return &t
	case (category == domain.NICategoryM || category == domain.NICategoryZ) && age < 21:
		t := ni.UpperEarningsLimit
		return &t
	}
	return nil
}

func employeeContribution(pay decimal.Decimal, t domain.NIThresholdSet, rates niRates) decimal.Decimal {
	main := nonNegative(decimal.Min(pay, t.UpperEarningsLimit).Sub(t.PrimaryThreshold))
	above := nonNegative(pay.Sub(t.UpperEarningsLimit))
	return main.Mul(rates.employee).Add(above.Mul(rates.employeeAbove))
}

func employerThreshold(t domain.NIThresholdSet) decimal.Decimal {
	if t.ReliefThreshold != nil {
		return decimal.Max(t.SecondaryThreshold, *t.ReliefThreshold)
	}
	return t.SecondaryThreshold
}

func employerContribution(pay decimal.Decimal, t domain.NIThresholdSet, rates niRates) decimal.Decimal {
	return nonNegative(pay.Sub(employerThreshold(t))).Mul(rates.employer)
}

func periodLabel(p domain.PeriodType) string {
	if !p.IsValid() {
		return string(domain.PeriodMonthly)
	}
	return string(p)
}
