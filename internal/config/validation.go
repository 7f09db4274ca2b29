package config

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ValidationError is a single invalid field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every invalid field found in one pass
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap returns the errors keyed by field
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

type validator struct {
	errs ValidationErrors
}

func (v *validator) add(field, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) rate(field string, d decimal.Decimal) {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		v.add(field, "must be between 0 and 1, got %s", d)
	}
}

func (v *validator) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.add(field, "must not be negative, got %s", d)
	}
}

func (v *validator) ordered(lowField string, low decimal.Decimal, highField string, high decimal.Decimal) {
	if high.LessThan(low) {
		v.add(highField, "must be at least %s (%s), got %s", lowField, low, high)
	}
}

func (v *validator) result() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// ValidateTaxYear checks rates are fractions and every threshold ordering holds.
// It returns ValidationErrors listing every problem found.
func ValidateTaxYear(cfg *domain.TaxYearConfiguration) error {
	if cfg == nil {
		return ValidationErrors{{Field: "tax_year", Message: "configuration is required"}}
	}
	v := &validator{}

	if strings.TrimSpace(cfg.TaxYear) == "" {
		v.add("tax_year", "is required")
	} else if _, err := dateutil.ParseTaxYearLabel(cfg.TaxYear); err != nil {
		v.add("tax_year", "%v", err)
	}

	it := cfg.IncomeTax
	v.nonNegative("income_tax.personal_allowance", it.PersonalAllowance)
	v.rate("income_tax.basic_rate", it.BasicRate)
	v.rate("income_tax.higher_rate", it.HigherRate)
	v.rate("income_tax.additional_rate", it.AdditionalRate)
	v.rate("income_tax.k_code_overriding_limit", it.KCodeOverridingLimit)
	v.nonNegative("income_tax.basic_rate_limit", it.BasicRateLimit)
	v.ordered("income_tax.basic_rate_limit", it.BasicRateLimit, "income_tax.higher_rate_limit", it.HigherRateLimit)

	s := cfg.Scottish
	v.rate("scottish.starter_rate", s.StarterRate)
	v.rate("scottish.basic_rate", s.BasicRate)
	v.rate("scottish.intermediate_rate", s.IntermediateRate)
	v.rate("scottish.higher_rate", s.HigherRate)
	v.rate("scottish.top_rate", s.TopRate)
	v.nonNegative("scottish.starter_limit", s.StarterLimit)
	v.ordered("scottish.starter_limit", s.StarterLimit, "scottish.basic_limit", s.BasicLimit)
	v.ordered("scottish.basic_limit", s.BasicLimit, "scottish.intermediate_limit", s.IntermediateLimit)
	v.ordered("scottish.intermediate_limit", s.IntermediateLimit, "scottish.higher_limit", s.HigherLimit)
	switch {
	case s.AdvancedRate != nil && s.AdvancedLimit != nil:
		v.rate("scottish.advanced_rate", *s.AdvancedRate)
		v.ordered("scottish.higher_limit", s.HigherLimit, "scottish.advanced_limit", *s.AdvancedLimit)
	case s.AdvancedRate != nil || s.AdvancedLimit != nil:
		v.add("scottish.advanced_rate", "advanced_rate and advanced_limit must be set together")
	}

	w := cfg.Welsh
	v.rate("welsh.basic_rate", w.BasicRate)
	v.rate("welsh.higher_rate", w.HigherRate)
	v.rate("welsh.additional_rate", w.AdditionalRate)
	v.nonNegative("welsh.basic_limit", w.BasicLimit)
	v.ordered("welsh.basic_limit", w.BasicLimit, "welsh.higher_limit", w.HigherLimit)

	ni := cfg.NationalInsurance
	for _, p := range []struct {
		name string
		get  func(domain.NIThresholds) decimal.Decimal
	}{
		{"weekly", func(t domain.NIThresholds) decimal.Decimal { return t.Weekly }},
		{"monthly", func(t domain.NIThresholds) decimal.Decimal { return t.Monthly }},
		{"annual", func(t domain.NIThresholds) decimal.Decimal { return t.Annual }},
	} {
		v.nonNegative("national_insurance.primary_threshold."+p.name, p.get(ni.PrimaryThreshold))
		v.nonNegative("national_insurance.secondary_threshold."+p.name, p.get(ni.SecondaryThreshold))
		v.nonNegative("national_insurance.apprentice_upper_secondary_threshold."+p.name, p.get(ni.ApprenticeUpperSecondaryThreshold))
		v.ordered("national_insurance.primary_threshold."+p.name, p.get(ni.PrimaryThreshold),
			"national_insurance.upper_earnings_limit."+p.name, p.get(ni.UpperEarningsLimit))
	}
	v.rate("national_insurance.employee_primary_rate", ni.EmployeePrimaryRate)
	v.rate("national_insurance.employee_above_uel_rate", ni.EmployeeAboveUELRate)
	v.rate("national_insurance.employer_rate", ni.EmployerRate)
	v.rate("national_insurance.reduced_employee_rate", ni.ReducedEmployeeRate)

	for _, plan := range domain.AllStudentLoanPlans {
		p := cfg.StudentLoans.ForPlan(plan)
		v.nonNegative("student_loans."+string(plan)+".threshold", p.Threshold)
		v.rate("student_loans."+string(plan)+".rate", p.Rate)
	}

	ae := cfg.AutoEnrolment
	v.nonNegative("auto_enrolment.lower_limit", ae.LowerLimit)
	v.ordered("auto_enrolment.lower_limit", ae.LowerLimit, "auto_enrolment.upper_limit", ae.UpperLimit)
	v.nonNegative("auto_enrolment.earnings_trigger", ae.EarningsTrigger)
	v.rate("auto_enrolment.minimum_employer_contribution", ae.MinimumEmployerContribution)

	return v.result()
}

// ValidatePayRun checks the structure of a pay run: frequency, period number and employee identity.
// Pay amounts are not checked; the calculators clamp out-of-range amounts.
func ValidatePayRun(run *domain.PayRun) error {
	if run == nil {
		return ValidationErrors{{Field: "pay_run", Message: "pay run is required"}}
	}
	v := &validator{}

	if !run.PeriodType.IsValid() {
		v.add("period_type", "must be one of weekly, fortnightly, four_weekly, monthly, got %q", run.PeriodType)
	} else if run.PeriodNumber < 1 || run.PeriodNumber > run.PeriodType.PeriodsInYear() {
		v.add("period_number", "must be between 1 and %d, got %d", run.PeriodType.PeriodsInYear(), run.PeriodNumber)
	}
	if run.TaxYear != "" {
		start, err := dateutil.ParseTaxYearLabel(run.TaxYear)
		if err != nil {
			v.add("tax_year", "%v", err)
		} else if run.PaymentDate != nil && dateutil.TaxYearLabelFor(*run.PaymentDate) != dateutil.TaxYearLabel(start) {
			v.add("payment_date", "%s is outside tax year %s (%s to %s)",
				run.PaymentDate.Format("2 Jan 2006"), dateutil.TaxYearLabel(start),
				dateutil.TaxYearStart(start).Format("2 Jan 2006"), dateutil.TaxYearEnd(start).Format("2 Jan 2006"))
		}
	}
	if len(run.Employees) == 0 {
		v.add("employees", "at least one employee is required")
	}

	seen := make(map[string]int)
	for i, e := range run.Employees {
		field := fmt.Sprintf("employees[%d]", i)
		id := strings.TrimSpace(e.Employee.ID)
		if id == "" {
			v.add(field+".employee.id", "is required")
			continue
		}
		if prev, ok := seen[id]; ok {
			v.add(field+".employee.id", "duplicate id %q (also employees[%d])", id, prev)
		}
		seen[id] = i
		if e.Employee.TaxCodeBasis != "" &&
			e.Employee.TaxCodeBasis != domain.BasisCumulative && e.Employee.TaxCodeBasis != domain.BasisWeek1Month1 {
			v.add(field+".employee.tax_code_basis", "must be cumulative or week1month1, got %q", e.Employee.TaxCodeBasis)
		}
	}

	return v.result()
}
