package domain

import "github.com/shopspring/decimal"

// TaxYearConfiguration carries every statutory rate and threshold for one UK tax year (6 April to 5 April).
// Calculators treat it as immutable; one instance may be shared across concurrent calculations.
type TaxYearConfiguration struct {
	TaxYear string `yaml:"tax_year" json:"tax_year"`

	IncomeTax         IncomeTaxConfig     `yaml:"income_tax" json:"income_tax"`
	Scottish          ScottishTaxConfig   `yaml:"scottish" json:"scottish"`
	Welsh             WelshTaxConfig      `yaml:"welsh" json:"welsh"`
	NationalInsurance NIConfig            `yaml:"national_insurance" json:"national_insurance"`
	StudentLoans      StudentLoanConfig   `yaml:"student_loans" json:"student_loans"`
	AutoEnrolment     AutoEnrolmentConfig `yaml:"auto_enrolment" json:"auto_enrolment"`
}

// IncomeTaxConfig holds the England and Northern Ireland rates. Limits are widths of taxable
// income above the personal allowance: basic runs to BasicRateLimit, higher to HigherRateLimit.
type IncomeTaxConfig struct {
	PersonalAllowance decimal.Decimal `yaml:"personal_allowance" json:"personal_allowance"`
	BasicRate         decimal.Decimal `yaml:"basic_rate" json:"basic_rate"`
	HigherRate        decimal.Decimal `yaml:"higher_rate" json:"higher_rate"`
	AdditionalRate    decimal.Decimal `yaml:"additional_rate" json:"additional_rate"`
	BasicRateLimit    decimal.Decimal `yaml:"basic_rate_limit" json:"basic_rate_limit"`
	HigherRateLimit   decimal.Decimal `yaml:"higher_rate_limit" json:"higher_rate_limit"`

	// KCodeOverridingLimit caps K-code tax at this fraction of the period's pay. Zero disables the cap.
	KCodeOverridingLimit decimal.Decimal `yaml:"k_code_overriding_limit" json:"k_code_overriding_limit"`
}

// ScottishTaxConfig holds the Scottish rates. Limits are cumulative upper bounds of taxable income.
// The advanced band is optional and sits between higher and top when AdvancedRate is set.
type ScottishTaxConfig struct {
	StarterRate      decimal.Decimal  `yaml:"starter_rate" json:"starter_rate"`
	BasicRate        decimal.Decimal  `yaml:"basic_rate" json:"basic_rate"`
	IntermediateRate decimal.Decimal  `yaml:"intermediate_rate" json:"intermediate_rate"`
	HigherRate       decimal.Decimal  `yaml:"higher_rate" json:"higher_rate"`
	AdvancedRate     *decimal.Decimal `yaml:"advanced_rate,omitempty" json:"advanced_rate,omitempty"`
	TopRate          decimal.Decimal  `yaml:"top_rate" json:"top_rate"`

	StarterLimit      decimal.Decimal  `yaml:"starter_limit" json:"starter_limit"`
	BasicLimit        decimal.Decimal  `yaml:"basic_limit" json:"basic_limit"`
	IntermediateLimit decimal.Decimal  `yaml:"intermediate_limit" json:"intermediate_limit"`
	HigherLimit       decimal.Decimal  `yaml:"higher_limit" json:"higher_limit"`
	AdvancedLimit     *decimal.Decimal `yaml:"advanced_limit,omitempty" json:"advanced_limit,omitempty"`
}

// HasAdvancedBand reports whether the optional advanced band is configured
func (s ScottishTaxConfig) HasAdvancedBand() bool {
	return s.AdvancedRate != nil && s.AdvancedLimit != nil
}

// WelshTaxConfig holds the Welsh rates and their cumulative limits
type WelshTaxConfig struct {
	BasicRate      decimal.Decimal `yaml:"basic_rate" json:"basic_rate"`
	HigherRate     decimal.Decimal `yaml:"higher_rate" json:"higher_rate"`
	AdditionalRate decimal.Decimal `yaml:"additional_rate" json:"additional_rate"`
	BasicLimit     decimal.Decimal `yaml:"basic_limit" json:"basic_limit"`
	HigherLimit    decimal.Decimal `yaml:"higher_limit" json:"higher_limit"`
}

// NIThresholds is one NI boundary expressed per week, per month and per year.
// Fortnightly and four-weekly values are derived from the weekly figure.
type NIThresholds struct {
	Weekly  decimal.Decimal `yaml:"weekly" json:"weekly"`
	Monthly decimal.Decimal `yaml:"monthly" json:"monthly"`
	Annual  decimal.Decimal `yaml:"annual" json:"annual"`
}

// ForPeriod returns the threshold for one pay period of the given frequency
func (t NIThresholds) ForPeriod(p PeriodType) decimal.Decimal {
	switch p {
	case PeriodWeekly:
		return t.Weekly
	case PeriodFortnightly:
		return t.Weekly.Mul(decimal.NewFromInt(2))
	case PeriodFourWeekly:
		return t.Weekly.Mul(decimal.NewFromInt(4))
	default:
		return t.Monthly
	}
}

// NIConfig holds the National Insurance thresholds and rates
type NIConfig struct {
	PrimaryThreshold   NIThresholds `yaml:"primary_threshold" json:"primary_threshold"`
	UpperEarningsLimit NIThresholds `yaml:"upper_earnings_limit" json:"upper_earnings_limit"`
	SecondaryThreshold NIThresholds `yaml:"secondary_threshold" json:"secondary_threshold"`
	// ApprenticeUpperSecondaryThreshold applies to category H employees under 25
	ApprenticeUpperSecondaryThreshold NIThresholds `yaml:"apprentice_upper_secondary_threshold" json:"apprentice_upper_secondary_threshold"`

	EmployeePrimaryRate  decimal.Decimal `yaml:"employee_primary_rate" json:"employee_primary_rate"`
	EmployeeAboveUELRate decimal.Decimal `yaml:"employee_above_uel_rate" json:"employee_above_uel_rate"`
	EmployerRate         decimal.Decimal `yaml:"employer_rate" json:"employer_rate"`
	// ReducedEmployeeRate is the category B rate; zero means the statutory 1.35%
	ReducedEmployeeRate decimal.Decimal `yaml:"reduced_employee_rate,omitempty" json:"reduced_employee_rate,omitempty"`
}

// StudentLoanPlan identifies a student or postgraduate loan plan
type StudentLoanPlan string

const (
	StudentLoanPlan1        StudentLoanPlan = "plan1"
	StudentLoanPlan2        StudentLoanPlan = "plan2"
	StudentLoanPlan4        StudentLoanPlan = "plan4"
	StudentLoanPlan5        StudentLoanPlan = "plan5"
	StudentLoanPostgraduate StudentLoanPlan = "postgraduate"
)

// AllStudentLoanPlans is the order plans are evaluated and reported in
var AllStudentLoanPlans = []StudentLoanPlan{
	StudentLoanPlan1, StudentLoanPlan2, StudentLoanPlan4, StudentLoanPlan5, StudentLoanPostgraduate,
}

// LoanPlanConfig is the annual repayment threshold and rate for one plan
type LoanPlanConfig struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// StudentLoanConfig holds every plan's threshold and rate
type StudentLoanConfig struct {
	Plan1        LoanPlanConfig `yaml:"plan1" json:"plan1"`
	Plan2        LoanPlanConfig `yaml:"plan2" json:"plan2"`
	Plan4        LoanPlanConfig `yaml:"plan4" json:"plan4"`
	Plan5        LoanPlanConfig `yaml:"plan5" json:"plan5"`
	Postgraduate LoanPlanConfig `yaml:"postgraduate" json:"postgraduate"`
}

// ForPlan returns the configuration of one plan
func (s StudentLoanConfig) ForPlan(plan StudentLoanPlan) LoanPlanConfig {
	switch plan {
	case StudentLoanPlan1:
		return s.Plan1
	case StudentLoanPlan2:
		return s.Plan2
	case StudentLoanPlan4:
		return s.Plan4
	case StudentLoanPlan5:
		return s.Plan5
	case StudentLoanPostgraduate:
		return s.Postgraduate
	}
	return LoanPlanConfig{}
}

// AutoEnrolmentConfig holds the annual qualifying-earnings band, the earnings trigger and the
// minimum employer contribution rate (a fraction, e.g. 0.03)
type AutoEnrolmentConfig struct {
	LowerLimit                  decimal.Decimal `yaml:"lower_limit" json:"lower_limit"`
	UpperLimit                  decimal.Decimal `yaml:"upper_limit" json:"upper_limit"`
	EarningsTrigger             decimal.Decimal `yaml:"earnings_trigger" json:"earnings_trigger"`
	MinimumEmployerContribution decimal.Decimal `yaml:"minimum_employer_contribution" json:"minimum_employer_contribution"`
}
