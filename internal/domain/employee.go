package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the pay frequency of a pay run
type PeriodType string

const (
	PeriodWeekly      PeriodType = "weekly"
	PeriodFortnightly PeriodType = "fortnightly"
	PeriodFourWeekly  PeriodType = "four_weekly"
	PeriodMonthly     PeriodType = "monthly"
)

// PeriodsInYear returns the number of pay periods in a tax year for the pay frequency.
// Unknown frequencies are treated as monthly.
func (p PeriodType) PeriodsInYear() int {
	switch p {
	case PeriodWeekly:
		return 52
	case PeriodFortnightly:
		return 26
	case PeriodFourWeekly:
		return 13
	default:
		return 12
	}
}

// IsValid reports whether p is one of the supported pay frequencies
func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodFortnightly, PeriodFourWeekly, PeriodMonthly:
		return true
	}
	return false
}

// TaxCodeBasis selects cumulative or non-cumulative (week1/month1) PAYE
type TaxCodeBasis string

const (
	BasisCumulative  TaxCodeBasis = "cumulative"
	BasisWeek1Month1 TaxCodeBasis = "week1month1"
)

// NICategory is an HMRC National Insurance category letter
type NICategory string

const (
	NICategoryA NICategory = "A"
	NICategoryB NICategory = "B"
	NICategoryC NICategory = "C"
	NICategoryF NICategory = "F"
	NICategoryH NICategory = "H"
	NICategoryI NICategory = "I"
	NICategoryJ NICategory = "J"
	NICategoryL NICategory = "L"
	NICategoryM NICategory = "M"
	NICategoryS NICategory = "S"
	NICategoryV NICategory = "V"
	NICategoryZ NICategory = "Z"
)

// KnownNICategories lists every category the engine has a rate entry for
var KnownNICategories = []NICategory{
	NICategoryA, NICategoryB, NICategoryC, NICategoryF, NICategoryH, NICategoryI,
	NICategoryJ, NICategoryL, NICategoryM, NICategoryS, NICategoryV, NICategoryZ,
}

// Normalize upper-cases and trims the category letter
func (c NICategory) Normalize() NICategory {
	return NICategory(strings.ToUpper(strings.TrimSpace(string(c))))
}

// IsKnown reports whether the (normalized) category is recognised
func (c NICategory) IsKnown() bool {
	n := c.Normalize()
	for _, k := range KnownNICategories {
		if k == n {
			return true
		}
	}
	return false
}

// DirectorNIMethod selects how a director's NI is computed
type DirectorNIMethod string

const (
	// DirectorNIAnnual computes NI on cumulative year-to-date earnings against annual thresholds
	DirectorNIAnnual DirectorNIMethod = "annual"
	// DirectorNIAlternative uses the per-period method and trues up on the final period of the year
	DirectorNIAlternative DirectorNIMethod = "alternative"
)

// AutoEnrolmentStatus is the workplace pension auto-enrolment state of an employee
type AutoEnrolmentStatus string

const (
	AutoEnrolmentEnrolled    AutoEnrolmentStatus = "enrolled"
	AutoEnrolmentNotEligible AutoEnrolmentStatus = "not_eligible"
	AutoEnrolmentOptedOut    AutoEnrolmentStatus = "opted_out"
	AutoEnrolmentPending     AutoEnrolmentStatus = "pending"
	AutoEnrolmentPostponed   AutoEnrolmentStatus = "postponed"
)

// StudentLoanPlans flags the loan plans an employee repays. Plans are independent and may combine.
type StudentLoanPlans struct {
	Plan1        bool `yaml:"plan1" json:"plan1"`
	Plan2        bool `yaml:"plan2" json:"plan2"`
	Plan4        bool `yaml:"plan4" json:"plan4"`
	Plan5        bool `yaml:"plan5,omitempty" json:"plan5,omitempty"`
	Postgraduate bool `yaml:"postgraduate" json:"postgraduate"`
}

// Any reports whether at least one plan is active
func (s StudentLoanPlans) Any() bool {
	return s.Plan1 || s.Plan2 || s.Plan4 || s.Plan5 || s.Postgraduate
}

// Employee is the read-only employee record the payroll core consumes.
// It is owned by the HR data layer.
type Employee struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`

	TaxCode      string       `yaml:"tax_code" json:"tax_code"`
	TaxCodeBasis TaxCodeBasis `yaml:"tax_code_basis" json:"tax_code_basis"`

	NICategory                  NICategory       `yaml:"ni_category" json:"ni_category"`
	IsDirector                  bool             `yaml:"is_director" json:"is_director"`
	DirectorNICalculationMethod DirectorNIMethod `yaml:"director_ni_calculation_method,omitempty" json:"director_ni_calculation_method,omitempty"`

	DateOfBirth time.Time `yaml:"date_of_birth" json:"date_of_birth"`

	AutoEnrolmentStatus                   AutoEnrolmentStatus `yaml:"auto_enrolment_status" json:"auto_enrolment_status"`
	PensionContributionPercentage         *decimal.Decimal    `yaml:"pension_contribution_percentage,omitempty" json:"pension_contribution_percentage,omitempty"`
	EmployerPensionContributionPercentage *decimal.Decimal    `yaml:"employer_pension_contribution_percentage,omitempty" json:"employer_pension_contribution_percentage,omitempty"`

	StudentLoans StudentLoanPlans `yaml:"student_loans" json:"student_loans"`
}
