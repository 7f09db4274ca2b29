package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentLoanYTD is the amount repaid so far this tax year, per plan
type StudentLoanYTD struct {
	Plan1        decimal.Decimal `yaml:"plan1" json:"plan1"`
	Plan2        decimal.Decimal `yaml:"plan2" json:"plan2"`
	Plan4        decimal.Decimal `yaml:"plan4" json:"plan4"`
	Plan5        decimal.Decimal `yaml:"plan5" json:"plan5"`
	Postgraduate decimal.Decimal `yaml:"postgraduate" json:"postgraduate"`
}

// ForPlan returns the year-to-date repayment of one plan
func (s StudentLoanYTD) ForPlan(plan StudentLoanPlan) decimal.Decimal {
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
	return decimal.Zero
}

// WithPlan returns a copy with one plan's figure replaced
func (s StudentLoanYTD) WithPlan(plan StudentLoanPlan, amount decimal.Decimal) StudentLoanYTD {
	switch plan {
	case StudentLoanPlan1:
		s.Plan1 = amount
	case StudentLoanPlan2:
		s.Plan2 = amount
	case StudentLoanPlan4:
		s.Plan4 = amount
	case StudentLoanPlan5:
		s.Plan5 = amount
	case StudentLoanPostgraduate:
		s.Postgraduate = amount
	}
	return s
}

// Total sums every plan
func (s StudentLoanYTD) Total() decimal.Decimal {
	return s.Plan1.Add(s.Plan2).Add(s.Plan4).Add(s.Plan5).Add(s.Postgraduate)
}

// EmployeeYTDData is the cumulative snapshot for one employee in one tax year, taken before the
// period being calculated. Every field only grows within a tax year.
type EmployeeYTDData struct {
	TaxYear string `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`

	GrossPay       decimal.Decimal `yaml:"gross_pay" json:"gross_pay"`
	TaxablePay     decimal.Decimal `yaml:"taxable_pay" json:"taxable_pay"`
	NIablePay      decimal.Decimal `yaml:"niable_pay" json:"niable_pay"`
	PensionablePay decimal.Decimal `yaml:"pensionable_pay" json:"pensionable_pay"`

	TaxPaid             decimal.Decimal `yaml:"tax_paid" json:"tax_paid"`
	EmployeeNIPaid      decimal.Decimal `yaml:"employee_ni_paid" json:"employee_ni_paid"`
	EmployerNIPaid      decimal.Decimal `yaml:"employer_ni_paid" json:"employer_ni_paid"`
	EmployeePensionPaid decimal.Decimal `yaml:"employee_pension_paid" json:"employee_pension_paid"`
	EmployerPensionPaid decimal.Decimal `yaml:"employer_pension_paid" json:"employer_pension_paid"`

	StudentLoanPaid StudentLoanYTD `yaml:"student_loan_paid" json:"student_loan_paid"`
}

// PayComponents is one period's pay broken into its parts
type PayComponents struct {
	BasePay       decimal.Decimal `yaml:"base_pay" json:"base_pay"`
	Bonus         decimal.Decimal `yaml:"bonus" json:"bonus"`
	Commission    decimal.Decimal `yaml:"commission" json:"commission"`
	Tronc         decimal.Decimal `yaml:"tronc" json:"tronc"`
	HolidayPay    decimal.Decimal `yaml:"holiday_pay" json:"holiday_pay"`
	OtherPayments decimal.Decimal `yaml:"other_payments" json:"other_payments"`
}

// Gross sums every component
func (p PayComponents) Gross() decimal.Decimal {
	return p.BasePay.Add(p.Bonus).Add(p.Commission).Add(p.Tronc).Add(p.HolidayPay).Add(p.OtherPayments)
}

// InclusionRule excludes supplementary components from one derived pay figure.
// The zero value includes everything. Base pay is always included.
type InclusionRule struct {
	ExcludeBonus         bool `yaml:"exclude_bonus,omitempty" json:"exclude_bonus,omitempty"`
	ExcludeCommission    bool `yaml:"exclude_commission,omitempty" json:"exclude_commission,omitempty"`
	ExcludeTronc         bool `yaml:"exclude_tronc,omitempty" json:"exclude_tronc,omitempty"`
	ExcludeHolidayPay    bool `yaml:"exclude_holiday_pay,omitempty" json:"exclude_holiday_pay,omitempty"`
	ExcludeOtherPayments bool `yaml:"exclude_other_payments,omitempty" json:"exclude_other_payments,omitempty"`
}

// Apply returns the pay figure after exclusions
func (r InclusionRule) Apply(p PayComponents) decimal.Decimal {
	total := p.BasePay
	if !r.ExcludeBonus {
		total = total.Add(p.Bonus)
	}
	if !r.ExcludeCommission {
		total = total.Add(p.Commission)
	}
	if !r.ExcludeTronc {
		total = total.Add(p.Tronc)
	}
	if !r.ExcludeHolidayPay {
		total = total.Add(p.HolidayPay)
	}
	if !r.ExcludeOtherPayments {
		total = total.Add(p.OtherPayments)
	}
	return total
}

// InclusionRules derives taxable, NI-able and pensionable pay from the same components
type InclusionRules struct {
	Taxable     InclusionRule `yaml:"taxable,omitempty" json:"taxable,omitempty"`
	NIable      InclusionRule `yaml:"niable,omitempty" json:"niable,omitempty"`
	Pensionable InclusionRule `yaml:"pensionable,omitempty" json:"pensionable,omitempty"`
}

// PayrollCalculationInput binds everything one calculation needs. It fully determines the result.
type PayrollCalculationInput struct {
	Employee     Employee        `yaml:"employee" json:"employee"`
	Pay          PayComponents   `yaml:"pay" json:"pay"`
	PeriodNumber int             `yaml:"period_number" json:"period_number"`
	PeriodType   PeriodType      `yaml:"period_type" json:"period_type"`
	YTD          EmployeeYTDData `yaml:"ytd" json:"ytd"`

	InclusionRules InclusionRules `yaml:"inclusion_rules,omitempty" json:"inclusion_rules,omitempty"`
	// PaymentDate is the as-of date for age checks. Nil means the calculator's clock.
	PaymentDate *time.Time `yaml:"payment_date,omitempty" json:"payment_date,omitempty"`

	TaxYearConfig *TaxYearConfiguration `yaml:"-" json:"-"`
}
