package domain

import "github.com/shopspring/decimal"

// TaxRegion is the income tax regime a tax code selects
type TaxRegion string

const (
	RegionEngland  TaxRegion = "england"
	RegionScotland TaxRegion = "scotland"
	RegionWales    TaxRegion = "wales"
)

// TaxBandBreakdown is the tax charged in one band
type TaxBandBreakdown struct {
	Band          string          `json:"band"`
	Rate          decimal.Decimal `json:"rate"` // percent
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Tax           decimal.Decimal `json:"tax"`
}

// TaxCalculationResult is the PAYE outcome for one period
type TaxCalculationResult struct {
	TaxCode      string       `json:"tax_code"`
	Region       TaxRegion    `json:"region"`
	Basis        TaxCodeBasis `json:"basis"`
	IsEmergency  bool         `json:"is_emergency"`
	DefaultsUsed bool         `json:"defaults_used"`

	TaxablePay            decimal.Decimal `json:"taxable_pay"`
	PersonalAllowanceUsed decimal.Decimal `json:"personal_allowance_used"`
	TaxThisPeriod         decimal.Decimal `json:"tax_this_period"`
	TaxablePayYTD         decimal.Decimal `json:"taxable_pay_ytd"`
	TaxPaidYTD            decimal.Decimal `json:"tax_paid_ytd"`

	Breakdown   []TaxBandBreakdown `json:"breakdown"`
	Calculation string             `json:"calculation"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// NIMethod records which NI route produced a result
type NIMethod string

const (
	NIMethodStandard            NIMethod = "standard"
	NIMethodDirectorAnnual      NIMethod = "director_annual"
	NIMethodDirectorAlternative NIMethod = "director_alternative"
	NIMethodExempt              NIMethod = "exempt"
)

// NIThresholdSet is the threshold set applied to one calculation
type NIThresholdSet struct {
	PrimaryThreshold   decimal.Decimal  `json:"primary_threshold"`
	UpperEarningsLimit decimal.Decimal  `json:"upper_earnings_limit"`
	SecondaryThreshold decimal.Decimal  `json:"secondary_threshold"`
	ReliefThreshold    *decimal.Decimal `json:"relief_threshold,omitempty"`
}

// NICalculationResult is the employee and employer NI outcome for one period
type NICalculationResult struct {
	Category NICategory `json:"category"`
	Method   NIMethod   `json:"method"`

	NIablePay  decimal.Decimal `json:"niable_pay"`
	EmployeeNI decimal.Decimal `json:"employee_ni"`
	EmployerNI decimal.Decimal `json:"employer_ni"`

	EmployeeRate         decimal.Decimal `json:"employee_rate"`
	EmployeeAboveUELRate decimal.Decimal `json:"employee_above_uel_rate"`
	EmployerRate         decimal.Decimal `json:"employer_rate"`
	Thresholds           NIThresholdSet  `json:"thresholds"`

	NIablePayYTD  decimal.Decimal `json:"niable_pay_ytd"`
	EmployeeNIYTD decimal.Decimal `json:"employee_ni_ytd"`
	EmployerNIYTD decimal.Decimal `json:"employer_ni_ytd"`

	Calculation string   `json:"calculation"`
	Warnings    []string `json:"warnings,omitempty"`
}

// StudentLoanDeduction is one plan's repayment for the period
type StudentLoanDeduction struct {
	Plan            StudentLoanPlan `json:"plan"`
	PeriodThreshold decimal.Decimal `json:"period_threshold"`
	Rate            decimal.Decimal `json:"rate"`
	Deduction       decimal.Decimal `json:"deduction"`
	YTD             decimal.Decimal `json:"ytd"`
}

// StudentLoanCalculationResult aggregates every active plan
type StudentLoanCalculationResult struct {
	HasStudentLoan bool                   `json:"has_student_loan"`
	Deductions     []StudentLoanDeduction `json:"deductions"`
	TotalDeduction decimal.Decimal        `json:"total_deduction"`
	UpdatedYTD     StudentLoanYTD         `json:"updated_ytd"`
	Calculation    string                 `json:"calculation"`
}

// PensionCalculationResult is the qualifying-earnings pension outcome for one period
type PensionCalculationResult struct {
	IsEnrolled         bool            `json:"is_enrolled"`
	PensionablePay     decimal.Decimal `json:"pensionable_pay"`
	LowerLimit         decimal.Decimal `json:"lower_limit"`
	UpperLimit         decimal.Decimal `json:"upper_limit"`
	QualifyingEarnings decimal.Decimal `json:"qualifying_earnings"`

	EmployeeRate         decimal.Decimal `json:"employee_rate"`
	EmployerRate         decimal.Decimal `json:"employer_rate"`
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`

	PensionablePayYTD      decimal.Decimal `json:"pensionable_pay_ytd"`
	EmployeeContributedYTD decimal.Decimal `json:"employee_contributed_ytd"`
	EmployerContributedYTD decimal.Decimal `json:"employer_contributed_ytd"`

	Calculation string `json:"calculation"`
}

// WorkerCategory is the auto-enrolment classification of a worker
type WorkerCategory string

const (
	EligibleJobholder    WorkerCategory = "eligible_jobholder"
	NonEligibleJobholder WorkerCategory = "non_eligible_jobholder"
	EntitledWorker       WorkerCategory = "entitled_worker"
)

// AutoEnrolmentEligibility is the result of the static eligibility check
type AutoEnrolmentEligibility struct {
	Eligible           bool            `json:"eligible"`
	Category           WorkerCategory  `json:"category"`
	Age                int             `json:"age"`
	AnnualisedEarnings decimal.Decimal `json:"annualised_earnings"`
	Reason             string          `json:"reason"`
}

// PayrollCalculationResult is the complete payslip for one employee and one period
type PayrollCalculationResult struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	TaxYear      string     `json:"tax_year"`
	PeriodNumber int        `json:"period_number"`
	PeriodType   PeriodType `json:"period_type"`

	Pay            PayComponents   `json:"pay"`
	GrossPay       decimal.Decimal `json:"gross_pay"`
	TaxablePay     decimal.Decimal `json:"taxable_pay"`
	NIablePay      decimal.Decimal `json:"niable_pay"`
	PensionablePay decimal.Decimal `json:"pensionable_pay"`

	Tax         TaxCalculationResult         `json:"tax"`
	NI          NICalculationResult          `json:"ni"`
	StudentLoan StudentLoanCalculationResult `json:"student_loan"`
	Pension     PensionCalculationResult     `json:"pension"`

	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetPay              decimal.Decimal `json:"net_pay"`
	EmployerCosts       decimal.Decimal `json:"employer_costs"`
	TotalCostToEmployer decimal.Decimal `json:"total_cost_to_employer"`

	UpdatedYTD     EmployeeYTDData `json:"updated_ytd"`
	CalculationLog []string        `json:"calculation_log"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// ValidationResult is the outcome of an advisory validator
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
