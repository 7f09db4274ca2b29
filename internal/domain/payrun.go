package domain

import "time"

// PayRunEntry is one employee's pay and pre-period YTD within a pay run
type PayRunEntry struct {
	Employee Employee        `yaml:"employee" json:"employee"`
	Pay      PayComponents   `yaml:"pay" json:"pay"`
	YTD      EmployeeYTDData `yaml:"ytd" json:"ytd"`
	// InclusionRules overrides the run's rules for this employee when set
	InclusionRules *InclusionRules `yaml:"inclusion_rules,omitempty" json:"inclusion_rules,omitempty"`
}

// PayRun is one pay period for a group of employees paid on the same frequency
type PayRun struct {
	Name           string         `yaml:"name" json:"name"`
	TaxYear        string         `yaml:"tax_year" json:"tax_year"`
	PeriodType     PeriodType     `yaml:"period_type" json:"period_type"`
	PeriodNumber   int            `yaml:"period_number" json:"period_number"`
	PaymentDate    *time.Time     `yaml:"payment_date,omitempty" json:"payment_date,omitempty"`
	InclusionRules InclusionRules `yaml:"inclusion_rules,omitempty" json:"inclusion_rules,omitempty"`
	Employees      []PayRunEntry  `yaml:"employees" json:"employees"`
}

// Inputs builds one calculation input per employee, in order
func (r PayRun) Inputs(cfg *TaxYearConfiguration) []PayrollCalculationInput {
	inputs := make([]PayrollCalculationInput, len(r.Employees))
	for i, e := range r.Employees {
		rules := r.InclusionRules
		if e.InclusionRules != nil {
			rules = *e.InclusionRules
		}
		inputs[i] = PayrollCalculationInput{
			Employee:       e.Employee,
			Pay:            e.Pay,
			PeriodNumber:   r.PeriodNumber,
			PeriodType:     r.PeriodType,
			YTD:            e.YTD,
			InclusionRules: rules,
			PaymentDate:    r.PaymentDate,
			TaxYearConfig:  cfg,
		}
	}
	return inputs
}
