package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/calculation"
	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/internal/payrun"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler serves the payroll endpoints
type Handler struct {
	Calc   *calculation.PayrollCalculator
	Runner *payrun.Runner
	// TaxYear is used when a request names no tax year
	TaxYear *domain.TaxYearConfiguration
	Logger  *zap.SugaredLogger
}

// NewHandler wires a calculator and runner sharing the logger
func NewHandler(taxYear *domain.TaxYearConfiguration, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	calc := calculation.NewPayrollCalculator()
	calc.SetLogger(logger)
	runner := payrun.NewRunner(calc)
	runner.Logger = logger
	return &Handler{Calc: calc, Runner: runner, TaxYear: taxYear, Logger: logger}
}

// CalculateRequest is one payroll input plus an optional built-in tax year label
type CalculateRequest struct {
	domain.PayrollCalculationInput
	TaxYear string `json:"tax_year,omitempty"`
}

type taxCodeRequest struct {
	TaxCode string `json:"tax_code"`
}

type niCategoryRequest struct {
	NICategory string `json:"ni_category"`
}

type pensionContributionRequest struct {
	Percentage *decimal.Decimal `json:"percentage"`
}

type autoEnrolmentRequest struct {
	DateOfBirth *time.Time        `json:"date_of_birth"`
	GrossPay    *decimal.Decimal  `json:"gross_pay"`
	PeriodType  domain.PeriodType `json:"period_type"`
	// AsOf is the date the age is taken at; the calculator's clock when absent
	AsOf    *time.Time `json:"as_of,omitempty"`
	TaxYear string     `json:"tax_year,omitempty"`
}

// TaxYearsResponse lists the built-in tax years
type TaxYearsResponse struct {
	Default   string   `json:"default"`
	Available []string `json:"available"`
}

func (h *Handler) resolveTaxYear(label string) (*domain.TaxYearConfiguration, error) {
	if label == "" && h.TaxYear != nil {
		return h.TaxYear, nil
	}
	return config.ResolveTaxYear("", label)
}

// Calculate computes one payslip
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}
	if !req.PeriodType.IsValid() {
		validationFailed(w, map[string]string{"period_type": "must be one of weekly, fortnightly, four_weekly, monthly"})
		return
	}

	cfg, err := h.resolveTaxYear(req.TaxYear)
	if err != nil {
		notFound(w, err.Error())
		return
	}
	input := req.PayrollCalculationInput
	input.TaxYearConfig = cfg

	result, err := h.Calc.CalculatePayroll(input)
	if err != nil {
		h.Logger.Errorw("payroll calculation failed", "employee", input.Employee.ID, "error", err)
		handleError(w, err)
		return
	}
	success(w, result)
}

// RunPayroll computes a pay run for every employee in the body
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var run domain.PayRun
	if err := json.NewDecoder(r.Body).Decode(&run); err != nil {
		badRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}
	if err := config.ValidatePayRun(&run); err != nil {
		handleError(w, err)
		return
	}

	cfg, err := h.resolveTaxYear(run.TaxYear)
	if err != nil {
		notFound(w, err.Error())
		return
	}
	result, err := h.Runner.Run(r.Context(), cfg, run)
	if err != nil {
		h.Logger.Errorw("pay run failed", "name", run.Name, "error", err)
		handleError(w, err)
		return
	}
	successWithMessage(w, "Pay run calculated", result)
}

// ValidateTaxCode reports whether a tax code parses
func (h *Handler) ValidateTaxCode(w http.ResponseWriter, r *http.Request) {
	var req taxCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}
	success(w, calculation.ValidateTaxCode(req.TaxCode))
}

// ValidateNICategory reports whether an NI category letter is known
func (h *Handler) ValidateNICategory(w http.ResponseWriter, r *http.Request) {
	var req niCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}
	success(w, calculation.ValidateNICategory(req.NICategory))
}

// ValidatePensionContribution checks an employee contribution percentage
func (h *Handler) ValidatePensionContribution(w http.ResponseWriter, r *http.Request) {
	var req pensionContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}
	if req.Percentage == nil {
		validationFailed(w, map[string]string{"percentage": "is required"})
		return
	}
	success(w, calculation.ValidatePensionContribution(*req.Percentage))
}

// CheckAutoEnrolment classifies a worker for auto-enrolment from one period's pay
func (h *Handler) CheckAutoEnrolment(w http.ResponseWriter, r *http.Request) {
	var req autoEnrolmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}
	details := map[string]string{}
	if req.DateOfBirth == nil {
		details["date_of_birth"] = "is required"
	}
	if req.GrossPay == nil {
		details["gross_pay"] = "is required"
	}
	if req.PeriodType == "" {
		req.PeriodType = domain.PeriodMonthly
	} else if !req.PeriodType.IsValid() {
		details["period_type"] = "must be one of weekly, fortnightly, four_weekly, monthly"
	}
	if len(details) > 0 {
		validationFailed(w, details)
		return
	}

	cfg, err := h.resolveTaxYear(req.TaxYear)
	if err != nil {
		notFound(w, err.Error())
		return
	}

	employee := domain.Employee{DateOfBirth: *req.DateOfBirth}
	if req.AsOf != nil {
		success(w, calculation.CheckAutoEnrolmentEligibility(employee, *req.GrossPay, req.PeriodType, cfg, *req.AsOf))
		return
	}
	success(w, h.Calc.PensionCalc.CheckEligibility(employee, *req.GrossPay, req.PeriodType, cfg))
}

// ListTaxYears returns the built-in tax years
func (h *Handler) ListTaxYears(w http.ResponseWriter, r *http.Request) {
	def := config.DefaultTaxYear
	if h.TaxYear != nil {
		def = h.TaxYear.TaxYear
	}
	success(w, TaxYearsResponse{Default: def, Available: config.BuiltInTaxYears()})
}
