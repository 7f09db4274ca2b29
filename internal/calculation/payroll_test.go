package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payrollInput(pay domain.PayComponents) domain.PayrollCalculationInput {
	emp := testEmployee()
	emp.AutoEnrolmentStatus = domain.AutoEnrolmentEnrolled
	emp.PensionContributionPercentage = decPtr("5")
	emp.StudentLoans = domain.StudentLoanPlans{Plan2: true}
	return domain.PayrollCalculationInput{
		Employee:      emp,
		Pay:           pay,
		PeriodNumber:  1,
		PeriodType:    domain.PeriodMonthly,
		TaxYearConfig: testTaxYear(),
	}
}

func assertPayslipIdentities(t *testing.T, r *domain.PayrollCalculationResult) {
	t.Helper()
	deductions := r.Tax.TaxThisPeriod.Add(r.NI.EmployeeNI).Add(r.StudentLoan.TotalDeduction).Add(r.Pension.EmployeeContribution)
	assert.True(t, r.TotalDeductions.Equal(deductions), "total deductions %s != %s", r.TotalDeductions, deductions)
	assert.True(t, r.NetPay.Equal(r.GrossPay.Sub(r.TotalDeductions)), "net pay %s != gross %s - deductions %s", r.NetPay, r.GrossPay, r.TotalDeductions)
}

func TestNewPayrollCalculator(t *testing.T) {
	calc := NewPayrollCalculator()

	assert.NotNil(t, calc.TaxCalc, "Should initialize tax calculator")
	assert.NotNil(t, calc.NICalc, "Should initialize NI calculator")
	assert.NotNil(t, calc.StudentLoanCalc, "Should initialize student loan calculator")
	assert.NotNil(t, calc.PensionCalc, "Should initialize pension calculator")
	assert.NotNil(t, calc.Logger, "Should initialize logger")
}

func TestPayrollCalculator_SetLogger(t *testing.T) {
	calc := NewPayrollCalculator()

	customLogger := &recordingLogger{}
	calc.SetLogger(customLogger)
	assert.Equal(t, customLogger, calc.Logger)
	assert.Equal(t, customLogger, calc.TaxCalc.Logger)
	assert.Equal(t, customLogger, calc.PensionCalc.Logger)

	calc.SetLogger(nil)
	assert.IsType(t, NopLogger{}, calc.Logger)
	assert.IsType(t, NopLogger{}, calc.NICalc.Logger)
	assert.IsType(t, NopLogger{}, calc.StudentLoanCalc.Logger)
}

func TestPayrollCalculator_CalculatePayroll(t *testing.T) {
	calc := NewPayrollCalculator()
	result, err := calc.CalculatePayroll(payrollInput(domain.PayComponents{BasePay: dec("3000")}))
	require.NoError(t, err)

	assert.Equal(t, "EMP001", result.EmployeeID)
	assert.Equal(t, "2025-26", result.TaxYear)
	assert.True(t, result.GrossPay.Equal(dec("3000")))
	assert.True(t, result.Tax.TaxThisPeriod.Equal(dec("390.50")), "tax %s", result.Tax.TaxThisPeriod)
	assert.True(t, result.NI.EmployeeNI.Equal(dec("156.16")), "ni %s", result.NI.EmployeeNI)
	assert.True(t, result.StudentLoan.TotalDeduction.Equal(dec("56.48")), "student loan %s", result.StudentLoan.TotalDeduction)
	assert.True(t, result.Pension.EmployeeContribution.Equal(dec("124")), "pension %s", result.Pension.EmployeeContribution)
	assert.True(t, result.TotalDeductions.Equal(dec("727.14")), "total %s", result.TotalDeductions)
	assert.True(t, result.NetPay.Equal(dec("2272.86")), "net %s", result.NetPay)
	assert.True(t, result.EmployerCosts.Equal(dec("461.85")), "employer costs %s", result.EmployerCosts)
	assert.True(t, result.TotalCostToEmployer.Equal(dec("3461.85")))
	assertPayslipIdentities(t, result)

	require.Len(t, result.CalculationLog, 6)
	assert.Contains(t, result.CalculationLog[0], "Gross pay: £3000.00")
	assert.Contains(t, result.CalculationLog[1], "Tax code 1257L")
	assert.Contains(t, result.CalculationLog[2], "NI category A")
	assert.Contains(t, result.CalculationLog[3], "Student loan")
	assert.Contains(t, result.CalculationLog[4], "Pension")
	assert.Contains(t, result.CalculationLog[5], "net pay: £2272.86")
	assert.Empty(t, result.Warnings)
}

func TestPayrollCalculator_PayComponentsAreAdditive(t *testing.T) {
	calc := NewPayrollCalculator()
	split, err := calc.CalculatePayroll(payrollInput(domain.PayComponents{
		BasePay:       dec("2000"),
		Bonus:         dec("500"),
		Commission:    dec("250"),
		Tronc:         dec("100"),
		HolidayPay:    dec("100"),
		OtherPayments: dec("50"),
	}))
	require.NoError(t, err)
	single, err := calc.CalculatePayroll(payrollInput(domain.PayComponents{BasePay: dec("3000")}))
	require.NoError(t, err)

	assert.True(t, split.GrossPay.Equal(single.GrossPay))
	assert.True(t, split.NetPay.Equal(single.NetPay))
	assert.True(t, split.TotalDeductions.Equal(single.TotalDeductions))
}

func TestPayrollCalculator_InclusionRules(t *testing.T) {
	input := payrollInput(domain.PayComponents{BasePay: dec("2900"), Tronc: dec("100")})
	input.InclusionRules.NIable.ExcludeTronc = true

	result, err := NewPayrollCalculator().CalculatePayroll(input)
	require.NoError(t, err)

	assert.True(t, result.GrossPay.Equal(dec("3000")))
	assert.True(t, result.TaxablePay.Equal(dec("3000")))
	assert.True(t, result.NIablePay.Equal(dec("2900")))
	assert.True(t, result.PensionablePay.Equal(dec("3000")))
	// (2900 - 1048) x 8%
	assert.True(t, result.NI.EmployeeNI.Equal(dec("148.16")), "got %s", result.NI.EmployeeNI)
	assertPayslipIdentities(t, result)
}

func TestPayrollCalculator_UpdatedYTD(t *testing.T) {
	input := payrollInput(domain.PayComponents{BasePay: dec("3000")})
	input.PeriodNumber = 2
	input.YTD = domain.EmployeeYTDData{
		TaxYear:             "2025-26",
		GrossPay:            dec("3000"),
		TaxablePay:          dec("3000"),
		NIablePay:           dec("3000"),
		PensionablePay:      dec("3000"),
		TaxPaid:             dec("390.50"),
		EmployeeNIPaid:      dec("156.16"),
		EmployerNIPaid:      dec("387.45"),
		EmployeePensionPaid: dec("124"),
		EmployerPensionPaid: dec("74.40"),
		StudentLoanPaid:     domain.StudentLoanYTD{Plan2: dec("56.48")},
	}

	result, err := NewPayrollCalculator().CalculatePayroll(input)
	require.NoError(t, err)

	ytd := result.UpdatedYTD
	assert.True(t, ytd.GrossPay.Equal(dec("6000")))
	assert.True(t, ytd.TaxablePay.Equal(dec("6000")))
	assert.True(t, ytd.NIablePay.Equal(dec("6000")))
	assert.True(t, ytd.PensionablePay.Equal(dec("6000")))
	assert.True(t, ytd.TaxPaid.Equal(dec("781")), "got %s", ytd.TaxPaid)
	assert.True(t, ytd.EmployeeNIPaid.Equal(dec("312.32")), "got %s", ytd.EmployeeNIPaid)
	assert.True(t, ytd.EmployerNIPaid.Equal(dec("774.90")), "got %s", ytd.EmployerNIPaid)
	assert.True(t, ytd.EmployeePensionPaid.Equal(dec("248")), "got %s", ytd.EmployeePensionPaid)
	assert.True(t, ytd.EmployerPensionPaid.Equal(dec("148.80")), "got %s", ytd.EmployerPensionPaid)
	assert.True(t, ytd.StudentLoanPaid.Plan2.Equal(dec("112.96")), "got %s", ytd.StudentLoanPaid.Plan2)
}

func TestPayrollCalculator_MissingConfiguration(t *testing.T) {
	input := payrollInput(domain.PayComponents{BasePay: dec("3000")})
	input.TaxYearConfig = nil

	result, err := NewPayrollCalculator().CalculatePayroll(input)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "tax year configuration is required")
}

func TestPayrollCalculator_PaymentDateDrivesAge(t *testing.T) {
	input := payrollInput(domain.PayComponents{BasePay: dec("3000")})
	input.Employee.NICategory = domain.NICategoryM
	input.Employee.DateOfBirth = time.Date(2004, 8, 20, 0, 0, 0, 0, time.UTC)

	calc := NewPayrollCalculator()
	calc.Now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	paymentDate := time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC)
	input.PaymentDate = &paymentDate
	withDate, err := calc.CalculatePayroll(input)
	require.NoError(t, err)
	assert.True(t, withDate.NI.EmployerNI.IsZero(), "aged 20 on payment date: got %s", withDate.NI.EmployerNI)

	input.PaymentDate = nil
	withClock, err := calc.CalculatePayroll(input)
	require.NoError(t, err)
	assert.True(t, withClock.NI.EmployerNI.Equal(dec("387.45")), "aged 25 by clock: got %s", withClock.NI.EmployerNI)
}

func TestPayrollCalculator_WarningsAreCollected(t *testing.T) {
	logger := &recordingLogger{}
	calc := NewPayrollCalculator()
	calc.SetLogger(logger)

	input := payrollInput(domain.PayComponents{BasePay: dec("3000")})
	input.Employee.TaxCode = "??"
	input.Employee.NICategory = "Q"

	result, err := calc.CalculatePayroll(input)
	require.NoError(t, err)

	assert.Len(t, result.Warnings, 2)
	assert.Len(t, logger.warnings(), 2)
	assert.Contains(t, result.CalculationLog[1], "WARNING:")
	assert.Contains(t, result.CalculationLog[2], "WARNING:")
	assertPayslipIdentities(t, result)
}

func TestPayrollCalculator_NonPositivePayNeverFails(t *testing.T) {
	for _, base := range []string{"0", "-500"} {
		t.Run(base, func(t *testing.T) {
			result, err := NewPayrollCalculator().CalculatePayroll(payrollInput(domain.PayComponents{BasePay: dec(base)}))
			require.NoError(t, err)

			assert.True(t, result.Tax.TaxThisPeriod.IsZero())
			assert.True(t, result.NI.EmployeeNI.IsZero())
			assert.True(t, result.StudentLoan.TotalDeduction.IsZero())
			assert.True(t, result.Pension.EmployeeContribution.IsZero())
			assertPayslipIdentities(t, result)
		})
	}
}

func TestPayrollCalculator_FullYearInvariants(t *testing.T) {
	pays := []string{"2500", "2500", "4000", "2500", "0", "2500", "9000", "2500", "2500", "3100", "2500", "2500"}
	calc := NewPayrollCalculator()
	input := payrollInput(domain.PayComponents{})
	input.Employee.StudentLoans = domain.StudentLoanPlans{Plan1: true, Postgraduate: true}

	ytd := domain.EmployeeYTDData{}
	for i, p := range pays {
		input.PeriodNumber = i + 1
		input.Pay = domain.PayComponents{BasePay: dec(p)}
		input.YTD = ytd

		result, err := calc.CalculatePayroll(input)
		require.NoError(t, err)
		assertPayslipIdentities(t, result)

		next := result.UpdatedYTD
		for _, pair := range [][2]decimal.Decimal{
			{ytd.GrossPay, next.GrossPay},
			{ytd.TaxPaid, next.TaxPaid},
			{ytd.EmployeeNIPaid, next.EmployeeNIPaid},
			{ytd.EmployerNIPaid, next.EmployerNIPaid},
			{ytd.EmployeePensionPaid, next.EmployeePensionPaid},
			{ytd.StudentLoanPaid.Total(), next.StudentLoanPaid.Total()},
		} {
			assert.True(t, pair[1].GreaterThanOrEqual(pair[0]), "period %d: YTD decreased from %s to %s", i+1, pair[0], pair[1])
		}
		ytd = next
	}
}
