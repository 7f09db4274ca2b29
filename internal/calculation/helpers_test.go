package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// testTaxYear returns 2025-26 rates
func testTaxYear() *domain.TaxYearConfiguration {
	return &domain.TaxYearConfiguration{
		TaxYear: "2025-26",
		IncomeTax: domain.IncomeTaxConfig{
			PersonalAllowance:    dec("12570"),
			BasicRate:            dec("0.20"),
			HigherRate:           dec("0.40"),
			AdditionalRate:       dec("0.45"),
			BasicRateLimit:       dec("37700"),
			HigherRateLimit:      dec("125140"),
			KCodeOverridingLimit: dec("0.5"),
		},
		Scottish: domain.ScottishTaxConfig{
			StarterRate:       dec("0.19"),
			BasicRate:         dec("0.20"),
			IntermediateRate:  dec("0.21"),
			HigherRate:        dec("0.42"),
			AdvancedRate:      decPtr("0.45"),
			TopRate:           dec("0.48"),
			StarterLimit:      dec("2827"),
			BasicLimit:        dec("14921"),
			IntermediateLimit: dec("31092"),
			HigherLimit:       dec("62430"),
			AdvancedLimit:     decPtr("125140"),
		},
		Welsh: domain.WelshTaxConfig{
			BasicRate:      dec("0.20"),
			HigherRate:     dec("0.40"),
			AdditionalRate: dec("0.45"),
			BasicLimit:     dec("37700"),
			HigherLimit:    dec("125140"),
		},
		NationalInsurance: domain.NIConfig{
			PrimaryThreshold:                  domain.NIThresholds{Weekly: dec("242"), Monthly: dec("1048"), Annual: dec("12570")},
			UpperEarningsLimit:                domain.NIThresholds{Weekly: dec("967"), Monthly: dec("4189"), Annual: dec("50270")},
			SecondaryThreshold:                domain.NIThresholds{Weekly: dec("96"), Monthly: dec("417"), Annual: dec("5000")},
			ApprenticeUpperSecondaryThreshold: domain.NIThresholds{Weekly: dec("967"), Monthly: dec("4189"), Annual: dec("50270")},
			EmployeePrimaryRate:               dec("0.08"),
			EmployeeAboveUELRate:              dec("0.02"),
			EmployerRate:                      dec("0.15"),
		},
		StudentLoans: domain.StudentLoanConfig{
			Plan1:        domain.LoanPlanConfig{Threshold: dec("26065"), Rate: dec("0.09")},
			Plan2:        domain.LoanPlanConfig{Threshold: dec("28470"), Rate: dec("0.09")},
			Plan4:        domain.LoanPlanConfig{Threshold: dec("32745"), Rate: dec("0.09")},
			Plan5:        domain.LoanPlanConfig{Threshold: dec("25000"), Rate: dec("0.09")},
			Postgraduate: domain.LoanPlanConfig{Threshold: dec("21000"), Rate: dec("0.06")},
		},
		AutoEnrolment: domain.AutoEnrolmentConfig{
			LowerLimit:                  dec("6240"),
			UpperLimit:                  dec("50270"),
			EarningsTrigger:             dec("10000"),
			MinimumEmployerContribution: dec("0.03"),
		},
	}
}

func testEmployee() domain.Employee {
	return domain.Employee{
		ID:                  "EMP001",
		Name:                "Alex Morgan",
		TaxCode:             "1257L",
		TaxCodeBasis:        domain.BasisCumulative,
		NICategory:          domain.NICategoryA,
		DateOfBirth:         time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC),
		AutoEnrolmentStatus: domain.AutoEnrolmentNotEligible,
	}
}

// recordingLogger captures formatted messages by level
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.messages = append(l.messages, "DEBUG: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.messages = append(l.messages, "INFO: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.messages = append(l.messages, "WARN: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.messages = append(l.messages, "ERROR: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) warnings() []string {
	var out []string
	for _, m := range l.messages {
		if len(m) > 6 && m[:6] == "WARN: " {
			out = append(out, m)
		}
	}
	return out
}
