package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minimumEmployeeContribution = decimal.NewFromInt(5)
	maximumEmployeeContribution = decimal.NewFromInt(100)
)

// ValidateTaxCode reports whether code is a recognised PAYE tax code
func ValidateTaxCode(code string) domain.ValidationResult {
	if _, err := ParseTaxCode(code); err != nil {
		return domain.ValidationResult{Valid: false, Error: err.Error()}
	}
	return domain.ValidationResult{Valid: true}
}

// ValidateNICategory reports whether category is one of the HMRC category letters
func ValidateNICategory(category string) domain.ValidationResult {
	if strings.TrimSpace(category) == "" {
		return domain.ValidationResult{Valid: false, Error: "NI category is required"}
	}
	if !domain.NICategory(category).IsKnown() {
		letters := make([]string, len(domain.KnownNICategories))
		for i, c := range domain.KnownNICategories {
			letters[i] = string(c)
		}
		return domain.ValidationResult{
			Valid: false,
			Error: fmt.Sprintf("invalid NI category %q: must be one of %s", category, strings.Join(letters, ", ")),
		}
	}
	return domain.ValidationResult{Valid: true}
}

// ValidatePensionContribution requires an employee percentage within 5 to 100
func ValidatePensionContribution(percentage decimal.Decimal) domain.ValidationResult {
	if percentage.LessThan(minimumEmployeeContribution) {
		return domain.ValidationResult{
			Valid: false,
			Error: fmt.Sprintf("employee pension contribution %s%% is below the auto-enrolment minimum of 5%%", percentage),
		}
	}
	if percentage.GreaterThan(maximumEmployeeContribution) {
		return domain.ValidationResult{
			Valid: false,
			Error: fmt.Sprintf("employee pension contribution %s%% cannot exceed 100%%", percentage),
		}
	}
	return domain.ValidationResult{Valid: true}
}
