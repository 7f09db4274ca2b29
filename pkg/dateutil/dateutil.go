package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// TaxYearStartYear returns the calendar year in which the UK tax year containing date began.
// A tax year runs from 6 April to 5 April.
func TaxYearStartYear(date time.Time) int {
	if date.Month() < time.April || (date.Month() == time.April && date.Day() < 6) {
		return date.Year() - 1
	}
	return date.Year()
}

// TaxYearStart returns 6 April of the given start year
func TaxYearStart(startYear int) time.Time {
	return time.Date(startYear, time.April, 6, 0, 0, 0, 0, time.UTC)
}

// TaxYearEnd returns 5 April of the year after startYear
func TaxYearEnd(startYear int) time.Time {
	return time.Date(startYear+1, time.April, 5, 0, 0, 0, 0, time.UTC)
}

// TaxYearLabel formats a tax year as "2025-26"
func TaxYearLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// TaxYearLabelFor returns the label of the tax year containing date
func TaxYearLabelFor(date time.Time) string {
	return TaxYearLabel(TaxYearStartYear(date))
}

// ParseTaxYearLabel parses "2025-26" (or "2025/26") and returns the start year
func ParseTaxYearLabel(label string) (int, error) {
	label = strings.ReplaceAll(strings.TrimSpace(label), "/", "-")
	parts := strings.Split(label, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid tax year %q: expected format YYYY-YY", label)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid tax year %q: %w", label, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid tax year %q: %w", label, err)
	}
	if (start+1)%100 != end {
		return 0, fmt.Errorf("invalid tax year %q: years are not consecutive", label)
	}
	return start, nil
}
