package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustmentBand labels the breakdown row that reconciles band tax with the tax deducted
const AdjustmentBand = "Adjustment"

// taxBand is one rate band. A nil Width is unlimited.
type taxBand struct {
	Name  string
	Rate  decimal.Decimal
	Width *decimal.Decimal
}

func limitedBand(name string, rate, width decimal.Decimal) taxBand {
	w := nonNegative(width)
	return taxBand{Name: name, Rate: rate, Width: &w}
}

// regionBands builds the annual band list for a region
func regionBands(region domain.TaxRegion, cfg *domain.TaxYearConfiguration) []taxBand {
	switch region {
	case domain.RegionScotland:
		s := cfg.Scottish
		bands := []taxBand{
			limitedBand("Starter rate", s.StarterRate, s.StarterLimit),
			limitedBand("Basic rate", s.BasicRate, s.BasicLimit.Sub(s.StarterLimit)),
			limitedBand("Intermediate rate", s.IntermediateRate, s.IntermediateLimit.Sub(s.BasicLimit)),
			limitedBand("Higher rate", s.HigherRate, s.HigherLimit.Sub(s.IntermediateLimit)),
		}
		if s.HasAdvancedBand() {
			bands = append(bands, limitedBand("Advanced rate", *s.AdvancedRate, s.AdvancedLimit.Sub(s.HigherLimit)))
		}
		return append(bands, taxBand{Name: "Top rate", Rate: s.TopRate})
	case domain.RegionWales:
		w := cfg.Welsh
		basicLimit, higherLimit := w.BasicLimit, w.HigherLimit
		if basicLimit.IsZero() && higherLimit.IsZero() {
			basicLimit, higherLimit = cfg.IncomeTax.BasicRateLimit, cfg.IncomeTax.HigherRateLimit
		}
		return []taxBand{
			limitedBand("Welsh basic rate", w.BasicRate, basicLimit),
			limitedBand("Welsh higher rate", w.HigherRate, higherLimit.Sub(basicLimit)),
			{Name: "Welsh additional rate", Rate: w.AdditionalRate},
		}
	default:
		it := cfg.IncomeTax
		return []taxBand{
			limitedBand("Basic rate", it.BasicRate, it.BasicRateLimit),
			limitedBand("Higher rate", it.HigherRate, it.HigherRateLimit.Sub(it.BasicRateLimit)),
			{Name: "Additional rate", Rate: it.AdditionalRate},
		}
	}
}

// bandAmounts splits taxable across bands whose widths are scaled by n/periods
func bandAmounts(taxable decimal.Decimal, bands []taxBand, n, periods int) []decimal.Decimal {
	remaining := nonNegative(taxable)
	amounts := make([]decimal.Decimal, len(bands))
	for i, band := range bands {
		amount := remaining
		if band.Width != nil {
			amount = decimal.Min(remaining, prorate(*band.Width, n, periods))
		}
		amounts[i] = nonNegative(amount)
		remaining = remaining.Sub(amounts[i])
	}
	return amounts
}

// chargeBands taxes each band's amount and returns the unrounded total with a breakdown row
// for every band that has something in it. Amounts may be negative when they are differences.
func chargeBands(bands []taxBand, amounts []decimal.Decimal) (decimal.Decimal, []domain.TaxBandBreakdown) {
	total := decimal.Zero
	var breakdown []domain.TaxBandBreakdown
	for i, band := range bands {
		if amounts[i].IsZero() {
			continue
		}
		tax := amounts[i].Mul(band.Rate)
		total = total.Add(tax)
		breakdown = append(breakdown, domain.TaxBandBreakdown{
			Band:          band.Name,
			Rate:          band.Rate.Mul(hundred),
			TaxableAmount: roundPence(amounts[i]),
			Tax:           roundPence(tax),
		})
	}
	return total, breakdown
}

// settlePence moves the pence lost to per-band rounding onto the last row so the rows add up to target
func settlePence(breakdown []domain.TaxBandBreakdown, target decimal.Decimal) []domain.TaxBandBreakdown {
	if len(breakdown) == 0 {
		return breakdown
	}
	last := &breakdown[len(breakdown)-1]
	last.Tax = last.Tax.Add(target.Sub(breakdownTotal(breakdown)))
	return breakdown
}

func breakdownTotal(breakdown []domain.TaxBandBreakdown) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range breakdown {
		sum = sum.Add(b.Tax)
	}
	return sum
}

// applyBands charges taxable against bands whose widths are scaled by n/periods.
// It returns the unrounded tax and a per-band breakdown that adds up to the rounded tax.
func applyBands(taxable decimal.Decimal, bands []taxBand, n, periods int) (decimal.Decimal, []domain.TaxBandBreakdown) {
	total, breakdown := chargeBands(bands, bandAmounts(taxable, bands, n, periods))
	return total, settlePence(breakdown, roundPence(total))
}

// reconcileBreakdown appends an adjustment row for any tax the bands do not explain: tax already
// paid that differs from the amount previously due, a refund that is withheld, or the K code limit.
func reconcileBreakdown(breakdown []domain.TaxBandBreakdown, tax decimal.Decimal) []domain.TaxBandBreakdown {
	diff := tax.Sub(breakdownTotal(breakdown))
	if diff.IsZero() {
		return breakdown
	}
	return append(breakdown, domain.TaxBandBreakdown{
		Band:          AdjustmentBand,
		Rate:          decimal.Zero,
		TaxableAmount: decimal.Zero,
		Tax:           diff,
	})
}

// flatRate returns the band name and rate a flat-rate code charges
func flatRate(tc TaxCode, cfg *domain.TaxYearConfiguration) (string, decimal.Decimal) {
	switch tc.Region {
	case domain.RegionScotland:
		s := cfg.Scottish
		switch tc.Kind {
		case KindBR:
			return "Scottish basic rate", s.BasicRate
		case KindD0:
			return "Scottish intermediate rate", s.IntermediateRate
		case KindD1:
			return "Scottish higher rate", s.HigherRate
		case KindD2:
			if s.AdvancedRate != nil {
				return "Scottish advanced rate", *s.AdvancedRate
			}
			return "Scottish top rate", s.TopRate
		case KindD3:
			return "Scottish top rate", s.TopRate
		}
	case domain.RegionWales:
		w := cfg.Welsh
		switch tc.Kind {
		case KindBR:
			return "Welsh basic rate", w.BasicRate
		case KindD0:
			return "Welsh higher rate", w.HigherRate
		case KindD1:
			return "Welsh additional rate", w.AdditionalRate
		}
	}
	it := cfg.IncomeTax
	switch tc.Kind {
	case KindBR:
		return "Basic rate", it.BasicRate
	case KindD0:
		return "Higher rate", it.HigherRate
	case KindD1:
		return "Additional rate", it.AdditionalRate
	}
	return "No tax", decimal.Zero
}

// TaxCalculator computes PAYE income tax for one pay period
type TaxCalculator struct {
	Logger Logger
}

// NewTaxCalculator creates a new tax calculator
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (tc *TaxCalculator) SetLogger(l Logger) {
	tc.Logger = loggerOrNop(l)
}

// CalculateTax computes the tax due this period. Malformed tax codes fall back to DefaultTaxCode
// with a warning; it never fails.
func (tc *TaxCalculator) CalculateTax(
	employee domain.Employee,
	grossPay decimal.Decimal,
	periodNumber int,
	periodType domain.PeriodType,
	cfg *domain.TaxYearConfiguration,
	ytd domain.EmployeeYTDData,
) domain.TaxCalculationResult {
	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		tc.Logger.Warnf("employee %s: %s", employee.ID, msg)
	}

	code, err := ParseTaxCode(employee.TaxCode)
	defaultsUsed := false
	if err != nil {
		warn("%v, using default %s", err, DefaultTaxCode)
		code = mustParseDefault()
		defaultsUsed = true
	}

	basis := employee.TaxCodeBasis
	switch basis {
	case domain.BasisCumulative, domain.BasisWeek1Month1:
	case "":
		basis = domain.BasisCumulative
	default:
		warn("unknown tax code basis %q, using cumulative", basis)
		basis = domain.BasisCumulative
	}
	if code.NonCumulative {
		basis = domain.BasisWeek1Month1
	}

	periods, n := normalizePeriod(periodType, periodNumber, warn)

	result := domain.TaxCalculationResult{
		TaxCode:               code.Code,
		Region:                code.Region,
		Basis:                 basis,
		IsEmergency:           code.NonCumulative,
		DefaultsUsed:          defaultsUsed,
		TaxablePay:            decimal.Zero,
		PersonalAllowanceUsed: decimal.Zero,
		TaxThisPeriod:         decimal.Zero,
		TaxablePayYTD:         ytd.TaxablePay.Add(nonNegative(grossPay)),
		TaxPaidYTD:            ytd.TaxPaid,
	}

	if !grossPay.IsPositive() {
		result.Calculation = warningLines(warnings) + fmt.Sprintf("Tax code %s: no taxable pay this period, tax %s", code.Code, money(decimal.Zero))
		result.Warnings = warnings
		return result
	}

	var narrative string
	switch {
	case code.IsFlatRate():
		narrative = tc.flatRateTax(&result, code, grossPay, cfg)
	case basis == domain.BasisWeek1Month1:
		narrative = tc.nonCumulativeTax(&result, code, grossPay, periods, cfg)
	default:
		narrative = tc.cumulativeTax(&result, code, grossPay, n, periods, cfg, ytd)
	}

	if code.Kind == KindK && cfg.IncomeTax.KCodeOverridingLimit.IsPositive() {
		limit := roundPence(grossPay.Mul(cfg.IncomeTax.KCodeOverridingLimit))
		if result.TaxThisPeriod.GreaterThan(limit) {
			narrative += fmt.Sprintf("; limited to %s (%s of pay) by the K code overriding limit",
				money(limit), percent(cfg.IncomeTax.KCodeOverridingLimit))
			result.TaxThisPeriod = limit
		}
	}

	result.Breakdown = reconcileBreakdown(result.Breakdown, result.TaxThisPeriod)
	result.TaxPaidYTD = ytd.TaxPaid.Add(result.TaxThisPeriod)
	result.Calculation = warningLines(warnings) + narrative
	result.Warnings = warnings
	tc.Logger.Debugf("employee %s: tax %s on %s (code %s, %s)", employee.ID, result.TaxThisPeriod, grossPay, code.Code, basis)
	return result
}

func (tc *TaxCalculator) flatRateTax(result *domain.TaxCalculationResult, code TaxCode, grossPay decimal.Decimal, cfg *domain.TaxYearConfiguration) string {
	name, rate := flatRate(code, cfg)
	tax := roundPence(grossPay.Mul(rate))
	result.TaxablePay = grossPay
	result.TaxThisPeriod = tax
	result.Breakdown = []domain.TaxBandBreakdown{{
		Band:          name,
		Rate:          rate.Mul(hundred),
		TaxableAmount: roundPence(grossPay),
		Tax:           tax,
	}}
	return fmt.Sprintf("Tax code %s: %s on all pay, %s x %s = %s", code.Code, name, money(grossPay), percent(rate), money(tax))
}

func (tc *TaxCalculator) nonCumulativeTax(result *domain.TaxCalculationResult, code TaxCode, grossPay decimal.Decimal, periods int, cfg *domain.TaxYearConfiguration) string {
	allowance := tc.annualAllowance(code)
	periodAllowance := prorate(allowance, 1, periods)
	taxable := nonNegative(grossPay.Sub(periodAllowance))

	tax, breakdown := applyBands(taxable, regionBands(code.Region, cfg), 1, periods)
	tax = roundPence(tax)

	result.TaxablePay = roundPence(taxable)
	result.PersonalAllowanceUsed = roundPence(decimal.Min(nonNegative(periodAllowance), grossPay))
	result.TaxThisPeriod = tax
	result.Breakdown = breakdown
	return fmt.Sprintf("Tax code %s (week1/month1): pay %s less allowance %s = taxable %s, tax %s",
		code.Code, money(grossPay), money(periodAllowance), money(taxable), money(tax))
}

func (tc *TaxCalculator) cumulativeTax(result *domain.TaxCalculationResult, code TaxCode, grossPay decimal.Decimal, n, periods int, cfg *domain.TaxYearConfiguration, ytd domain.EmployeeYTDData) string {
	allowance := tc.annualAllowance(code)
	grossToDate := ytd.TaxablePay.Add(grossPay)

	allowanceToDate := prorate(allowance, n, periods)
	taxableToDate := nonNegative(grossToDate.Sub(allowanceToDate))

	previousAllowance := prorate(allowance, n-1, periods)
	previousTaxable := nonNegative(ytd.TaxablePay.Sub(previousAllowance))

	bands := regionBands(code.Region, cfg)
	current := bandAmounts(taxableToDate, bands, n, periods)
	previous := make([]decimal.Decimal, len(bands))
	if n > 1 {
		previous = bandAmounts(previousTaxable, bands, n-1, periods)
	}

	due, _ := chargeBands(bands, current)
	due = roundPence(due)
	previousDue, _ := chargeBands(bands, previous)
	tax := nonNegative(due.Sub(ytd.TaxPaid))

	// this period's share of each band is the to-date amount less the amount to the previous period
	periodAmounts := make([]decimal.Decimal, len(bands))
	for i := range bands {
		periodAmounts[i] = current[i].Sub(previous[i])
	}
	_, breakdown := chargeBands(bands, periodAmounts)
	breakdown = settlePence(breakdown, due.Sub(roundPence(previousDue)))

	result.TaxablePay = roundPence(nonNegative(taxableToDate.Sub(previousTaxable)))
	result.PersonalAllowanceUsed = roundPence(nonNegative(allowanceToDate.Sub(previousAllowance)))
	result.TaxThisPeriod = tax
	result.Breakdown = breakdown
	return fmt.Sprintf("Tax code %s (cumulative, period %d of %d): pay to date %s less allowance to date %s = taxable %s; tax due to date %s less tax paid %s = %s",
		code.Code, n, periods, money(grossToDate), money(allowanceToDate), money(taxableToDate), money(due), money(ytd.TaxPaid), money(tax))
}

// annualAllowance is the code's allowance; 0T has none
func (tc *TaxCalculator) annualAllowance(code TaxCode) decimal.Decimal {
	if code.Kind == KindZeroT {
		return decimal.Zero
	}
	return code.Allowance
}

// normalizePeriod clamps the period number into 1..periodsInYear
func normalizePeriod(periodType domain.PeriodType, periodNumber int, warn func(string, ...any)) (periods, n int) {
	if !periodType.IsValid() {
		warn("unknown period type %q, using monthly", periodType)
	}
	periods = periodType.PeriodsInYear()
	n = periodNumber
	if n < 1 {
		warn("period number %d out of range, using 1", periodNumber)
		n = 1
	}
	if n > periods {
		warn("period number %d exceeds %d periods, using %d", periodNumber, periods, periods)
		n = periods
	}
	return periods, n
}
