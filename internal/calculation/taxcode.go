package calculation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultTaxCode is substituted for any tax code that cannot be parsed
const DefaultTaxCode = "1257L"

// maxAllowanceDigits bounds the numeric part of a code; HMRC never issues more than this
const maxAllowanceDigits = 6

// TaxCodeKind classifies how a tax code is charged
type TaxCodeKind string

const (
	KindAllowance TaxCodeKind = "allowance" // L, M, N, T suffixes
	KindK         TaxCodeKind = "k"         // negative allowance
	KindZeroT     TaxCodeKind = "0T"        // bands, no allowance
	KindBR        TaxCodeKind = "BR"
	KindD0        TaxCodeKind = "D0"
	KindD1        TaxCodeKind = "D1"
	KindD2        TaxCodeKind = "D2" // Scotland only
	KindD3        TaxCodeKind = "D3" // Scotland only
	KindNT        TaxCodeKind = "NT"
)

// TaxCode is a parsed PAYE tax code
type TaxCode struct {
	Raw    string
	Code   string // normalized, without non-cumulative marker
	Region domain.TaxRegion
	Kind   TaxCodeKind
	// Allowance is the annual allowance; negative for K codes
	Allowance decimal.Decimal
	// NonCumulative is set by a W1, M1 or X marker
	NonCumulative bool
}

// IsFlatRate reports whether the code charges a single rate on all pay
func (tc TaxCode) IsFlatRate() bool {
	switch tc.Kind {
	case KindBR, KindD0, KindD1, KindD2, KindD3, KindNT:
		return true
	}
	return false
}

var (
	specialCodePattern = regexp.MustCompile(`^([SC]?)(BR|D0|D1|D2|D3|NT|0T)$`)
	kPrefixPattern     = regexp.MustCompile(`^([SC]?)K(\d+)$`)
	suffixCodePattern  = regexp.MustCompile(`^([A-Z]?)(\d+)([LMNTK])$`)
)

// ParseTaxCode parses a tax code such as 1257L, S1257L, C1257L, K475, 475K, BR, SD0, 0T or
// 1257L W1. Input is case-insensitive and whitespace is ignored.
func ParseTaxCode(raw string) (TaxCode, error) {
	code := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if code == "" {
		return TaxCode{}, fmt.Errorf("tax code is empty")
	}

	tc := TaxCode{Raw: raw, Allowance: decimal.Zero}
	switch {
	case strings.HasSuffix(code, "W1") || strings.HasSuffix(code, "M1"):
		tc.NonCumulative = true
		code = code[:len(code)-2]
	case strings.HasSuffix(code, "X"):
		tc.NonCumulative = true
		code = code[:len(code)-1]
	}
	tc.Code = code

	if m := specialCodePattern.FindStringSubmatch(code); m != nil {
		tc.Region = regionFromPrefix(m[1])
		tc.Kind = TaxCodeKind(m[2])
		if (tc.Kind == KindD2 || tc.Kind == KindD3) && tc.Region != domain.RegionScotland {
			return TaxCode{}, fmt.Errorf("invalid tax code %q: %s is only valid with the S prefix", raw, m[2])
		}
		return tc, nil
	}

	if m := kPrefixPattern.FindStringSubmatch(code); m != nil {
		allowance, err := allowanceFromDigits(raw, m[2])
		if err != nil {
			return TaxCode{}, err
		}
		tc.Region = regionFromPrefix(m[1])
		tc.Kind = KindK
		tc.Allowance = allowance.Neg()
		return tc, nil
	}

	if m := suffixCodePattern.FindStringSubmatch(code); m != nil {
		allowance, err := allowanceFromDigits(raw, m[2])
		if err != nil {
			return TaxCode{}, err
		}
		tc.Region = regionFromPrefix(m[1])
		tc.Allowance = allowance
		tc.Kind = KindAllowance
		if m[3] == "K" {
			tc.Kind = KindK
			tc.Allowance = tc.Allowance.Neg()
		}
		return tc, nil
	}

	return TaxCode{}, fmt.Errorf("invalid tax code %q", raw)
}

// allowanceFromDigits is the code number times ten
func allowanceFromDigits(raw, digits string) (decimal.Decimal, error) {
	if len(strings.TrimLeft(digits, "0")) > maxAllowanceDigits {
		return decimal.Zero, fmt.Errorf("invalid tax code %q: more than %d digits", raw, maxAllowanceDigits)
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax code %q: %w", raw, err)
	}
	return d.Mul(ten), nil
}

// regionFromPrefix maps a prefix letter to a region. Unknown letters mean England and Northern Ireland.
func regionFromPrefix(prefix string) domain.TaxRegion {
	switch prefix {
	case "S":
		return domain.RegionScotland
	case "C":
		return domain.RegionWales
	default:
		return domain.RegionEngland
	}
}

// mustParseDefault parses DefaultTaxCode, which is always valid
func mustParseDefault() TaxCode {
	tc, err := ParseTaxCode(DefaultTaxCode)
	if err != nil {
		panic(err)
	}
	return tc
}
