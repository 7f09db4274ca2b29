package config

import (
	"embed"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rgehrsitz/ukpaye/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultTaxYear is the built-in year used when none is requested
const DefaultTaxYear = "2025-26"

//go:embed taxyears/*.yaml
var builtInTaxYears embed.FS

// InputParser handles parsing of tax-year and pay-run files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadTaxYear loads and validates a tax-year configuration from a YAML or JSON file
func (ip *InputParser) LoadTaxYear(filename string) (*domain.TaxYearConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", filename)
	}
	return ip.ParseTaxYear(data)
}

// ParseTaxYear parses and validates a tax-year configuration
func (ip *InputParser) ParseTaxYear(data []byte) (*domain.TaxYearConfiguration, error) {
	var cfg domain.TaxYearConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	if err := ValidateTaxYear(&cfg); err != nil {
		return nil, errors.Wrap(err, "tax year configuration validation failed")
	}
	return &cfg, nil
}

// LoadPayRun loads and validates a pay-run file
func (ip *InputParser) LoadPayRun(filename string) (*domain.PayRun, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", filename)
	}
	return ip.ParsePayRun(data)
}

// ParsePayRun parses and validates a pay run
func (ip *InputParser) ParsePayRun(data []byte) (*domain.PayRun, error) {
	var run domain.PayRun
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	if err := ValidatePayRun(&run); err != nil {
		return nil, errors.Wrap(err, "pay run validation failed")
	}
	return &run, nil
}

// BuiltInTaxYear returns a copy of a shipped tax-year configuration, e.g. "2025-26"
func BuiltInTaxYear(label string) (*domain.TaxYearConfiguration, error) {
	label = strings.ReplaceAll(strings.TrimSpace(label), "/", "-")
	data, err := builtInTaxYears.ReadFile(path.Join("taxyears", label+".yaml"))
	if err != nil {
		return nil, errors.Errorf("no built-in configuration for tax year %q (available: %s)",
			label, strings.Join(BuiltInTaxYears(), ", "))
	}
	return NewInputParser().ParseTaxYear(data)
}

// BuiltInTaxYears lists the shipped tax years, oldest first
func BuiltInTaxYears() []string {
	entries, err := builtInTaxYears.ReadDir("taxyears")
	if err != nil {
		return nil
	}
	var years []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			years = append(years, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(years)
	return years
}

// ResolveTaxYear loads the configuration file when one is given, otherwise the built-in year.
// An empty label means DefaultTaxYear.
func ResolveTaxYear(configFile, label string) (*domain.TaxYearConfiguration, error) {
	if configFile != "" {
		return NewInputParser().LoadTaxYear(configFile)
	}
	if strings.TrimSpace(label) == "" {
		label = DefaultTaxYear
	}
	return BuiltInTaxYear(label)
}
