package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/ukpaye/internal/payrun"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *payrun.Result) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*payrun.Result) ([]byte, error)
}

func (ff FormatterFunc) Format(r *payrun.Result) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                            { return ff.ID }

// WriteFormatted runs a formatter and writes the output to filename. An empty filename
// becomes a timestamped payrun_*.ext in the working directory.
func WriteFormatted(f Formatter, result *payrun.Result, filename, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = fmt.Sprintf("payrun_%s.%s", time.Now().Format("20060102_150405"), ext)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	PayslipFormatter{},
	JSONFormatter{Pretty: true},
	CSVFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases. It returns nil for unknown names.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"summary":     "console",
	"table":       "console",
	"text":        "console",
	"payslips":    "payslip",
	"json-pretty": "json",
	"csv-summary": "csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
