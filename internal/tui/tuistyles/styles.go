// Package tuistyles holds the shared lipgloss palette so scenes can use it without importing tui.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F4A261")
	ColorSuccess = lipgloss.Color("#2A9D8F")
	ColorDanger  = lipgloss.Color("#E63946")
	ColorMuted   = lipgloss.Color("#8D8D8D")
	ColorBorder  = lipgloss.Color("#5C5C5C")
	ColorText    = lipgloss.Color("#EDEDED")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	NetPayStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(ColorBorder)
	TableHighlightStyle = lipgloss.NewStyle().Foreground(ColorText).Background(ColorPrimary)
)

// FormatCurrency renders pounds and pence without separators, for narrow table columns
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-£" + amount.Abs().StringFixed(2)
	}
	return "£" + amount.StringFixed(2)
}
