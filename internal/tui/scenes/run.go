package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/internal/payrun"
	"github.com/rgehrsitz/ukpaye/internal/tui/tuistyles"
)

// RunModel lists every employee in a pay run
type RunModel struct {
	result *payrun.Result
	table  table.Model
	width  int
	height int
}

var runColumns = []table.Column{
	{Title: "ID", Width: 10},
	{Title: "Name", Width: 20},
	{Title: "Code", Width: 8},
	{Title: "Gross", Width: 11},
	{Title: "Tax", Width: 10},
	{Title: "NI", Width: 9},
	{Title: "Loan", Width: 9},
	{Title: "Pension", Width: 9},
	{Title: "Net", Width: 11},
	{Title: "!", Width: 2},
}

// NewRunModel creates a new pay-run scene model
func NewRunModel() *RunModel {
	t := table.New(
		table.WithColumns(runColumns),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithWidth(120),
	)
	s := table.DefaultStyles()
	s.Header = tuistyles.TableHeaderStyle
	s.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(s)
	return &RunModel{table: t}
}

// SetResult replaces the rows with the run's payslips
func (m *RunModel) SetResult(result *payrun.Result) {
	m.result = result
	rows := make([]table.Row, 0, len(result.Results))
	for _, r := range result.Results {
		rows = append(rows, runRow(r))
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func runRow(r *domain.PayrollCalculationResult) table.Row {
	flag := ""
	if len(r.Warnings) > 0 {
		flag = "!"
	}
	return table.Row{
		r.EmployeeID,
		r.EmployeeName,
		r.Tax.TaxCode,
		tuistyles.FormatCurrency(r.GrossPay),
		tuistyles.FormatCurrency(r.Tax.TaxThisPeriod),
		tuistyles.FormatCurrency(r.NI.EmployeeNI),
		tuistyles.FormatCurrency(r.StudentLoan.TotalDeduction),
		tuistyles.FormatCurrency(r.Pension.EmployeeContribution),
		tuistyles.FormatCurrency(r.NetPay),
		flag,
	}
}

// SetSize updates the scene dimensions
func (m *RunModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// header, totals and border take eight lines
	if h := height - 8; h > 3 {
		m.table.SetHeight(h)
	}
}

// Selected returns the payslip under the cursor, or nil
func (m *RunModel) Selected() *domain.PayrollCalculationResult {
	if m.result == nil {
		return nil
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.result.Results) {
		return nil
	}
	return m.result.Results[i]
}

// Update handles messages for the run scene
func (m *RunModel) Update(msg tea.Msg) (*RunModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run scene
func (m *RunModel) View() string {
	if m.result == nil {
		return tuistyles.SubtitleStyle.Render("No pay run loaded")
	}
	r := m.result
	header := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s  tax year %s, %s period %d",
		r.Name, r.TaxYear, r.PeriodType, r.PeriodNumber))

	t := r.Totals
	metric := func(label string, v string) string {
		return tuistyles.MetricLabelStyle.Render(label+" ") + tuistyles.MetricValueStyle.Render(v)
	}
	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Employees", fmt.Sprintf("%d", t.Employees)), "   ",
		metric("Gross", tuistyles.FormatCurrency(t.GrossPay)), "   ",
		metric("Deductions", tuistyles.FormatCurrency(t.TotalDeductions)), "   ",
		tuistyles.MetricLabelStyle.Render("Net ")+tuistyles.NetPayStyle.Render(tuistyles.FormatCurrency(t.NetPay)), "   ",
		metric("Employer cost", tuistyles.FormatCurrency(t.TotalCostToEmployer)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		tuistyles.BorderStyle.Render(m.table.View()),
		totals,
	)
}
