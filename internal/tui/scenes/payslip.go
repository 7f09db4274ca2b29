package scenes

import (
	"bytes"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ukpaye/internal/domain"
	"github.com/rgehrsitz/ukpaye/internal/output"
	"github.com/rgehrsitz/ukpaye/internal/tui/tuistyles"
)

// PayslipModel shows one employee's payslip in a scrollable viewport
type PayslipModel struct {
	payslip  *domain.PayrollCalculationResult
	viewport viewport.Model
}

// NewPayslipModel creates a new payslip scene model
func NewPayslipModel() *PayslipModel {
	return &PayslipModel{viewport: viewport.New(80, 20)}
}

// SetPayslip renders the payslip into the viewport and scrolls to the top
func (m *PayslipModel) SetPayslip(p *domain.PayrollCalculationResult) {
	m.payslip = p
	if p == nil {
		m.viewport.SetContent("")
		return
	}
	var buf bytes.Buffer
	output.WritePayslip(&buf, p)
	m.viewport.SetContent(buf.String())
	m.viewport.GotoTop()
}

// Payslip returns the payslip being shown
func (m *PayslipModel) Payslip() *domain.PayrollCalculationResult {
	return m.payslip
}

// SetSize updates the scene dimensions
func (m *PayslipModel) SetSize(width, height int) {
	m.viewport.Width = width
	if height > 4 {
		m.viewport.Height = height - 4
	}
}

// Update handles messages for the payslip scene
func (m *PayslipModel) Update(msg tea.Msg) (*PayslipModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the payslip scene
func (m *PayslipModel) View() string {
	if m.payslip == nil {
		return tuistyles.SubtitleStyle.Render("No employee selected")
	}
	return m.viewport.View()
}
