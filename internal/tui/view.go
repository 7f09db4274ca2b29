package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return AppStyle.Render(m.loadingMessage)
	}
	if m.err != nil {
		return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			ErrorStyle.Render("Error"),
			m.err.Error(),
			"",
			StatusBarStyle.Render("r: retry  q: quit"),
		))
	}

	var content string
	switch m.currentScene {
	case SceneRun:
		content = m.runModel.View()
	case ScenePayslip:
		content = m.payslipModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("UK PAYE")
	scene := SubtitleStyle.Render(" " + m.currentScene.String())
	if m.currentScene == ScenePayslip {
		if p := m.payslipModel.Payslip(); p != nil {
			scene = SubtitleStyle.Render(fmt.Sprintf(" Payslip: %s (%s)", p.EmployeeName, p.EmployeeID))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, scene)
}

func (m Model) renderStatusBar() string {
	status := m.help.View(keys)
	if m.result != nil {
		if n := len(m.result.Warnings()); n > 0 {
			status = WarningStyle.Render(fmt.Sprintf("%d warning(s)  ", n)) + status
		}
	}
	return StatusBarStyle.Render(status)
}

func (m Model) renderHelp() string {
	full := m.help
	full.ShowAll = true
	return lipgloss.JoinVertical(lipgloss.Left,
		"Browse the computed pay run. Select an employee and press enter to open the payslip.",
		"Rows marked ! carry calculation warnings (e.g. an unrecognised tax code replaced by the default).",
		"",
		full.View(keys),
	)
}
